package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"transformer/internal/core"
)

// Direction направление события относительно воркера.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// Entry описывает одно событие сессии без содержимого payload.
type Entry struct {
	RequestID    string
	Direction    Direction
	Command      string
	Kind         core.EventKind
	PayloadBytes int
	TS           time.Time
}

// Stats агрегаты за сессию.
type Stats struct {
	Requests int
	Outputs  int
	Errors   int
}

// Journal пишет события сессии в структурированный лог.
type Journal struct {
	log   *slog.Logger
	mu    sync.Mutex
	stats Stats
	now   func() time.Time
}

// New создает журнал поверх логгера.
func New(log *slog.Logger) *Journal {
	return &Journal{log: log, now: time.Now}
}

// Record фиксирует событие, пересекающее канал.
func (j *Journal) Record(ctx context.Context, dir Direction, ev core.Event) {
	e := Entry{
		RequestID:    ev.ID,
		Direction:    dir,
		Command:      ev.Command.String(),
		Kind:         ev.Kind,
		PayloadBytes: len(ev.Payload),
		TS:           j.now().UTC(),
	}

	j.mu.Lock()
	switch ev.Kind {
	case core.KindInput:
		j.stats.Requests++
	case core.KindOutput:
		j.stats.Outputs++
	case core.KindError:
		j.stats.Errors++
	}
	j.mu.Unlock()

	level := slog.LevelDebug
	if e.Kind == core.KindError {
		level = slog.LevelWarn
	}
	j.log.LogAttrs(ctx, level, "event",
		slog.String("request_id", e.RequestID),
		slog.String("direction", string(e.Direction)),
		slog.String("command", e.Command),
		slog.String("kind", string(e.Kind)),
		slog.Int("payload_bytes", e.PayloadBytes),
		slog.Time("ts", e.TS),
	)
	if e.Kind == core.KindError {
		j.log.LogAttrs(ctx, slog.LevelDebug, "error payload", slog.String("request_id", e.RequestID), slog.String("error", ev.Payload))
	}
}

// Stats возвращает снимок счетчиков.
func (j *Journal) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stats
}
