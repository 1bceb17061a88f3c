package worker

import (
	"context"
	"log/slog"

	"transformer/internal/core"
	"transformer/internal/journal"
	"transformer/internal/resource"
)

const terminationMessage = "termination requested by the operator"

// Recorder принимает события для журнала сессии.
type Recorder interface {
	Record(ctx context.Context, dir journal.Direction, ev core.Event)
}

// Worker исполняет запросы консоли строго по одному.
type Worker struct {
	registry  *core.Registry
	reader    resource.Reader
	requests  <-chan core.Event
	responses chan<- core.Event
	log       *slog.Logger
	recorder  Recorder
}

// New создает воркер, читающий запросы из link.
func New(registry *core.Registry, reader resource.Reader, link *core.Link, log *slog.Logger, recorder Recorder) *Worker {
	return &Worker{
		registry:  registry,
		reader:    reader,
		requests:  link.Requests,
		responses: link.Responses,
		log:       log,
		recorder:  recorder,
	}
}

func (w *Worker) Name() string { return "worker" }

// Run крутит цикл приема до exit-запроса или отмены контекста.
func (w *Worker) Run(ctx context.Context) error {
	for {
		var req core.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.requests:
			if !ok {
				w.log.Warn("request channel closed")
				return nil
			}
			req = ev
		}
		w.record(ctx, journal.Inbound, req)

		if req.Command == core.Exit {
			w.log.Info("termination requested, sending exit signal to the console")
			if err := w.send(ctx, req.Reply(terminationMessage, nil)); err != nil {
				return err
			}
			w.log.Info("exit signal sent")
			return nil
		}

		if err := w.send(ctx, w.handle(ctx, req)); err != nil {
			return err
		}
	}
}

func (w *Worker) handle(ctx context.Context, req core.Event) core.Event {
	payload, substituted, err := resource.Resolve(ctx, w.reader, req.Payload)
	if err != nil {
		w.log.Error("resolve payload", "request_id", req.ID, "err", err)
		return req.Reply("", err)
	}
	if substituted {
		w.log.Debug("payload loaded from resource", "request_id", req.ID, "bytes", len(payload))
	}

	out, err := w.registry.Execute(ctx, req.Command, payload)
	if err != nil {
		w.log.Debug("command failed", "request_id", req.ID, "command", req.Command.String(), "err", err)
	}
	return req.Reply(out, err)
}

func (w *Worker) send(ctx context.Context, resp core.Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case w.responses <- resp:
		w.record(ctx, journal.Outbound, resp)
		return nil
	}
}

func (w *Worker) record(ctx context.Context, dir journal.Direction, ev core.Event) {
	if w.recorder == nil {
		return
	}
	w.recorder.Record(ctx, dir, ev)
}
