package transform

import (
	"context"
	"errors"
	"fmt"

	"transformer/internal/core"
	"transformer/internal/table"
)

var errNotTransform = errors.New("not a transform command")

// Pipeline сопоставляет командам последовательности стадий.
type Pipeline struct {
	stages map[core.Command][]Stage
}

// New создает pipeline с опциями таблицы для csv.
func New(opts table.Options) *Pipeline {
	return &Pipeline{stages: map[core.Command][]Stage{
		core.Lowercase:    {Lower},
		core.Uppercase:    {Upper},
		core.RemoveSpaces: {RemoveSpaces},
		core.Slugify:      {Slugify},
		core.Title:        {Title},
		core.Pascal:       {Title, RemoveSpaces},
		core.Passwordify:  {Title, RemoveSpaces, Passwordify},
		core.Csv:          {Csv(opts)},
	}}
}

// Stages возвращает стадии команды.
func (p *Pipeline) Stages(cmd core.Command) ([]Stage, error) {
	stages, ok := p.stages[cmd]
	if !ok {
		return nil, fmt.Errorf("%s: %w", cmd, errNotTransform)
	}
	return stages, nil
}

// Transform исполняет pipeline команды над payload.
func (p *Pipeline) Transform(payload string, cmd core.Command) (string, error) {
	stages, err := p.Stages(cmd)
	if err != nil {
		return "", err
	}
	return Apply(payload, stages...)
}

// Register привязывает все transform-команды к реестру.
func (p *Pipeline) Register(r *core.Registry) error {
	for _, kw := range core.Keywords() {
		cmd := kw.Command
		if _, ok := p.stages[cmd]; !ok {
			continue
		}
		h := core.HandlerFunc(func(ctx context.Context, payload string) (string, error) {
			return p.Transform(payload, cmd)
		})
		if err := r.Register(cmd, h); err != nil {
			return fmt.Errorf("register %s: %w", cmd, err)
		}
	}
	return nil
}
