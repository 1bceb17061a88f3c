package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"transformer/internal/config"
	"transformer/internal/core"
	"transformer/internal/journal"
	"transformer/internal/resource"
	"transformer/internal/table"
	"transformer/internal/transform"
	"transformer/internal/transports/console"
	"transformer/internal/worker"
)

// App агрегирует зависимости консоли и воркера.
type App struct {
	Registry   *core.Registry
	Supervisor *core.Supervisor
	Journal    *journal.Journal
	Config     config.Config
	log        *slog.Logger
}

// NewRegistry строит реестр transform-команд и help.
func NewRegistry(cfg config.Config) (*core.Registry, error) {
	r := core.NewRegistry()
	opts := table.Options{HeaderSep: cfg.HeaderSep(), ColumnSep: cfg.ColumnSep()}
	if err := transform.New(opts).Register(r); err != nil {
		return nil, fmt.Errorf("register pipeline: %w", err)
	}
	if err := r.Register(core.Help, worker.HelpHandler()); err != nil {
		return nil, fmt.Errorf("register help: %w", err)
	}
	return r, nil
}

// NewApp связывает консоль и воркер через один Link.
func NewApp(cfg config.Config, in io.Reader, out io.Writer, log *slog.Logger) (*App, error) {
	r, err := NewRegistry(cfg)
	if err != nil {
		return nil, err
	}

	link := core.NewLink()
	jr := journal.New(log.With("component", "journal"))
	reader := resource.NewFS(resource.Policy{
		Hidden:  cfg.Resource.Hidden,
		Allowed: cfg.Resource.Allowed,
	})

	w := worker.New(r, reader, link, log.With("component", "worker"), jr)
	c := console.New(in, out, link, log.With("component", "console"), console.Config{
		Prompt:         cfg.Console.Prompt,
		ContinuePrompt: cfg.Console.ContinuePrompt,
		MaxLineBytes:   cfg.Console.MaxLineBytes,
	})

	sup := core.NewSupervisor()
	if err := sup.Register(w); err != nil {
		return nil, fmt.Errorf("register worker: %w", err)
	}
	if err := sup.Register(c); err != nil {
		return nil, fmt.Errorf("register console: %w", err)
	}

	return &App{
		Registry:   r,
		Supervisor: sup,
		Journal:    jr,
		Config:     cfg,
		log:        log,
	}, nil
}

// Serve ведет сессию до exit-рукопожатия.
func (a *App) Serve(ctx context.Context) error {
	a.log.Info("session started")
	err := a.Supervisor.RunAll(ctx)
	st := a.Journal.Stats()
	a.log.Info("session ended", "requests", st.Requests, "outputs", st.Outputs, "errors", st.Errors)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}
