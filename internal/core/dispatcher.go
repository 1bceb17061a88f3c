package core

import (
	"context"
	"errors"
	"fmt"
)

var (
	errHandlerExists    = errors.New("handler already registered")
	errUnknownCommand   = errors.New("no handler for command")
	errInvalidArguments = errors.New("invalid arguments")
)

// Handler исполняет одну команду над payload.
type Handler interface {
	Execute(ctx context.Context, payload string) (string, error)
}

// HandlerFunc адаптирует функцию к Handler.
type HandlerFunc func(ctx context.Context, payload string) (string, error)

func (f HandlerFunc) Execute(ctx context.Context, payload string) (string, error) {
	return f(ctx, payload)
}

// Registry хранит обработчики команд.
type Registry struct {
	handlers map[Command]Handler
}

// NewRegistry создает пустой реестр.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Command]Handler)}
}

// Register привязывает обработчик к команде; повторная привязка запрещена.
func (r *Registry) Register(cmd Command, h Handler) error {
	if h == nil {
		return fmt.Errorf("handler for %s is nil: %w", cmd, errInvalidArguments)
	}
	if cmd == Exit {
		return fmt.Errorf("%s is handled by the worker loop: %w", cmd, errInvalidArguments)
	}
	if _, exists := r.handlers[cmd]; exists {
		return fmt.Errorf("%s: %w", cmd, errHandlerExists)
	}
	r.handlers[cmd] = h
	return nil
}

// Execute вызывает обработчик команды.
func (r *Registry) Execute(ctx context.Context, cmd Command, payload string) (string, error) {
	h, ok := r.handlers[cmd]
	if !ok {
		return "", fmt.Errorf("%s: %w", cmd, errUnknownCommand)
	}
	return h.Execute(ctx, payload)
}

// Commands возвращает зарегистрированные команды в порядке таблицы ключевых слов.
func (r *Registry) Commands() []Command {
	cmds := make([]Command, 0, len(r.handlers))
	for _, kw := range keywords {
		if _, ok := r.handlers[kw.Command]; ok {
			cmds = append(cmds, kw.Command)
		}
	}
	return cmds
}
