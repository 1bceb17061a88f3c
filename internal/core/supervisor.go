package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

var errUnitExists = errors.New("unit already registered")

// Unit независимо планируемая единица исполнения (консоль, воркер).
type Unit interface {
	Name() string
	Run(ctx context.Context) error
}

// Supervisor запускает единицы исполнения и дожидается их завершения.
type Supervisor struct {
	mu    sync.Mutex
	units []Unit
	names map[string]struct{}
}

// NewSupervisor создает пустой supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{names: make(map[string]struct{})}
}

// Register добавляет единицу; имена должны быть уникальны.
func (s *Supervisor) Register(u Unit) error {
	if u == nil {
		return fmt.Errorf("unit is nil: %w", errInvalidArguments)
	}
	name := u.Name()
	if name == "" {
		return fmt.Errorf("unit name is empty: %w", errInvalidArguments)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.names[name]; exists {
		return fmt.Errorf("%s: %w", name, errUnitExists)
	}
	s.names[name] = struct{}{}
	s.units = append(s.units, u)
	return nil
}

// RunAll запускает все единицы; ошибка одной отменяет контекст остальных.
func (s *Supervisor) RunAll(ctx context.Context) error {
	s.mu.Lock()
	list := make([]Unit, len(s.units))
	copy(list, s.units)
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range list {
		u := u
		g.Go(func() error {
			if err := u.Run(gctx); err != nil {
				return fmt.Errorf("unit %s: %w", u.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
