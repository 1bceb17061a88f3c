package core

import (
	"context"
	"errors"
	"testing"
)

type fakeHandler struct {
	execErr error
	calls   int
}

func (f *fakeHandler) Execute(ctx context.Context, payload string) (string, error) {
	f.calls++
	if f.execErr != nil {
		return "", f.execErr
	}
	return "handled:" + payload, nil
}

func TestRegisterAndExecute(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	h := &fakeHandler{}
	if err := r.Register(Uppercase, h); err != nil {
		t.Fatalf("register: %v", err)
	}
	out, err := r.Execute(ctx, Uppercase, "ping")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "handled:ping" || h.calls != 1 {
		t.Fatalf("unexpected result: %q calls=%d", out, h.calls)
	}
}

func TestDuplicateHandler(t *testing.T) {
	r := NewRegistry()
	h := &fakeHandler{}
	if err := r.Register(Csv, h); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register(Csv, h)
	if !errors.Is(err, errHandlerExists) {
		t.Fatalf("expected errHandlerExists, got %v", err)
	}
}

func TestRegisterRejectsExitAndNil(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Exit, &fakeHandler{}); !errors.Is(err, errInvalidArguments) {
		t.Fatalf("expected exit to be rejected, got %v", err)
	}
	if err := r.Register(Title, nil); !errors.Is(err, errInvalidArguments) {
		t.Fatalf("expected nil handler to be rejected, got %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	r := NewRegistry()
	_, err := r.Execute(context.Background(), Slugify, "x")
	if !errors.Is(err, errUnknownCommand) {
		t.Fatalf("expected errUnknownCommand, got %v", err)
	}
}

func TestHandlerErrorPropagates(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	if err := r.Register(Title, &fakeHandler{execErr: boom}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Execute(context.Background(), Title, "x"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCommandsFollowKeywordOrder(t *testing.T) {
	r := NewRegistry()
	for _, c := range []Command{Help, Lowercase, Csv} {
		if err := r.Register(c, HandlerFunc(func(ctx context.Context, p string) (string, error) { return p, nil })); err != nil {
			t.Fatalf("register %s: %v", c, err)
		}
	}
	got := r.Commands()
	want := []Command{Lowercase, Csv, Help}
	if len(got) != len(want) {
		t.Fatalf("unexpected commands: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected commands: %v", got)
		}
	}
}
