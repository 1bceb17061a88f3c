package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"transformer/internal/core"
)

var (
	errWorkerGone = errors.New("worker closed the response channel")
	errProtocol   = errors.New("response does not match the request")
)

type state int

const (
	awaitingCommand state = iota
	awaitingMultilinePayload
	awaitingResponse
	displaying
	terminated
)

func (s state) String() string {
	switch s {
	case awaitingCommand:
		return "awaiting_command"
	case awaitingMultilinePayload:
		return "awaiting_multiline_payload"
	case awaitingResponse:
		return "awaiting_response"
	case displaying:
		return "displaying"
	case terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// maxLineBytes предел длины одной строки ввода по умолчанию.
const maxLineBytes = 1024 * 1024

// Config тексты приглашений и предел длины строки.
type Config struct {
	Prompt         string
	ContinuePrompt string
	MaxLineBytes   int
}

// DefaultConfig возвращает приглашения по умолчанию.
func DefaultConfig() Config {
	return Config{
		Prompt:         "[Awaiting your command]:",
		ContinuePrompt: "continue? Y/N",
		MaxLineBytes:   maxLineBytes,
	}
}

// Console фронтенд оператора: читает команды, отправляет воркеру и печатает ответы.
type Console struct {
	in        io.Reader
	out       io.Writer
	requests  chan<- core.Event
	responses <-chan core.Event
	log       *slog.Logger
	cfg       Config

	errLabel    string
	promptStyle lipgloss.Style
}

// New создает консоль поверх пары reader/writer.
func New(in io.Reader, out io.Writer, link *core.Link, log *slog.Logger, cfg Config) *Console {
	def := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
	if cfg.ContinuePrompt == "" {
		cfg.ContinuePrompt = def.ContinuePrompt
	}
	if cfg.MaxLineBytes <= 0 {
		cfg.MaxLineBytes = def.MaxLineBytes
	}
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:          in,
		out:         out,
		requests:    link.Requests,
		responses:   link.Responses,
		log:         log,
		cfg:         cfg,
		errLabel:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("error:"),
		promptStyle: r.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

func (c *Console) Name() string { return "console" }

// turn данные одного хода оператора.
type turn struct {
	command core.Command
	payload strings.Builder
	resp    core.Event
}

// Run ведет сессию до exit-рукопожатия, конца ввода или отмены контекста.
func (c *Console) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := c.pump(done)

	st := awaitingCommand
	var t *turn
	for {
		c.log.Debug("console state", "state", st.String())
		switch st {
		case awaitingCommand:
			c.println(c.promptStyle.Render(c.cfg.Prompt))
			line, ok, err := c.readLine(ctx, lines)
			if err != nil {
				return err
			}
			if !ok {
				return c.finish(ctx, readErr)
			}
			if line == "" {
				continue
			}
			cmd, payload, err := core.ParseCommand(line)
			if err != nil {
				c.log.Debug("parse command", "input", line, "err", err)
				c.println(fmt.Sprintf("%s `%s` is not recognized as a command, type `help` for the list", c.errLabel, line))
				c.println("")
				continue
			}
			t = &turn{command: cmd}
			t.payload.WriteString(payload)
			if cmd == core.Csv {
				t.payload.WriteByte('\n')
				st = awaitingMultilinePayload
				continue
			}
			st = awaitingResponse

		case awaitingMultilinePayload:
			line, ok, err := c.readLine(ctx, lines)
			if err != nil {
				return err
			}
			if !ok || line == "" {
				st = awaitingResponse
				continue
			}
			t.payload.WriteString(line)
			t.payload.WriteByte('\n')

		case awaitingResponse:
			resp, err := c.exchange(ctx, core.NewRequest(t.command, t.payload.String()))
			if err != nil {
				return err
			}
			if resp.Command == core.Exit {
				st = terminated
				continue
			}
			t.resp = resp
			st = displaying

		case displaying:
			c.display(t.resp)
			c.println(c.cfg.ContinuePrompt)
			line, ok, err := c.readLine(ctx, lines)
			if err != nil {
				return err
			}
			if !ok {
				return c.finish(ctx, readErr)
			}
			if line == "N" || line == "n" {
				t = &turn{command: core.Exit}
				st = awaitingResponse
				continue
			}
			st = awaitingCommand

		case terminated:
			c.log.Info("console terminated")
			return nil
		}
	}
}

func (c *Console) display(resp core.Event) {
	c.println("")
	if resp.Kind == core.KindError {
		c.println(c.errLabel + " " + resp.Payload)
	} else {
		c.println(resp.Payload)
	}
	c.println("")
}

// finish выполняет exit-рукопожатие после конца ввода.
func (c *Console) finish(ctx context.Context, readErr *error) error {
	if *readErr != nil {
		c.log.Warn("read input", "err", *readErr)
	}
	c.log.Info("input closed, ending session")
	resp, err := c.exchange(ctx, core.NewRequest(core.Exit, ""))
	if err != nil {
		return err
	}
	if resp.Command != core.Exit {
		return fmt.Errorf("expected exit response, got %s: %w", resp.Command, errProtocol)
	}
	return *readErr
}

// exchange отправляет один запрос и ждет ровно один ответ.
func (c *Console) exchange(ctx context.Context, req core.Event) (core.Event, error) {
	select {
	case <-ctx.Done():
		return core.Event{}, ctx.Err()
	case c.requests <- req:
	}
	select {
	case <-ctx.Done():
		return core.Event{}, ctx.Err()
	case resp, ok := <-c.responses:
		if !ok {
			return core.Event{}, errWorkerGone
		}
		if resp.ID != req.ID {
			return core.Event{}, fmt.Errorf("request %s, response %s: %w", req.ID, resp.ID, errProtocol)
		}
		return resp, nil
	}
}

// pump читает строки в отдельной горутине, чтобы чтение не блокировало отмену.
// Канал закрывается на EOF; ошибка чтения доступна после закрытия.
func (c *Console) pump(done <-chan struct{}) (<-chan string, *error) {
	lines := make(chan string)
	var readErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, min(64*1024, c.cfg.MaxLineBytes)), c.cfg.MaxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
		readErr = scanner.Err()
	}()
	return lines, &readErr
}

func (c *Console) readLine(ctx context.Context, lines <-chan string) (string, bool, error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case line, ok := <-lines:
		return line, ok, nil
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
