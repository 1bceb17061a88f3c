package worker

import (
	"context"
	"fmt"
	"strings"

	"transformer/internal/core"
)

// HelpHandler отвечает списком команд; payload игнорируется.
func HelpHandler() core.Handler {
	return core.HandlerFunc(func(ctx context.Context, payload string) (string, error) {
		return HelpText(), nil
	})
}

// HelpText перечисляет ключевые слова в порядке таблицы.
func HelpText() string {
	kws := core.Keywords()
	width := 0
	for _, kw := range kws {
		width = max(width, len(kw.Word))
	}

	var b strings.Builder
	b.WriteString("available commands:\n")
	for _, kw := range kws {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, kw.Word, kw.Description)
	}
	b.WriteString("prefix the text with `file:` to read it from a file, e.g. `upper file: notes.txt`")
	return b.String()
}
