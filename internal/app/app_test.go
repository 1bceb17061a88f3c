package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"transformer/internal/config"
)

func serve(t *testing.T, cfg config.Config, input string) string {
	t.Helper()
	var out bytes.Buffer
	a, err := NewApp(cfg, strings.NewReader(input), &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Serve(ctx); err != nil {
		t.Fatalf("serve: %v", err)
	}
	return out.String()
}

func TestSessionEndToEnd(t *testing.T) {
	out := serve(t, config.Default(), strings.Join([]string{
		"pascal hello world",
		"y",
		"password assassin",
		"y",
		"title café",
		"y",
		"csv a,bb",
		"1,22",
		"",
		"n",
	}, "\n")+"\n")

	for _, want := range []string{
		"HelloWorld",
		"A$$@$$!n",
		"letters have to be ascii",
		"=======\n|a |bb|\n=======\n|1 |22|\n=======\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestSessionExitCommand(t *testing.T) {
	out := serve(t, config.Default(), "exit\n")
	if strings.Contains(out, "termination requested") || strings.Contains(out, "continue?") {
		t.Fatalf("exit must not print a response:\n%s", out)
	}
}

func TestSessionColumnMismatchKeepsRunning(t *testing.T) {
	out := serve(t, config.Default(), "csv a,b\n1,2,3\n\ny\nupper done\nn\n")
	if !strings.Contains(out, "mismatched columns count at line 1") {
		t.Fatalf("missing mismatch error:\n%s", out)
	}
	if strings.Contains(out, "|a|b|") {
		t.Fatalf("no partial table may be printed:\n%s", out)
	}
	if !strings.Contains(out, "DONE") {
		t.Fatalf("session did not continue:\n%s", out)
	}
}

func TestSessionFilePayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte("name,age\nbob,42\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Default()
	cfg.Table.HeaderSep = "-"

	out := serve(t, cfg, "csv file: "+path+"\n\ny\nupper file: "+filepath.Join(filepath.Dir(path), "missing")+"\nn\n")
	if !strings.Contains(out, "-----------\n|name|age |\n-----------\n|bob |42  |\n-----------\n") {
		t.Fatalf("file table not rendered:\n%s", out)
	}
	if !strings.Contains(out, "read resource") {
		t.Fatalf("missing resource error:\n%s", out)
	}
}

func TestSessionHelp(t *testing.T) {
	out := serve(t, config.Default(), "help\nn\n")
	if !strings.Contains(out, "available commands") || !strings.Contains(out, "password") {
		t.Fatalf("help not printed:\n%s", out)
	}
}
