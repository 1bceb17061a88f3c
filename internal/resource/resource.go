package resource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Prefix отмечает payload, который нужно заменить содержимым файла.
const Prefix = "file:"

var (
	// ErrDenied путь закрыт политикой.
	ErrDenied = errors.New("access denied")

	errEmptyPath = errors.New("empty path")
)

// Reader читает ресурс по имени.
type Reader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// ResourceError ошибка разрешения file:-payload.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("read resource %q: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Policy ограничивает доступные пути glob-шаблонами doublestar.
type Policy struct {
	Hidden  []string
	Allowed []string
}

// DefaultPolicy скрывает каталоги VCS и ключей.
func DefaultPolicy() Policy {
	return Policy{Hidden: []string{"**/.git/**", "**/.ssh/**"}}
}

// Check возвращает ErrDenied, если путь скрыт или не входит в allowlist.
func (p Policy) Check(path string) error {
	clean := filepath.Clean(path)
	hidden, err := matchAny(clean, p.Hidden)
	if err != nil {
		return err
	}
	if hidden {
		return fmt.Errorf("path %s is hidden: %w", clean, ErrDenied)
	}
	if len(p.Allowed) == 0 {
		return nil
	}
	allowed, err := matchAny(clean, p.Allowed)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("path %s is not allowed: %w", clean, ErrDenied)
	}
	return nil
}

func matchAny(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		match, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// FS читает файлы локальной файловой системы с учетом политики.
type FS struct {
	policy Policy
}

// NewFS создает reader с заданной политикой.
func NewFS(policy Policy) *FS {
	return &FS{policy: policy}
}

func (f *FS) Read(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.policy.Check(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь проверен политикой.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Resolve подставляет содержимое ресурса, если payload начинается с Prefix.
// Второй результат сообщает, была ли подстановка.
func Resolve(ctx context.Context, r Reader, payload string) (string, bool, error) {
	if !strings.HasPrefix(payload, Prefix) {
		return payload, false, nil
	}
	path := strings.TrimSpace(strings.TrimPrefix(payload, Prefix))
	data, err := r.Read(ctx, path)
	if err != nil {
		return "", true, &ResourceError{Path: path, Err: err}
	}
	return string(data), true, nil
}
