package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var errInvalidConfig = errors.New("invalid config")

// Config описывает параметры консоли.
type Config struct {
	Log struct {
		Level  string `yaml:"level" toml:"level"`
		Format string `yaml:"format" toml:"format"`
	} `yaml:"log" toml:"log"`
	Console struct {
		Prompt         string `yaml:"prompt" toml:"prompt"`
		ContinuePrompt string `yaml:"continue_prompt" toml:"continue_prompt"`
		MaxLineBytes   int    `yaml:"max_line_bytes" toml:"max_line_bytes"`
	} `yaml:"console" toml:"console"`
	Table struct {
		HeaderSep string `yaml:"header_sep" toml:"header_sep"`
		ColumnSep string `yaml:"column_sep" toml:"column_sep"`
	} `yaml:"table" toml:"table"`
	Resource struct {
		Hidden  []string `yaml:"hidden" toml:"hidden"`
		Allowed []string `yaml:"allowed" toml:"allowed"`
	} `yaml:"resource" toml:"resource"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Console.Prompt = "[Awaiting your command]:"
	cfg.Console.ContinuePrompt = "continue? Y/N"
	cfg.Console.MaxLineBytes = 1024 * 1024
	cfg.Table.HeaderSep = "="
	cfg.Table.ColumnSep = "|"
	cfg.Resource.Hidden = []string{"**/.git/**", "**/.ssh/**"}
	return cfg
}

// Load читает YAML или TOML (по расширению) поверх значений по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задает оператор.
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("config file is empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("decode toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет разделители таблицы, лимит строки и параметры логов.
func (c Config) Validate() error {
	if utf8.RuneCountInString(c.Table.HeaderSep) != 1 {
		return fmt.Errorf("table.header_sep must be a single character: %w", errInvalidConfig)
	}
	if utf8.RuneCountInString(c.Table.ColumnSep) != 1 {
		return fmt.Errorf("table.column_sep must be a single character: %w", errInvalidConfig)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, errInvalidConfig)
	}
	if c.Log.Level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level %q: %w", c.Log.Level, errInvalidConfig)
		}
	}
	if c.Console.MaxLineBytes <= 0 {
		return fmt.Errorf("console.max_line_bytes must be positive: %w", errInvalidConfig)
	}
	return nil
}

// HeaderSep первый символ table.header_sep.
func (c Config) HeaderSep() rune {
	r, _ := utf8.DecodeRuneInString(c.Table.HeaderSep)
	return r
}

// ColumnSep первый символ table.column_sep.
func (c Config) ColumnSep() rune {
	r, _ := utf8.DecodeRuneInString(c.Table.ColumnSep)
	return r
}
