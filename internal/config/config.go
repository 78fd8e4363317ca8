package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vovanwin/id24json/pkg/compat"
)

const (
	// DefaultPath файл настроек, который читается, если путь не задан явно
	DefaultPath = "id24json.toml"
	// EnvPrefix префикс переменных окружения; вложенность через "__":
	// ID24JSON_LOG__LEVEL=debug
	EnvPrefix = "ID24JSON_"
)

// Config настройки утилиты id24json
type Config struct {
	DefaultExecutable string      `koanf:"default_executable"`
	Indent            string      `koanf:"indent"`
	Log               LogConfig   `koanf:"log"`
	Watch             WatchConfig `koanf:"watch"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // console или json
}

type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		DefaultExecutable: compat.MBF21.String(),
		Indent:            "  ",
		Log:               LogConfig{Level: "info", Format: "console"},
		Watch:             WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// LoadOptions параметры загрузки
type LoadOptions struct {
	Path      string // Путь к TOML файлу; пустой путь означает DefaultPath
	Optional  bool   // Отсутствующий файл не считается ошибкой
	EnableEnv bool   // Переопределять значения переменными окружения
}

// Load загружает дефолты, затем TOML файл, затем переменные окружения
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	path := opts.Path
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("загрузка %s: %w", path, err)
		}
	} else if !(opts.Optional && errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	if opts.EnableEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("загрузка переменных окружения: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("разбор настроек: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey ID24JSON_LOG__LEVEL -> log.level
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Validate проверяет значения, которые нельзя проверить типом поля
func (c *Config) Validate() error {
	if _, err := c.Executable(); err != nil {
		return fmt.Errorf("default_executable: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: неподдерживаемый формат %q (допустимы: console, json)", c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce: отрицательное значение %v", c.Watch.Debounce)
	}
	return nil
}

// Executable возвращает executable по умолчанию
func (c *Config) Executable() (compat.Executable, error) {
	return compat.ParseExecutable(c.DefaultExecutable)
}
