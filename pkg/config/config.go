// Package config holds the settings of the ndscan command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidBuffer = errors.New("buffer sizes must be positive")
	ErrInvalidLevel  = errors.New("unknown log level")
)

type Config struct {
	Strict        bool   `yaml:"strict"`
	Charset       string `yaml:"charset"`
	LogLevel      string `yaml:"log_level"`
	Pretty        bool   `yaml:"pretty"`
	BufferSize    int    `yaml:"buffer_size"`
	MaxRead       int    `yaml:"max_read"`
	MaxRecordSize int    `yaml:"max_record_size"`
	Stream        bool   `yaml:"stream"`
	Path          string `yaml:"path"`
}

func Default() Config {
	return Config{
		LogLevel:   "info",
		BufferSize: 16384,
		MaxRead:    4096,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values; an empty file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BufferSize <= 0 || c.MaxRead <= 0 || c.MaxRecordSize < 0 {
		return fmt.Errorf("%w: buffer_size=%d max_read=%d max_record_size=%d",
			ErrInvalidBuffer, c.BufferSize, c.MaxRead, c.MaxRecordSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps the level names accepted in config files and flags.
func ParseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}
