package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// New builds a logger. level falls back to info when it cannot be parsed;
// format "json" selects the JSON formatter, anything else the text one.
func New(level, format string) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	l.SetOutput(os.Stderr)
	return l
}

// Settings are the logging knobs read from the environment.
type Settings struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT"`
}

func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{Level: "info"}, fmt.Errorf("parse log env: %w", err)
	}
	return s, nil
}

// FromEnv builds a logger from LOG_LEVEL (default "info") and LOG_FORMAT.
func FromEnv() *logrus.Logger {
	s, _ := LoadSettings()
	return New(s.Level, s.Format)
}

// Discard returns an entry that writes nowhere. Components use it when no
// logger is passed in.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// Component returns base tagged with the component name, or a discard entry
// when base is nil.
func Component(base *logrus.Entry, name string) *logrus.Entry {
	if base == nil {
		base = Discard()
	}
	return base.WithField("component", name)
}
