package config

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dendrascience/gdcsort/gdc"
)

// EnvFiles are loaded, when present, before the environment is parsed.
var EnvFiles = []string{".env", ".env.local"}

// Options holds the settings shared by the commands. Environment values act
// as defaults; command-line flags override them.
type Options struct {
	Action   string `env:"GDCSORT_ACTION" envDefault:"none"`
	Cut      string `env:"GDCSORT_CUT" envDefault:"36"`
	Verify   bool   `env:"GDCSORT_VERIFY" envDefault:"false"`
	Dir      string `env:"GDCSORT_DIR" envDefault:"."`
	LogLevel string `env:"GDCSORT_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv loads the env files that exist and returns how many were loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the env files and parses the environment into Options.
func Load() (Options, error) {
	if _, err := LoadEnv(EnvFiles); err != nil {
		return Options{}, fmt.Errorf("loading env files: %w", err)
	}
	return Parse()
}

// Parse reads Options from the process environment only.
func Parse() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Validate checks the action and the prefix cut.
func (o Options) Validate() error {
	if _, err := gdc.ParseAction(o.Action); err != nil {
		return err
	}
	if _, err := gdc.ParseCut(o.Cut); err != nil {
		return err
	}
	switch o.LogLevel {
	case "silent", "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("log level must be silent, error, warn, info or debug, got %q", o.LogLevel)
	}
	return nil
}

// LogrusLevel maps LogLevel onto a logrus level.
func (o Options) LogrusLevel() logrus.Level {
	switch o.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger returns a text logger writing to w at the configured level.
func (o Options) Logger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(o.LogrusLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return logger
}
