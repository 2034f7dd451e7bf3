package bootstrap

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/dockframe/internal/infrastructure/config"
	"github.com/bnema/dockframe/internal/logging"
)

// NewLogger builds the process logger from the logging section. With
// cfg.File set, a rotating JSON log is written under the XDG state
// directory as well. The returned close function flushes that file.
func NewLogger(cfg config.LoggingConfig, stderr io.Writer) (zerolog.Logger, func() error, error) {
	if stderr == nil {
		stderr = os.Stderr
	}

	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Level)
	lc.Output = stderr
	if cfg.Format == "json" {
		lc.Format = "json"
	}

	if !cfg.File {
		return logging.New(lc), func() error { return nil }, nil
	}

	dir, err := config.GetLogDir()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	file, err := logging.NewRotatingFile(logging.RotationConfig{
		Dir:        dir,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	lc.File = file

	logger := logging.New(lc)
	logger.Debug().Str("file", file.Path()).Msg("file logging enabled")
	return logger, file.Close, nil
}
