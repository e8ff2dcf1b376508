package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hersh/gopong/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the global zerolog logger at stderr or, when cfg.File is set,
// at a rotating log file. The returned Closer flushes that file.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	var (
		sink   io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		sink, closer = rotating, rotating
	}

	out, err := formatWriter(cfg.Format, sink, cfg.File != "")
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

func formatWriter(format string, w io.Writer, toFile bool) (io.Writer, error) {
	switch format {
	case "", "console":
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: toFile}, nil
	case "json":
		return w, nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
