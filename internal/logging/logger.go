package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the process-wide diagnostic logger. It discards everything until
// Configure is called.
var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

// SetGlobalLogger replaces Logger and the zerolog context default
func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// Configure installs a console logger writing to w at the named level.
// "disabled" (or an empty level) keeps the logger silent.
func Configure(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if lvl == zerolog.Disabled {
		SetGlobalLogger(zerolog.Nop())
		return nil
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	SetGlobalLogger(zerolog.New(output).Level(lvl).With().Timestamp().Logger())
	return nil
}

// ParseLevel maps a --log-level value to a zerolog level
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "disabled" || level == "off" {
		return zerolog.Disabled, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }
