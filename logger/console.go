// Package logger provides the colored console the CLI shell logs through.
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

type Console struct {
	Logger    *slog.Logger
	Colorized bool
}

func NewConsole(opts *Options) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	return &Console{
		Logger:    slog.New(newTextHandler(opts)),
		Colorized: opts.EnableColors,
	}
}

func (c *Console) Success(format string, args ...interface{}) {
	msg := "✓ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Green + Bold + msg + Reset
	}
	c.Logger.Info(msg)
}

func (c *Console) Info(format string, args ...interface{}) {
	msg := "ℹ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Blue + Bold + msg + Reset
	}
	c.Logger.Info(msg)
}

func (c *Console) Warn(format string, args ...interface{}) {
	msg := "⚠ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Yellow + Bold + msg + Reset
	}
	c.Logger.Warn(msg)
}

func (c *Console) Error(format string, args ...interface{}) {
	msg := "✖ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Red + Bold + msg + Reset
	}
	c.Logger.Error(msg)
}
