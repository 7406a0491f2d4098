package nes

import (
	"errors"
	"io"
	"log"
)

// Option configures a Console before it is powered on.
type Option func(*Console) error

// WithLogger sends diagnostics, such as unimplemented opcodes, to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Console) error {
		if l == nil {
			return errors.New("nes: nil logger")
		}
		c.logger = l
		return nil
	}
}

// WithTrace writes one line per executed instruction to w, in the layout
// of the nestest reference log.
func WithTrace(w io.Writer) Option {
	return func(c *Console) error {
		c.trace = w
		return nil
	}
}
