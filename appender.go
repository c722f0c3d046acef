package flexcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNilAppender = errors.New("flexcsv: appender is nil")

// Appender serializes rows of fields into correctly quoted delimited text.
// Output is buffered; call Flush (or Close) before relying on the data
// having reached the sink. Not safe for concurrent use.
type Appender struct {
	dst *bufio.Writer
	cfg Config
	err error

	closer io.Closer // set when the appender opened its own sink
}

// NewAppender creates an append session over w with the given dialect. It
// fails fast on a nil sink or an invalid configuration.
func NewAppender(w io.Writer, cfg Config) (*Appender, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrInvalidConfig)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Appender{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
		cfg: cfg,
	}, nil
}

// AppendRow writes one record followed by the configured line delimiter.
// Fields are quoted when they contain the separator, the text delimiter or
// a line break, or unconditionally under AlwaysDelimitText.
func (a *Appender) AppendRow(fields []string) error {
	if a == nil {
		return errNilAppender
	}
	if a.err != nil {
		return a.err
	}

	for i, field := range fields {
		if i > 0 {
			if err := a.dst.WriteByte(a.cfg.FieldSeparator); err != nil {
				a.err = err
				return err
			}
		}
		if err := a.appendField(field); err != nil {
			a.err = err
			return err
		}
	}

	if _, err := a.dst.WriteString(a.cfg.LineDelimiter); err != nil {
		a.err = err
		return err
	}
	return nil
}

// AppendAll writes every row in order, stopping at the first error.
// Flushing is left to the caller.
func (a *Appender) AppendAll(rows [][]string) error {
	if a == nil {
		return errNilAppender
	}
	for _, row := range rows {
		if err := a.AppendRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush forces buffered output through to the sink.
func (a *Appender) Flush() error {
	if a == nil {
		return errNilAppender
	}
	if a.err != nil {
		return a.err
	}
	if err := a.dst.Flush(); err != nil {
		a.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the appender.
func (a *Appender) Error() error {
	if a == nil {
		return errNilAppender
	}
	return a.err
}

// Close flushes and, when the appender owns its sink (opened via
// OpenAppender), releases it. Appenders over caller-supplied sinks leave
// the sink open.
func (a *Appender) Close() error {
	if a == nil {
		return errNilAppender
	}
	flushErr := a.Flush()
	if a.closer == nil {
		return flushErr
	}
	c := a.closer
	a.closer = nil
	if err := c.Close(); flushErr == nil {
		return err
	}
	return flushErr
}

func (a *Appender) appendField(field string) error {
	if !a.fieldNeedsDelimiting(field) {
		_, err := a.dst.WriteString(field)
		return err
	}

	quote := a.cfg.TextDelimiter
	if err := a.dst.WriteByte(quote); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] != quote {
			continue
		}
		if start < i {
			if _, err := a.dst.WriteString(field[start:i]); err != nil {
				return err
			}
		}
		if _, err := a.dst.Write([]byte{quote, quote}); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(field) {
		if _, err := a.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return a.dst.WriteByte(quote)
}

func (a *Appender) fieldNeedsDelimiting(field string) bool {
	if a.cfg.AlwaysDelimitText {
		return true
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case a.cfg.FieldSeparator, a.cfg.TextDelimiter, '\n', '\r':
			return true
		}
	}
	// Exotic line delimiters still force quoting.
	return strings.ContainsAny(field, a.cfg.LineDelimiter)
}
