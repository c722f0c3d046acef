package flexcsv

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is returned by constructors for unusable sessions: nil
// sources or sinks, or a dialect whose characters collide.
var ErrInvalidConfig = errors.New("flexcsv: invalid configuration")

// Config describes the dialect of a parse or append session. Constructors
// copy it by value, so mutating a Config after construction never affects a
// session already built from it.
type Config struct {
	// FieldSeparator splits fields within a row. Default: ','.
	FieldSeparator byte
	// TextDelimiter wraps fields that contain separators, delimiters or
	// line breaks. Default: '"'.
	TextDelimiter byte
	// LineDelimiter terminates written rows. Default: the platform line
	// break. The read side recognizes "\r\n", "\n" and "\r" regardless.
	LineDelimiter string
	// ContainsHeader captures the first row as a header instead of
	// yielding it as data.
	ContainsHeader bool
	// SkipEmptyRows drops blank physical lines on read instead of
	// yielding them as zero-field rows. Enabled by DefaultConfig.
	SkipEmptyRows bool
	// ErrorOnDifferentFieldCount fails a parse session as soon as a row's
	// field count differs from the first row's.
	ErrorOnDifferentFieldCount bool
	// AlwaysDelimitText quotes every written field, needed or not.
	AlwaysDelimitText bool
}

// DefaultConfig returns the stock dialect: comma separated, double quoted,
// platform line breaks, blank lines skipped.
func DefaultConfig() Config {
	return Config{
		FieldSeparator: ',',
		TextDelimiter:  '"',
		LineDelimiter:  platformLineDelimiter(),
		SkipEmptyRows:  true,
	}
}

func platformLineDelimiter() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// normalize fills zero-valued separator, delimiter and line delimiter with
// their defaults so a partially filled Config stays usable.
func (c *Config) normalize() {
	if c.FieldSeparator == 0 {
		c.FieldSeparator = ','
	}
	if c.TextDelimiter == 0 {
		c.TextDelimiter = '"'
	}
	if c.LineDelimiter == "" {
		c.LineDelimiter = platformLineDelimiter()
	}
}

func (c Config) validate() error {
	if c.FieldSeparator == c.TextDelimiter {
		return fmt.Errorf("%w: field separator and text delimiter are both %q", ErrInvalidConfig, c.FieldSeparator)
	}
	if c.FieldSeparator == '\r' || c.FieldSeparator == '\n' {
		return fmt.Errorf("%w: field separator cannot be a line break", ErrInvalidConfig)
	}
	if c.TextDelimiter == '\r' || c.TextDelimiter == '\n' {
		return fmt.Errorf("%w: text delimiter cannot be a line break", ErrInvalidConfig)
	}
	return nil
}
