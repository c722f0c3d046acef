package flexcsv

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// ErrFieldCount is returned (wrapped in a *FieldCountError) when a row's
// field count differs from the first row of the session.
var ErrFieldCount = errors.New("flexcsv: wrong number of fields")

// FieldCountError reports the offending line together with the expected and
// actual field counts. It unwraps to ErrFieldCount.
type FieldCountError struct {
	Line     int
	Expected int
	Actual   int
}

// Error formats the mismatch with the stored line and counts.
func (e *FieldCountError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("flexcsv: line %d: expected %d fields, got %d", e.Line, e.Expected, e.Actual)
}

// Unwrap returns ErrFieldCount so the error participates in errors.Is.
func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

// Row is one logical record of a parsed stream. Line is the 1-based
// physical line the record started on.
type Row struct {
	Line   int
	Fields []string
}

// Per-field parser states. The machine restarts at fieldStart on every
// field boundary within a row.
type parseState int

const (
	stateFieldStart parseState = iota
	stateUnquoted
	stateQuoted
	stateQuoteInQuoted
)

// Parser converts a character stream into a forward-only sequence of rows.
// The stream is read once, front to back; the parser never buffers more
// than one row ahead and is not safe for concurrent use.
type Parser struct {
	src io.Reader
	cfg Config

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	line       int
	header     []string
	headerDone bool
	expected   int
	finished   bool
	err        error

	closer io.Closer // set when the parser opened its own source
}

// NewParser creates a parse session over r with the given dialect. It fails
// fast on a nil source or an invalid configuration, before any I/O occurs.
func NewParser(r io.Reader, cfg Config) (*Parser, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidConfig)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Parser{
		src:      r,
		cfg:      cfg,
		buf:      make([]byte, defaultBufferSize),
		line:     1,
		expected: -1,
	}, nil
}

// NextRow returns the next record, or io.EOF once the stream is exhausted.
// Returned rows own their fields; the parser keeps no reference to them.
// After a field-count failure the session is unusable and keeps returning
// the same error.
func (p *Parser) NextRow() (*Row, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.finished {
		return nil, io.EOF
	}
	if p.cfg.ContainsHeader && !p.headerDone {
		if err := p.readHeader(); err != nil {
			return nil, err
		}
	}

	for {
		row, err := p.readRow()
		if err != nil {
			if err == io.EOF {
				p.finished = true
			} else {
				p.err = err
			}
			return nil, err
		}
		if p.cfg.SkipEmptyRows && len(row.Fields) == 0 {
			continue
		}
		if err := p.checkFieldCount(row); err != nil {
			p.err = err
			return nil, err
		}
		return row, nil
	}
}

// Header returns the header row of a session whose ContainsHeader flag is
// set, reading it from the stream on demand when no row has been pulled
// yet. Sessions without a header return nil.
func (p *Parser) Header() ([]string, error) {
	if !p.cfg.ContainsHeader {
		return nil, nil
	}
	if !p.headerDone {
		if p.err != nil {
			return nil, p.err
		}
		if p.finished {
			return nil, io.EOF
		}
		if err := p.readHeader(); err != nil {
			return nil, err
		}
	}
	return p.header, nil
}

// Close releases the underlying source when the parser owns it (opened via
// ParseFile). Parsers over caller-supplied streams leave the stream alone.
func (p *Parser) Close() error {
	p.finished = true
	if p.closer == nil {
		return nil
	}
	c := p.closer
	p.closer = nil
	return c.Close()
}

// readHeader captures the first produced row as the header. The header's
// field count becomes the required count for validation.
func (p *Parser) readHeader() error {
	p.headerDone = true
	for {
		row, err := p.readRow()
		if err != nil {
			if err == io.EOF {
				p.finished = true
			} else {
				p.err = err
			}
			return err
		}
		if p.cfg.SkipEmptyRows && len(row.Fields) == 0 {
			continue
		}
		p.header = row.Fields
		p.expected = len(row.Fields)
		return nil
	}
}

func (p *Parser) checkFieldCount(row *Row) error {
	if !p.cfg.ErrorOnDifferentFieldCount {
		return nil
	}
	if p.expected < 0 {
		p.expected = len(row.Fields)
		return nil
	}
	if len(row.Fields) != p.expected {
		return &FieldCountError{Line: row.Line, Expected: p.expected, Actual: len(row.Fields)}
	}
	return nil
}

// readRow runs the field state machine until a row terminator or the end of
// the stream. io.EOF is returned only when the stream ends before any
// character of a new row was consumed.
func (p *Parser) readRow() (*Row, error) {
	row := &Row{Line: p.line, Fields: make([]string, 0, 8)}
	var field []byte
	state := stateFieldStart

	for {
		b, err := p.readByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			// End of stream closes the pending field and row; an
			// unterminated quoted field keeps whatever accumulated. A row
			// that never saw a character is no row at all.
			if state == stateFieldStart && len(row.Fields) == 0 {
				return nil, io.EOF
			}
			row.Fields = append(row.Fields, string(field))
			return row, nil
		}

		switch state {
		case stateFieldStart:
			switch b {
			case p.cfg.TextDelimiter:
				state = stateQuoted
			case p.cfg.FieldSeparator:
				row.Fields = append(row.Fields, "")
			case '\n', '\r':
				if err := p.terminate(b); err != nil {
					return nil, err
				}
				// A line with zero characters is a zero-field row; a
				// trailing separator still yields its empty field.
				if len(row.Fields) > 0 {
					row.Fields = append(row.Fields, "")
				}
				return row, nil
			default:
				field = append(field, b)
				state = stateUnquoted
			}

		case stateUnquoted:
			switch b {
			case p.cfg.FieldSeparator:
				row.Fields = append(row.Fields, string(field))
				field = field[:0]
				state = stateFieldStart
			case '\n', '\r':
				if err := p.terminate(b); err != nil {
					return nil, err
				}
				row.Fields = append(row.Fields, string(field))
				return row, nil
			default:
				// Quote characters inside an unquoted field are data.
				field = append(field, b)
			}

		case stateQuoted:
			switch b {
			case p.cfg.TextDelimiter:
				state = stateQuoteInQuoted
			case '\n':
				field = append(field, b)
				p.line++
			case '\r':
				// Line breaks inside a quoted field are data, passed
				// through verbatim; a CRLF pair counts as one line.
				field = append(field, b)
				next, err := p.peekByte()
				if err == nil && next == '\n' {
					p.bufPos++
					field = append(field, '\n')
				} else if err != nil && err != io.EOF {
					return nil, err
				}
				p.line++
			default:
				field = append(field, b)
			}

		case stateQuoteInQuoted:
			switch b {
			case p.cfg.TextDelimiter:
				// Doubled delimiter: one literal quote character.
				field = append(field, b)
				state = stateQuoted
			case p.cfg.FieldSeparator:
				row.Fields = append(row.Fields, string(field))
				field = field[:0]
				state = stateFieldStart
			case '\n', '\r':
				if err := p.terminate(b); err != nil {
					return nil, err
				}
				row.Fields = append(row.Fields, string(field))
				return row, nil
			default:
				// Stray character after a closing quote. Tolerated: keep
				// it as data and fall back to unquoted accumulation.
				field = append(field, b)
				state = stateUnquoted
			}
		}
	}
}

// terminate consumes the remainder of a row terminator (the '\n' of a CRLF
// pair) and advances the line counter.
func (p *Parser) terminate(b byte) error {
	if b == '\r' {
		next, err := p.peekByte()
		if err == nil && next == '\n' {
			p.bufPos++
		} else if err != nil && err != io.EOF {
			return err
		}
	}
	p.line++
	return nil
}

func (p *Parser) readByte() (byte, error) {
	b, err := p.peekByte()
	if err != nil {
		return 0, err
	}
	p.bufPos++
	return b, nil
}

// peekByte returns the next buffered byte, refilling from src as needed,
// and propagates any read error.
func (p *Parser) peekByte() (byte, error) {
	for {
		if p.bufPos < p.bufLen {
			return p.buf[p.bufPos], nil
		}
		if p.bufErr != nil {
			return 0, p.bufErr
		}

		n, err := p.src.Read(p.buf)
		if n == 0 && err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		p.bufPos = 0
		p.bufLen = n
		p.bufErr = err
	}
}
