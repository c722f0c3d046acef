package flexcsv

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ReadFile reads the whole file at path into a Container. A nil enc treats
// the file as UTF-8; otherwise the bytes are decoded through enc first.
func ReadFile(path string, enc encoding.Encoding, cfg Config) (*Container, error) {
	p, err := ParseFile(path, enc, cfg)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return readAll(p)
}

// ParseFile opens path and returns a parse session over it. The parser owns
// the file; Close releases it on every exit path the caller takes.
func ParseFile(path string, enc encoding.Encoding, cfg Config) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flexcsv: open %s: %w", path, err)
	}

	var src io.Reader = f
	if enc != nil {
		src = transform.NewReader(f, enc.NewDecoder())
	}

	p, err := NewParser(src, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

// WriteFile writes all rows to path and flushes. With appendMode the rows
// are added after any existing content instead of replacing it.
func WriteFile(path string, enc encoding.Encoding, cfg Config, rows [][]string, appendMode bool) (err error) {
	a, err := OpenAppender(path, enc, cfg, appendMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()
	return a.AppendAll(rows)
}

// OpenAppender opens path for writing and binds an append session to it.
// The appender owns the file; Close flushes and releases it. A nil enc
// writes UTF-8; otherwise output is encoded through enc.
func OpenAppender(path string, enc encoding.Encoding, cfg Config, appendMode bool) (*Appender, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("flexcsv: open %s: %w", path, err)
	}

	var dst io.Writer = f
	var tw io.Closer
	if enc != nil {
		w := transform.NewWriter(f, enc.NewEncoder())
		dst = w
		tw = w
	}

	a, err := NewAppender(dst, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = &sinkCloser{transformer: tw, file: f}
	return a, nil
}

// sinkCloser closes the encoding transformer (flushing any pending state)
// before the file itself.
type sinkCloser struct {
	transformer io.Closer // nil when writing raw bytes
	file        *os.File
}

func (c *sinkCloser) Close() error {
	var first error
	if c.transformer != nil {
		first = c.transformer.Close()
	}
	if err := c.file.Close(); first == nil {
		first = err
	}
	return first
}
