package flexcsv

import (
	"errors"
	"io"
)

// ErrNoData reports a read that produced no rows at all: empty input, or
// input reduced to nothing by empty-row skipping and header extraction. It
// is distinct from an I/O failure and checkable with errors.Is.
var ErrNoData = errors.New("flexcsv: no data")

// Container holds the fully materialized result of one read: an optional
// header plus every data row in input order.
type Container struct {
	Header []string
	Rows   []*Row
}

// RowCount returns the number of data rows; the header does not count.
func (c *Container) RowCount() int {
	if c == nil {
		return 0
	}
	return len(c.Rows)
}

// Read drives a parse session over r to exhaustion and collects the rows.
// A read yielding no rows returns ErrNoData instead of an empty container.
func Read(r io.Reader, cfg Config) (*Container, error) {
	p, err := NewParser(r, cfg)
	if err != nil {
		return nil, err
	}
	return readAll(p)
}

func readAll(p *Parser) (*Container, error) {
	var rows []*Row
	for {
		row, err := p.NextRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}

	header, err := p.Header()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &Container{Header: header, Rows: rows}, nil
}
