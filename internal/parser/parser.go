// Package parser selects the reader that turns raw input bytes into a table.
package parser

import (
	"fmt"
	"io"

	"trackseed/internal/config"
	csvparser "trackseed/internal/parser/csv"
	"trackseed/internal/table"
)

// TableReader reads an entire input into a table.Table.
type TableReader interface {
	ReadTable(r io.Reader) (*table.Table, error)
}

// New returns the TableReader for cfg.Kind. Only "csv" is built in.
func New(cfg config.Parser) (TableReader, error) {
	switch cfg.Kind {
	case "", "csv":
		return csvparser.NewParser(csvparser.OptionsFrom(cfg.Options)), nil
	default:
		return nil, fmt.Errorf("parser: unsupported kind %q", cfg.Kind)
	}
}
