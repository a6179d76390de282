// Package csv reads a delimited text file with a header row into an in-memory
// table.Table. Column names are taken verbatim from the header; column types
// are inferred from the data.
//
// The whole input is loaded; there is no soft-fail mode. A row the reader
// cannot parse aborts the load with an error wrapping ErrMalformed.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"trackseed/internal/config"
	"trackseed/internal/table"
)

// ErrMalformed is wrapped by every error ReadTable returns for bad input.
var ErrMalformed = errors.New("malformed csv")

// Options configures the parser. The zero value reads comma-separated UTF-8.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// Encoding is an IANA charset name (e.g. "windows-1252"). Empty means UTF-8,
	// which is read strictly: an invalid byte sequence is an error. A leading
	// byte order mark is stripped regardless of Encoding.
	Encoding string
}

// OptionsFrom reads parser options from a pipeline config options bag.
func OptionsFrom(o config.Options) Options {
	return Options{
		Comma:     o.Rune("comma", ','),
		TrimSpace: o.Bool("trim_space", false),
		Encoding:  o.String("encoding", ""),
	}
}

// Parser reads CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// ReadTable consumes all of r and returns the parsed table.
//
// Rows shorter than the header are padded with missing values; rows longer
// than the header are an error. Blank lines are skipped.
func (p *Parser) ReadTable(r io.Reader) (*table.Table, error) {
	dec, err := decoderFor(p.opt.Encoding)
	if err != nil {
		return nil, err
	}

	// A nil decoder means UTF-8, read as raw bytes and checked per field.
	strict := dec == nil
	if strict {
		r = skipBOM(r)
	} else {
		r = transform.NewReader(r, unicode.BOMOverride(dec))
	}
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}
	if strict {
		if err := checkUTF8(cr, h); err != nil {
			return nil, err
		}
	}
	headers := normalizeHeaders(StripHeaderBOM(h))

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if strict {
			if err := checkUTF8(cr, row); err != nil {
				return nil, err
			}
		}
		if len(row) > len(headers) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				ErrMalformed, line, len(headers), len(row))
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		if p.opt.TrimSpace {
			for i := range row {
				row[i] = strings.TrimSpace(row[i])
			}
		}
		rows = append(rows, row)
	}

	return table.FromStrings(headers, rows), nil
}

// decoderFor returns the decoder for a non-UTF-8 charset, or nil for UTF-8.
// UTF-8 input is not decoded: a decoder would replace invalid sequences with
// U+FFFD, and checkUTF8 must see them.
func decoderFor(name string) (transform.Transformer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("csv: encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("csv: encoding %q is not supported", name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc.NewDecoder(), nil
}

// skipBOM drops a leading UTF-8 byte order mark from r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// checkUTF8 rejects a record holding an invalid UTF-8 sequence.
func checkUTF8(cr *csv.Reader, record []string) error {
	for i, f := range record {
		if !utf8.ValidString(f) {
			line, col := cr.FieldPos(i)
			return fmt.Errorf("%w: line %d, column %d: invalid UTF-8", ErrMalformed, line, col)
		}
	}
	return nil
}

// normalizeHeaders trims surrounding whitespace, names blank headers
// "Unnamed: N", and disambiguates repeats as "name.1", "name.2", ...
func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	used := make(map[string]bool, len(h))
	dups := make(map[string]int)
	for i, col := range h {
		c := strings.TrimSpace(col)
		if c == "" {
			c = "Unnamed: " + strconv.Itoa(i)
		}
		name := c
		for used[name] {
			dups[c]++
			name = c + "." + strconv.Itoa(dups[c])
		}
		used[name] = true
		res[i] = name
	}
	return res
}
