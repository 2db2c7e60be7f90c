package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
)

//go:embed data/wshapes.csv
var defaultCSV []byte

// Default loads the catalog shipped with the binary
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCSV))
}

// LoadFile loads a catalog from a CSV file on disk
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// LoadContext loads a catalog from source: an http(s) URL, a file path, or
// the embedded catalog when source is empty.
func LoadContext(ctx context.Context, source string) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case source == "":
		return Default()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return loadURL(ctx, source)
	default:
		return LoadFile(source)
	}
}

func loadURL(ctx context.Context, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching catalog: %s returned %s", url, resp.Status)
	}

	return Load(resp.Body)
}

// column describes how one header cell maps onto a Shape
type column struct {
	header string
	symbol string // recognized numeric symbol, empty for extras
	isName bool
}

// Load parses a comma-separated catalog. The first row names each column and
// one column must be "Shape" (or "Name"). Blank cells and "-" are absent
// values. Rows that are entirely blank are skipped.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, toParseError(err)
	}

	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	for _, col := range cols {
		switch {
		case col.isName:
			c.columns = append(c.columns, NameColumn)
		case col.symbol != "":
			c.columns = append(c.columns, col.symbol)
		default:
			c.columns = append(c.columns, col.header)
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if blankRecord(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		shape, err := parseRecord(cols, record, line)
		if err != nil {
			return nil, err
		}
		c.shapes = append(c.shapes, shape)
	}

	return c, nil
}

func parseHeader(header []string) ([]column, error) {
	cols := make([]column, len(header))
	seen := make(map[string]bool)
	nameIdx := -1

	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("header column %d is blank", i+1)}
		}

		col := column{header: h}
		switch {
		case strings.EqualFold(h, "Shape"), strings.EqualFold(h, "Name"):
			if nameIdx >= 0 {
				return nil, &ParseError{Line: 1, Column: h, Err: errors.New("more than one name column")}
			}
			nameIdx = i
			col.isName = true
		default:
			col.symbol = recognize(h)
		}

		key := col.symbol
		if key == "" {
			key = h
		}
		if seen[key] {
			return nil, &ParseError{Line: 1, Column: h, Err: errors.New("duplicate column")}
		}
		seen[key] = true
		cols[i] = col
	}

	if nameIdx < 0 {
		return nil, &ParseError{Line: 1, Err: errors.New(`header has no "Shape" column`)}
	}
	return cols, nil
}

func recognize(h string) string {
	for _, sym := range NumericSymbols {
		if h == sym {
			return sym
		}
	}
	for _, sym := range NumericSymbols {
		if strings.EqualFold(h, sym) {
			return sym
		}
	}
	return ""
}

func parseRecord(cols []column, record []string, line int) (Shape, error) {
	var shape Shape

	for i, col := range cols {
		cell := strings.TrimSpace(record[i])

		switch {
		case col.isName:
			if cell == "" {
				return Shape{}, &ParseError{Line: line, Column: col.header, Err: errors.New("shape name is blank")}
			}
			shape.Name = cell

		case col.symbol != "":
			v, err := parseNumber(cell)
			if err != nil {
				return Shape{}, &ParseError{Line: line, Column: col.header, Err: err}
			}
			*shape.field(col.symbol) = v

		case cell != "":
			if shape.Extra == nil {
				shape.Extra = make(map[string]string)
			}
			shape.Extra[col.header] = cell
		}
	}

	return shape, nil
}

func parseNumber(cell string) (Value, error) {
	if cell == "" || cell == "-" {
		return Value{}, nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%q is not a number", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Value{}, fmt.Errorf("%q must be a positive number", cell)
	}
	return Some(v), nil
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func toParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}
