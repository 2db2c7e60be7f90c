package catalog

import (
	"errors"
	"fmt"
)

// NameColumn is the canonical header of the shape name column
const NameColumn = "Shape"

// Property symbols recognized in a catalog header
const (
	SymDepth           = "d"
	SymFlangeWidth     = "bf"
	SymFlangeThickness = "tf"
	SymWebThickness    = "tw"
	SymArea            = "A"
	SymIx              = "Ix"
	SymSx              = "Sx"
	SymIy              = "Iy"
	SymJ               = "J"
	SymHo              = "ho"
	SymRts             = "rts"
)

// NumericSymbols lists the recognized numeric columns in display order
var NumericSymbols = []string{
	SymDepth, SymFlangeWidth, SymFlangeThickness, SymWebThickness,
	SymArea, SymIx, SymSx, SymIy, SymJ, SymHo, SymRts,
}

// Value is an optional catalog number. Absent cells have Valid == false.
type Value struct {
	V     float64
	Valid bool
}

// Some returns a present value
func Some(v float64) Value {
	return Value{V: v, Valid: true}
}

// Shape is one row of the section catalog
type Shape struct {
	Name string

	// Primitive dimensions (in)
	D  Value // overall depth
	Bf Value // flange width
	Tf Value // flange thickness
	Tw Value // web thickness

	// Tabulated properties
	A   Value // in²
	Ix  Value // in⁴
	Sx  Value // in³
	Iy  Value // in⁴
	J   Value // in⁴, never used by calculations
	Ho  Value // in
	Rts Value // in

	// Extra holds unrecognized columns, keyed by header text
	Extra map[string]string
}

// Get returns the value stored for a recognized numeric symbol
func (s *Shape) Get(symbol string) (Value, bool) {
	p := s.field(symbol)
	if p == nil {
		return Value{}, false
	}
	return *p, true
}

func (s *Shape) field(symbol string) *Value {
	switch symbol {
	case SymDepth:
		return &s.D
	case SymFlangeWidth:
		return &s.Bf
	case SymFlangeThickness:
		return &s.Tf
	case SymWebThickness:
		return &s.Tw
	case SymArea:
		return &s.A
	case SymIx:
		return &s.Ix
	case SymSx:
		return &s.Sx
	case SymIy:
		return &s.Iy
	case SymJ:
		return &s.J
	case SymHo:
		return &s.Ho
	case SymRts:
		return &s.Rts
	}
	return nil
}

// Catalog is an ordered, read-only collection of shapes
type Catalog struct {
	shapes []Shape

	// columns is the source header, name column included
	columns []string
}

// New builds a catalog from shapes already in memory
func New(shapes []Shape) *Catalog {
	c := &Catalog{shapes: make([]Shape, len(shapes))}
	copy(c.shapes, shapes)
	c.columns = append([]string{NameColumn}, NumericSymbols...)
	return c
}

// Len returns the number of rows, duplicates included
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Shapes returns a copy of the rows in source order
func (c *Catalog) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Columns returns the header in source order. Recognized columns use their
// canonical symbol.
func (c *Catalog) Columns() []string {
	return append([]string(nil), c.columns...)
}

// ErrNotLoaded is returned by Store before a catalog has been loaded
var ErrNotLoaded = errors.New("catalog not loaded")

// ParseError reports a malformed catalog source
type ParseError struct {
	Line   int    // 1-based source line, 0 if unknown
	Column string // header name, empty if not column specific
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("catalog line %d, column %q: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("catalog line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("catalog: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a shape name has no exact match
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("shape %q not found", e.Name)
}

// IsNotFound reports whether err is a lookup miss
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
