package report

import (
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/alexiusacademia/gowbeam/internal/buckling"
	"github.com/alexiusacademia/gowbeam/internal/catalog"
	"github.com/alexiusacademia/gowbeam/internal/section"
)

// Field is one rounded, labelled value ready for display
type Field struct {
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Label     string  `json:"label" yaml:"label"`
	Value     float64 `json:"value" yaml:"value"`
	Text      string  `json:"text" yaml:"text"`
	Unit      string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Tabulated bool    `json:"tabulated,omitempty" yaml:"tabulated,omitempty"`
}

// Presentation is the display form of a buckling result
type Presentation struct {
	LrIn     float64 `json:"lr_in" yaml:"lr_in"`
	LrFt     float64 `json:"lr_ft" yaml:"lr_ft"`
	LrInText string  `json:"lr_in_text" yaml:"lr_in_text"`
	LrFtText string  `json:"lr_ft_text" yaml:"lr_ft_text"`

	Fy Field `json:"fy" yaml:"fy"`
	E  Field `json:"e" yaml:"e"`

	Properties []Field `json:"properties" yaml:"properties"`
	Terms      []Field `json:"terms" yaml:"terms"`
}

// Format rounds a buckling result for display. Lr is given in inches and
// feet to 2 decimals.
func Format(r *buckling.Result) Presentation {
	pr := Presentation{
		LrIn: scalar.Round(r.Lr, 2),
		LrFt: scalar.Round(r.LrFeet(), 2),
		Fy:   field("Fy", "Yield stress", r.Fy, 1, "ksi"),
		E:    field("E", "Modulus of elasticity", r.E, 0, "ksi"),
	}
	pr.LrInText = FormatNumber(r.Lr, 2) + " in"
	pr.LrFtText = FormatNumber(r.LrFeet(), 2) + " ft"

	if r.Properties != nil {
		pr.Properties = Properties(r.Properties)
	}

	pr.Terms = []Field{
		field("term1", "1.95 rts", r.Term1, 3, "in"),
		field("term2", "E / 0.7Fy", r.Term2, 2, ""),
		field("term3", "√(J / Sx·ho)", r.Term3, 5, ""),
		field("term4", "6.76 (0.7Fy·Sx·ho / E·J)²", r.Term4, 3, ""),
		field("term5", "√(1 + √(1 + term4))", r.Term5, 3, ""),
	}

	return pr
}

// Properties lists derived section properties for display
func Properties(p *section.Properties) []Field {
	fields := []Field{
		field(catalog.SymArea, "Area", p.A, 2, "in²"),
		field("h", "Clear web depth", p.H, 2, "in"),
		field(catalog.SymIx, "Moment of inertia, strong axis", p.Ix, 2, "in⁴"),
		field(catalog.SymSx, "Section modulus, strong axis", p.Sx, 2, "in³"),
		field(catalog.SymIy, "Moment of inertia, weak axis", p.Iy, 2, "in⁴"),
		field(catalog.SymJ, "Torsional constant", p.J, 3, "in⁴"),
		field(catalog.SymHo, "Distance between flange centroids", p.Ho, 2, "in"),
		field(catalog.SymRts, "Effective radius of gyration", p.Rts, 3, "in"),
	}
	for i := range fields {
		fields[i].Tabulated = p.IsTabulated(fields[i].Symbol)
	}
	return fields
}

func field(symbol, label string, v float64, prec int, unit string) Field {
	return Field{
		Symbol: symbol,
		Label:  label,
		Value:  scalar.Round(v, prec),
		Text:   FormatNumber(v, prec),
		Unit:   unit,
	}
}

// FormatNumber renders v with a fixed number of decimals
func FormatNumber(v float64, prec int) string {
	return strconv.FormatFloat(scalar.Round(v, prec), 'f', prec, 64)
}

// FormatValue renders an optional catalog value, "-" when absent
func FormatValue(v catalog.Value) string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// Row is one catalog column of a shape
type Row struct {
	Column string `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
}

// ShapeTable lists a shape's catalog columns in header order. Absent values
// are shown as "-".
func ShapeTable(columns []string, s *catalog.Shape) []Row {
	rows := make([]Row, 0, len(columns))
	for _, col := range columns {
		if col == catalog.NameColumn {
			continue
		}

		text := "-"
		if v, ok := s.Get(col); ok {
			text = FormatValue(v)
		} else if extra, ok := s.Extra[col]; ok {
			text = extra
		}
		rows = append(rows, Row{Column: col, Text: text})
	}
	return rows
}
