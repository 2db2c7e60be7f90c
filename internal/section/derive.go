package section

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gowbeam/internal/catalog"
)

// Derive computes the buckling properties of a W-shape from its catalog row.
// Tabulated Ix, Sx, Iy and A are preferred over values computed from the
// dimensions. J, ho and rts are always computed.
func Derive(shape *catalog.Shape) (*Properties, error) {
	if shape == nil {
		return nil, &DomainError{msg: "no shape selected"}
	}

	var missing []string
	for _, sym := range []string{catalog.SymDepth, catalog.SymFlangeWidth, catalog.SymFlangeThickness, catalog.SymWebThickness} {
		v, _ := shape.Get(sym)
		if !v.Valid || v.V <= 0 {
			missing = append(missing, sym)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingDimensionError{Shape: shape.Name, Missing: missing}
	}

	d, bf, tf, tw := shape.D.V, shape.Bf.V, shape.Tf.V, shape.Tw.V

	p := &Properties{
		D:         d,
		Bf:        bf,
		Tf:        tf,
		Tw:        tw,
		Tabulated: make(map[string]bool),
	}

	// Clear web depth between flanges
	p.H = d - 2*tf
	if p.H <= 0 {
		return nil, &DomainError{msg: fmt.Sprintf("shape %q: flange thickness 2tf = %g in leaves no web in depth d = %g in", shape.Name, 2*tf, d)}
	}
	h := p.H

	// Strong axis: full rectangle less the two voids beside the web
	p.Ix = tabulatedOr(p, catalog.SymIx, shape.Ix, func() float64 {
		return bf*math.Pow(d, 3)/12 - (bf-tw)*math.Pow(h, 3)/12
	})

	p.Sx = tabulatedOr(p, catalog.SymSx, shape.Sx, func() float64 {
		return p.Ix / (d / 2)
	})

	// Weak axis: two flanges plus the web
	p.Iy = tabulatedOr(p, catalog.SymIy, shape.Iy, func() float64 {
		return 2*tf*math.Pow(bf, 3)/12 + h*math.Pow(tw, 3)/12
	})

	p.A = tabulatedOr(p, catalog.SymArea, shape.A, func() float64 {
		area, _, _ := PolygonArea(Outline(d, bf, tf, tw))
		return area
	})

	// Open thin-walled section approximation
	p.J = (2*bf*math.Pow(tf, 3) + h*math.Pow(tw, 3)) / 3

	p.Ho = d - tf

	if p.Sx <= 0 {
		return nil, &DomainError{msg: fmt.Sprintf("shape %q: Sx must be positive to compute rts, got %g", shape.Name, p.Sx)}
	}
	if p.Iy*p.J < 0 {
		return nil, &DomainError{msg: fmt.Sprintf("shape %q: Iy·J must not be negative to compute rts", shape.Name)}
	}
	p.Rts = math.Sqrt(math.Sqrt(p.Iy*p.J) / p.Sx)

	if err := p.check(shape.Name); err != nil {
		return nil, err
	}
	return p, nil
}

func tabulatedOr(p *Properties, symbol string, v catalog.Value, compute func() float64) float64 {
	if v.Valid {
		p.Tabulated[symbol] = true
		return v.V
	}
	return compute()
}

// check rejects any non-positive or non-finite derived value
func (p *Properties) check(name string) error {
	values := []struct {
		symbol string
		v      float64
	}{
		{catalog.SymArea, p.A},
		{catalog.SymIx, p.Ix},
		{catalog.SymSx, p.Sx},
		{catalog.SymIy, p.Iy},
		{catalog.SymJ, p.J},
		{catalog.SymHo, p.Ho},
		{catalog.SymRts, p.Rts},
	}
	for _, pv := range values {
		if math.IsNaN(pv.v) || math.IsInf(pv.v, 0) || pv.v <= 0 {
			return &DomainError{msg: fmt.Sprintf("shape %q: derived %s = %g is not a positive number", name, pv.symbol, pv.v)}
		}
	}
	return nil
}
