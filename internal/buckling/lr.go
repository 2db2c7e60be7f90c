package buckling

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gowbeam/internal/aisc"
	"github.com/alexiusacademia/gowbeam/internal/section"
)

// Result holds the limiting unbraced length for lateral-torsional buckling
// and the terms of the AISC 360 Eq. F2-6 product it was built from.
type Result struct {
	Lr float64 `json:"lr" yaml:"lr"` // in

	Term1 float64 `json:"term1" yaml:"term1"` // 1.95 rts
	Term2 float64 `json:"term2" yaml:"term2"` // E / 0.7Fy
	Term3 float64 `json:"term3" yaml:"term3"` // √(J / Sx·ho)
	Term4 float64 `json:"term4" yaml:"term4"` // 6.76 (0.7Fy·Sx·ho / E·J)²
	Term5 float64 `json:"term5" yaml:"term5"` // √(1 + √(1 + term4))

	// Inputs
	Fy         float64             `json:"fy" yaml:"fy"` // ksi
	E          float64             `json:"e" yaml:"e"`   // ksi
	Properties *section.Properties `json:"properties" yaml:"properties"`
}

// LrFeet returns Lr converted to feet
func (r *Result) LrFeet() float64 {
	return r.Lr / 12
}

// ComputeLr evaluates
//
//	Lr = 1.95 rts (E / 0.7Fy) √(J / Sx·ho) √(1 + √(1 + 6.76 (0.7Fy·Sx·ho / E·J)²))
//
// It is a pure function: identical inputs give bit-identical results.
func ComputeLr(props *section.Properties, fy, e float64) (*Result, error) {
	if err := aisc.CheckFy(fy); err != nil {
		return nil, err
	}
	if math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
		return nil, &InvalidModulusError{E: e}
	}
	if props == nil {
		return nil, &DegenerateSectionError{msg: "no section properties"}
	}

	sxho := props.Sx * props.Ho
	if props.J <= 0 {
		return nil, &DegenerateSectionError{msg: fmt.Sprintf("torsional constant J must be positive, got %g", props.J)}
	}
	if sxho <= 0 {
		return nil, &DegenerateSectionError{msg: fmt.Sprintf("Sx·ho must be positive, got %g", sxho)}
	}
	if props.Rts <= 0 {
		return nil, &DegenerateSectionError{msg: fmt.Sprintf("rts must be positive, got %g", props.Rts)}
	}

	r := &Result{
		Fy:         fy,
		E:          e,
		Properties: props,
	}

	r.Term1 = 1.95 * props.Rts
	r.Term2 = e / (0.7 * fy)
	r.Term3 = math.Sqrt(props.J / sxho)
	r.Term4 = 6.76 * math.Pow((0.7*fy*sxho)/(e*props.J), 2)
	r.Term5 = math.Sqrt(1 + math.Sqrt(1+r.Term4))

	r.Lr = r.Term1 * r.Term2 * r.Term3 * r.Term5

	if math.IsNaN(r.Lr) || math.IsInf(r.Lr, 0) {
		return nil, &DegenerateSectionError{msg: "Lr is not a finite number"}
	}
	return r, nil
}

// DegenerateSectionError reports section properties that make Lr undefined
type DegenerateSectionError struct {
	msg string
}

func (e *DegenerateSectionError) Error() string {
	return "degenerate section: " + e.msg
}

// InvalidModulusError reports an unusable modulus of elasticity
type InvalidModulusError struct {
	E float64
}

func (e *InvalidModulusError) Error() string {
	return fmt.Sprintf("invalid modulus of elasticity: E must be positive, got %g ksi", e.E)
}
