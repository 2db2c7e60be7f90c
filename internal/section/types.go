package section

import (
	"fmt"
	"strings"
)

// Properties holds the section properties used for lateral-torsional buckling.
// All values are in inches (in, in², in³, in⁴).
type Properties struct {
	// Primitive dimensions the properties were derived from
	D  float64 `json:"d" yaml:"d"`
	Bf float64 `json:"bf" yaml:"bf"`
	Tf float64 `json:"tf" yaml:"tf"`
	Tw float64 `json:"tw" yaml:"tw"`

	H   float64 `json:"h" yaml:"h"`     // Clear web depth, d - 2tf
	A   float64 `json:"A" yaml:"A"`     // Gross area
	Ix  float64 `json:"Ix" yaml:"Ix"`   // Strong-axis moment of inertia
	Sx  float64 `json:"Sx" yaml:"Sx"`   // Strong-axis elastic section modulus
	Iy  float64 `json:"Iy" yaml:"Iy"`   // Weak-axis moment of inertia
	J   float64 `json:"J" yaml:"J"`     // Torsional constant
	Ho  float64 `json:"ho" yaml:"ho"`   // Distance between flange centroids
	Rts float64 `json:"rts" yaml:"rts"` // Effective radius of gyration

	// Tabulated marks the symbols taken directly from the catalog
	Tabulated map[string]bool `json:"tabulated,omitempty" yaml:"tabulated,omitempty"`
}

// IsTabulated reports whether symbol came from the catalog rather than
// being computed from dimensions
func (p *Properties) IsTabulated(symbol string) bool {
	return p.Tabulated[symbol]
}

// MissingDimensionError is returned when a shape lacks the primitive
// dimensions needed to derive its properties
type MissingDimensionError struct {
	Shape   string
	Missing []string
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("shape %q is missing required dimensions: %s", e.Shape, strings.Join(e.Missing, ", "))
}

// DomainError reports dimensions that cannot form a valid W-section
type DomainError struct {
	msg string
}

func (e *DomainError) Error() string {
	return e.msg
}
