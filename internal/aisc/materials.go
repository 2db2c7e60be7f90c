package aisc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AISC 360 Material Constants

const (
	// Modulus of elasticity for structural steel (ksi)
	E = 29000.0

	// DefaultGrade is the grade used when none is selected
	DefaultGrade = "A992"
)

// Grade is a structural steel specification with its minimum yield stress
type Grade struct {
	Name string  `json:"name" yaml:"name"`
	Fy   float64 `json:"fy" yaml:"fy"` // ksi
}

// Grades lists the supported steel grades for W-shapes
var Grades = []Grade{
	{Name: "A36", Fy: 36},
	{Name: "A572 Grade 50", Fy: 50},
	{Name: "A992", Fy: 50},
	{Name: "A913 Grade 65", Fy: 65},
}

// LookupGrade finds a grade by name. Matching ignores case, spaces, dashes and
// the words "grade"/"gr", so "a572-50" and "A572 Gr 50" both resolve.
func LookupGrade(name string) (Grade, error) {
	key := gradeKey(name)
	if key == "" {
		return Grade{}, &UnknownGradeError{Name: name}
	}
	for _, g := range Grades {
		if gradeKey(g.Name) == key {
			return g, nil
		}
	}
	return Grade{}, &UnknownGradeError{Name: name}
}

func gradeKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "grade", "")
	s = strings.ReplaceAll(s, "gr", "")
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Yield describes how the effective yield stress is chosen: the selected grade,
// unless a custom value is active.
type Yield struct {
	Grade Grade

	// Custom reports whether the user supplied an override. When set the
	// override always wins, even if CustomFy cannot be parsed.
	Custom   bool
	CustomFy string
}

// Effective returns the yield stress to use in design (ksi)
func (y Yield) Effective() (float64, error) {
	if y.Custom {
		raw := strings.TrimSpace(y.CustomFy)
		if raw == "" {
			return 0, &InvalidYieldStrengthError{msg: "custom Fy is empty"}
		}
		fy, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &InvalidYieldStrengthError{msg: fmt.Sprintf("custom Fy %q is not a number", y.CustomFy)}
		}
		if err := CheckFy(fy); err != nil {
			return 0, err
		}
		return fy, nil
	}

	if err := CheckFy(y.Grade.Fy); err != nil {
		return 0, err
	}
	return y.Grade.Fy, nil
}

// CheckFy validates a yield stress value
func CheckFy(fy float64) error {
	if math.IsNaN(fy) || math.IsInf(fy, 0) {
		return &InvalidYieldStrengthError{msg: "Fy must be a finite number"}
	}
	if fy <= 0 {
		return &InvalidYieldStrengthError{msg: fmt.Sprintf("Fy must be positive, got %g ksi", fy)}
	}
	return nil
}

// InvalidYieldStrengthError reports an unusable yield stress
type InvalidYieldStrengthError struct {
	msg string
}

func (e *InvalidYieldStrengthError) Error() string {
	return "invalid yield strength: " + e.msg
}

// UnknownGradeError is returned when a grade name is not in Grades
type UnknownGradeError struct {
	Name string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("unknown steel grade %q", e.Name)
}
