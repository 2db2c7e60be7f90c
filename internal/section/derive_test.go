package section

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowbeam/internal/catalog"
)

func w12x26() *catalog.Shape {
	return &catalog.Shape{
		Name: "W12X26",
		D:    catalog.Some(12.2),
		Bf:   catalog.Some(6.49),
		Tf:   catalog.Some(0.38),
		Tw:   catalog.Some(0.23),
	}
}

func TestDeriveFromDimensions(t *testing.T) {
	p, err := Derive(w12x26())
	require.NoError(t, err)

	assert.InDelta(t, 11.44, p.H, 1e-12)
	assert.InEpsilon(t, 201.03493168, p.Ix, 1e-9)
	assert.InEpsilon(t, 32.95654618, p.Sx, 1e-9)
	assert.InEpsilon(t, 17.32436431, p.Iy, 1e-9)
	assert.InEpsilon(t, 0.28380968, p.J, 1e-9)
	assert.InDelta(t, 11.82, p.Ho, 1e-12)
	assert.InEpsilon(t, 0.25938824, p.Rts, 1e-7)
	assert.InEpsilon(t, 7.5636, p.A, 1e-9)
	assert.Empty(t, p.Tabulated)
}

func TestDerivePrefersTabulated(t *testing.T) {
	shape := w12x26()
	shape.Ix = catalog.Some(204)
	shape.Sx = catalog.Some(33.4)
	shape.Iy = catalog.Some(17.3)
	shape.A = catalog.Some(7.65)

	p, err := Derive(shape)
	require.NoError(t, err)

	assert.Equal(t, 204.0, p.Ix)
	assert.Equal(t, 33.4, p.Sx)
	assert.Equal(t, 17.3, p.Iy)
	assert.Equal(t, 7.65, p.A)
	for _, sym := range []string{"Ix", "Sx", "Iy", "A"} {
		assert.True(t, p.IsTabulated(sym), sym)
	}
	assert.False(t, p.IsTabulated("J"))
	assert.InEpsilon(t, 0.25756989, p.Rts, 1e-7)
}

func TestDeriveSxFromTabulatedIx(t *testing.T) {
	shape := w12x26()
	shape.Ix = catalog.Some(204)

	p, err := Derive(shape)
	require.NoError(t, err)
	assert.InDelta(t, 204/6.1, p.Sx, 1e-12)
	assert.False(t, p.IsTabulated("Sx"))
}

func TestDeriveAlwaysRecomputesJ(t *testing.T) {
	shape := w12x26()
	shape.J = catalog.Some(0.300)
	shape.Ho = catalog.Some(11.8)
	shape.Rts = catalog.Some(1.72)

	p, err := Derive(shape)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.28380968, p.J, 1e-9)
	assert.InDelta(t, 11.82, p.Ho, 1e-12)
	assert.InEpsilon(t, 0.25938824, p.Rts, 1e-7)
}

func TestDeriveMissingDimensions(t *testing.T) {
	testCases := []struct {
		id      string
		shape   catalog.Shape
		missing []string
	}{
		{
			id:      "all missing",
			shape:   catalog.Shape{Name: "W8X10"},
			missing: []string{"d", "bf", "tf", "tw"},
		},
		{
			id:      "web thickness missing",
			shape:   catalog.Shape{Name: "W8X10", D: catalog.Some(7.89), Bf: catalog.Some(3.94), Tf: catalog.Some(0.205)},
			missing: []string{"tw"},
		},
		{
			id:      "zero counts as missing",
			shape:   catalog.Shape{Name: "W8X10", D: catalog.Some(7.89), Bf: catalog.Value{Valid: true}, Tf: catalog.Some(0.205), Tw: catalog.Some(0.17)},
			missing: []string{"bf"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			p, err := Derive(&tc.shape)
			assert.Nil(t, p)

			var mde *MissingDimensionError
			require.True(t, errors.As(err, &mde), "expected MissingDimensionError, got %v", err)
			assert.Equal(t, tc.missing, mde.Missing)
			assert.Equal(t, "W8X10", mde.Shape)
		})
	}
}

func TestDeriveDomainErrors(t *testing.T) {
	thick := w12x26()
	thick.Tf = catalog.Some(6.1)

	negative := w12x26()
	negative.Sx = catalog.Value{V: -1, Valid: true}

	for name, shape := range map[string]*catalog.Shape{
		"flanges fill the depth": thick,
		"negative tabulated Sx":  negative,
		"nil shape":              nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Derive(shape)
			var de *DomainError
			assert.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
		})
	}
}

func TestDerivePositiveForCatalog(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	for _, shape := range c.Shapes() {
		shape := shape
		t.Run(shape.Name, func(t *testing.T) {
			p, err := Derive(&shape)
			require.NoError(t, err)
			for sym, v := range map[string]float64{"h": p.H, "A": p.A, "Ix": p.Ix, "Sx": p.Sx, "Iy": p.Iy, "J": p.J, "ho": p.Ho, "rts": p.Rts} {
				assert.Greater(t, v, 0.0, sym)
			}
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	first, err := Derive(w12x26())
	require.NoError(t, err)
	second, err := Derive(w12x26())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
