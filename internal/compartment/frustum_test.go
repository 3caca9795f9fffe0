package compartment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrustumAreaCylinder(t *testing.T) {
	// A frustum with equal end radii is a cylinder: A = 2*pi*r*h.
	area := FrustumArea(0.5, 0.5, 10)
	require.InDelta(t, 2*math.Pi*0.5*10, area, 1e-9)
}

func TestFrustumVolumeCylinder(t *testing.T) {
	vol := FrustumVolume(0.5, 0.5, 10)
	require.InDelta(t, math.Pi*0.5*0.5*10, vol, 1e-9)
}

func TestRadiusAtInterpolates(t *testing.T) {
	radii := []float64{2, 1, 0}
	require.InDelta(t, 2.0, RadiusAt(radii, 100, 0), 1e-9)
	require.InDelta(t, 1.0, RadiusAt(radii, 100, 50), 1e-9)
	require.InDelta(t, 0.0, RadiusAt(radii, 100, 100), 1e-9)
	require.InDelta(t, 1.5, RadiusAt(radii, 100, 25), 1e-9)
}

func TestHalvesCoverFullCompartment(t *testing.T) {
	// Uniform-radius cable: 4 compartments of a 200 um, 1 um diameter
	// cable should each have total area pi*1*50 (a cylinder segment).
	radii := []float64{0.5, 0.5}
	halves := Halves(200, radii, 4)
	require.Len(t, halves, 4)
	for _, h := range halves {
		total := h.AreaLeft + h.AreaRight
		require.InDelta(t, math.Pi*1*50, total, 1e-6)
	}
}
