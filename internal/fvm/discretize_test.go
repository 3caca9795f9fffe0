package fvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
)

func TestDiscretizeSingleSoma(t *testing.T) {
	tree, err := morph.FromParentIndex(nil)
	require.NoError(t, err)
	segs := []morph.Segment{morph.NewSoma(12.6157/2, 0)}

	disc, err := Discretize([]CellInput{{Tree: tree, Segments: segs}}, phys.NewDefaults())
	require.NoError(t, err)

	require.Equal(t, 1, disc.NumCVs())
	require.Equal(t, -1, disc.ParentCV[0])
	require.InDelta(t, 4*math.Pi*(12.6157/2)*(12.6157/2), disc.CVArea[0], 1)
	require.InDelta(t, disc.CVArea[0]*0.01*1e-3, disc.CVCapacitance[0], 1e-9)
}

func TestDiscretizeBallAndStick(t *testing.T) {
	tree, err := morph.FromParentIndex([]int{-1, 0})
	require.NoError(t, err)
	segs := []morph.Segment{
		morph.NewSoma(12.6157/2, 0),
		morph.NewCable(200, []float64{0.5, 0.5}, 4, 1),
	}

	disc, err := Discretize([]CellInput{{Tree: tree, Segments: segs}}, phys.NewDefaults())
	require.NoError(t, err)

	require.Equal(t, 6, disc.NumCVs())
	require.Equal(t, []int{-1, 0, 1, 2, 3, 4}, disc.ParentCV)

	require.InDelta(t, 12.6157, disc.DiamUm[0], 1e-3)
	for cv := 1; cv < 6; cv++ {
		require.InDelta(t, 1.0, disc.DiamUm[cv], 1e-6)
	}

	interior := math.Pi * 1 * 50
	require.InDelta(t, interior/2, disc.CVArea[1], 1e-6)
	require.InDelta(t, interior, disc.CVArea[2], 1e-6)
	require.InDelta(t, interior, disc.CVArea[3], 1e-6)
	require.InDelta(t, interior, disc.CVArea[4], 1e-6)
	require.InDelta(t, interior/2, disc.CVArea[5], 1e-6)
}

func TestDiscretizeYJunctionBranchPointCapacitance(t *testing.T) {
	// A soma with three dendrites attached directly (a Y-junction at
	// the soma): each dendrite has its own diameter, length, and Cm
	// (Ra is 90 on all three). The shared branch-point CV's capacitance
	// must be the area-weighted sum of each dendrite's initial
	// half-compartment, each scaled by its own segment's Cm.
	tree, err := morph.FromParentIndex([]int{-1, 0, 0, 0})
	require.NoError(t, err)
	segs := []morph.Segment{
		morph.NewSoma(10, 0),
		morph.NewCable(200, []float64{0.5, 0.5}, 4, 1),
		morph.NewCable(300, []float64{0.4, 0.4}, 4, 2),
		morph.NewCable(180, []float64{0.35, 0.35}, 4, 3),
	}

	segOverrides := map[int]map[string]float64{
		1: {"cm": 0.017, "ra": 90},
		2: {"cm": 0.013, "ra": 90},
		3: {"cm": 0.018, "ra": 90},
	}

	disc, err := Discretize([]CellInput{{
		Tree: tree, Segments: segs, SegmentOverrides: segOverrides,
	}}, phys.NewDefaults())
	require.NoError(t, err)

	// CV0 = soma, CV1 = branch-point (soma's dedicated junction CV).
	require.Equal(t, 0, disc.ParentCV[1])

	half := func(radius, length float64, n int) float64 {
		// Uniform-radius cylinder half-compartment lateral area:
		// pi*(r+r)*halfLen = pi*2r*(compLen/2) = pi*r*compLen.
		return math.Pi * radius * (length / float64(n))
	}
	want := half(0.5, 200, 4)*0.017*1e-3 + half(0.4, 300, 4)*0.013*1e-3 + half(0.35, 180, 4)*0.018*1e-3
	require.InDelta(t, want, disc.CVCapacitance[1], 1e-9)
}
