package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oehrl/arbor/internal/fvm"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
)

func ballAndStick(t *testing.T) (*fvm.Discretization, []morph.Segment) {
	t.Helper()
	tree, err := morph.FromParentIndex([]int{-1, 0})
	require.NoError(t, err)
	segs := []morph.Segment{
		morph.NewSoma(12.6157/2, 0),
		morph.NewCable(200, []float64{0.5, 0.5}, 4, 1),
	}
	disc, err := fvm.Discretize([]fvm.CellInput{{Tree: tree, Segments: segs}}, phys.NewDefaults())
	require.NoError(t, err)
	return disc, segs
}

func TestResolveTaggedSelectsOnlyMatchingSegments(t *testing.T) {
	disc, segs := ballAndStick(t)

	soma := Resolve(disc, 0, segs, Tagged{Tag: 0})
	require.Len(t, soma, 1)
	require.Equal(t, 0, soma[0].CV)

	dend := Resolve(disc, 0, segs, Tagged{Tag: 1})
	// The cable contributes to CVs 1-5 (its own 4 CVs plus the
	// half-compartment it donates to the soma's junction CV, CV 1).
	var cvs []int
	for _, w := range dend {
		cvs = append(cvs, w.CV)
	}
	require.Contains(t, cvs, 1)
	require.Contains(t, cvs, 5)
}

func TestResolveJoinUnionsBothSides(t *testing.T) {
	disc, segs := ballAndStick(t)
	all := Resolve(disc, 0, segs, Join{A: Tagged{Tag: 0}, B: Tagged{Tag: 1}})
	require.Len(t, all, disc.NumCVs())
}

func TestResolveComplementExcludesTaggedRegion(t *testing.T) {
	disc, segs := ballAndStick(t)
	notSoma := Resolve(disc, 0, segs, Complement{A: Tagged{Tag: 0}})
	for _, w := range notSoma {
		require.NotEqual(t, 0, w.CV)
	}
}

func TestResolveLocationEndpointsAndMidpoint(t *testing.T) {
	disc, _ := ballAndStick(t)

	// Soma (branch 0, no parent): always its own CV regardless of Pos.
	require.Equal(t, 0, ResolveLocation(disc, 0, Mlocation{Branch: 0, Pos: 0.5}))

	// Proximal end of the cable (branch 1) lands on the shared attach CV,
	// the soma's dedicated junction CV (CV 1, not the soma CV itself).
	require.Equal(t, 1, ResolveLocation(disc, 0, Mlocation{Branch: 1, Pos: 0}))

	// Distal end lands in the cable's last compartment.
	require.Equal(t, 5, ResolveLocation(disc, 0, Mlocation{Branch: 1, Pos: 1}))
}
