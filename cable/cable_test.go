package cable

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
	"github.com/oehrl/arbor/internal/recipe"
	"github.com/oehrl/arbor/internal/region"
)

func ballAndStickRecipe(t *testing.T) recipe.Recipe {
	t.Helper()
	cat := catalogue.NewStatic()
	cat.Add("pas", catalogue.Density, map[string]catalogue.ParamMeta{
		"g": {Default: 0.0001},
		"e": {Default: -70},
	}, nil, nil, false)
	cat.Add("expsyn", catalogue.Point, map[string]catalogue.ParamMeta{
		"e":   {Default: 0},
		"tau": {Default: 2.0},
	}, nil, nil, true)
	cat.Add("hh", catalogue.Density, map[string]catalogue.ParamMeta{
		"gnabar": {Default: 0.12},
	}, []string{"na"}, []string{"na"}, false)
	cat.Add("spike", catalogue.Point, map[string]catalogue.ParamMeta{
		"threshold": {Default: -10},
	}, nil, nil, false)

	tree, err := morph.FromParentIndex([]int{-1, 0})
	require.NoError(t, err)
	segs := []morph.Segment{
		morph.NewSoma(12.6157/2, 0),
		morph.NewCable(200, []float64{0.5, 0.5}, 4, 1),
	}

	c := NewCell(tree, segs)
	require.NoError(t, c.Paint(region.Join{A: region.Tagged{Tag: 0}, B: region.Tagged{Tag: 1}}, recipe.DensityMech{Name: "pas"}))
	require.NoError(t, c.Paint(region.Tagged{Tag: 0}, recipe.DensityMech{Name: "hh"}))
	_, err = c.Place(region.Mlocation{Branch: 1, Pos: 1}, recipe.PointMech{Name: "expsyn", Params: map[string]float64{"e": 0, "tau": 0.2}})
	require.NoError(t, err)
	_, err = c.Place(region.Mlocation{Branch: 1, Pos: 0.5}, recipe.Detector{Name: "spike", Threshold: -10})
	require.NoError(t, err)

	return &recipe.Static{
		Cells: []recipe.CellDescription{c.Describe()},
		Global: recipe.GlobalProperties{
			Catalogue: cat,
			Defaults:  phys.NewDefaults(),
			Ions:      phys.StandardIonDefaults(),
			Coalesce:  true,
		},
	}
}

func TestCompileBallAndStickProducesConsistentArtifact(t *testing.T) {
	disc, data, err := Compile(ballAndStickRecipe(t))
	require.NoError(t, err)

	require.Equal(t, 6, disc.NumCVs())

	// Target-index law: every point/gap-junction placement's target
	// indices, concatenated across mechanisms, are a permutation of
	// [0, N).
	var targets []int
	for _, cfg := range data.Mechanisms {
		if cfg.Kind == catalogue.Point || cfg.Kind == catalogue.GapJunction {
			targets = append(targets, cfg.Target...)
		}
	}
	sort.Ints(targets)
	require.Equal(t, []int{0, 1}, targets)

	pas, ok := data.Mechanisms["pas"]
	require.True(t, ok)
	require.Equal(t, catalogue.Density, pas.Kind)
	require.Equal(t, disc.NumCVs(), len(pas.CV))

	hh, ok := data.Mechanisms["hh"]
	require.True(t, ok)
	require.Equal(t, []int{0}, hh.CV)

	na, ok := data.Ions["na"]
	require.True(t, ok)
	require.Equal(t, []int{0}, na.CV)
	require.Equal(t, 1, na.Charge)
}

func TestPaintAndPlaceRejectFrozenCell(t *testing.T) {
	tree, err := morph.FromParentIndex(nil)
	require.NoError(t, err)
	c := NewCell(tree, []morph.Segment{morph.NewSoma(5, 0)})
	c.Describe()

	err = c.Paint(region.Tagged{Tag: 0}, recipe.DensityMech{Name: "pas"})
	require.Error(t, err)

	_, err = c.Place(region.Mlocation{Branch: 0, Pos: 0}, recipe.Detector{Name: "spike", Threshold: -10})
	require.Error(t, err)
}
