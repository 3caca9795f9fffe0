package main

import (
	"github.com/oehrl/arbor/cable"
	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
	"github.com/oehrl/arbor/internal/recipe"
	"github.com/oehrl/arbor/internal/region"
)

// demoCatalogue registers the small set of mechanisms the demo recipe
// paints: a passive leak density mechanism and an exponential-decay
// point synapse. Only the synapse is registered as "linear" (no
// externally-read instance state), which makes it eligible for
// coalescing.
func demoCatalogue() *catalogue.Static {
	cat := catalogue.NewStatic()
	cat.Add("pas", catalogue.Density, map[string]catalogue.ParamMeta{
		"g": {Default: 0.001, HasRange: true, Min: 0, Max: 1},
		"e": {Default: -70},
	}, nil, nil, false)
	cat.Add("expsyn", catalogue.Point, map[string]catalogue.ParamMeta{
		"tau": {Default: 2.0},
		"e":   {Default: 0},
	}, nil, nil, true)
	return cat
}

// demoRecipe builds a two-segment ball-and-stick cell: a spherical
// soma with one tapered cable attached, a passive mechanism painted
// over the whole cell, and one synapse placed at the cable's distal
// end.
func demoRecipe() recipe.Recipe {
	tree, err := morph.FromParentIndex([]int{-1, 0})
	if err != nil {
		panic(err)
	}
	segs := []morph.Segment{
		morph.NewSoma(10, 0),
		morph.NewCable(200, []float64{2, 1}, 4, 1),
	}

	cell := cable.NewCell(tree, segs)
	_ = cell.Paint(region.Join{A: region.Tagged{Tag: 0}, B: region.Tagged{Tag: 1}},
		recipe.DensityMech{Name: "pas", Params: map[string]float64{"g": 0.001, "e": -70}})
	_, _ = cell.Place(region.Mlocation{Branch: 1, Pos: 1}, recipe.PointMech{Name: "expsyn", Params: map[string]float64{"tau": 2.0, "e": 0}})

	return &recipe.Static{
		Cells: []recipe.CellDescription{cell.Describe()},
		Global: recipe.GlobalProperties{
			Catalogue: demoCatalogue(),
			Defaults:  phys.NewDefaults(),
			Ions:      phys.StandardIonDefaults(),
			Coalesce:  true,
		},
	}
}
