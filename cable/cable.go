// Package cable is the public entry point: a Cell builder for
// accumulating paintings and placements, and Compile, which
// orchestrates discretization, region resolution, mechanism layout,
// and reversal-potential linking into one immutable artifact pair.
package cable

import (
	"github.com/oehrl/arbor/internal/cellerr"
	"github.com/oehrl/arbor/internal/fvm"
	"github.com/oehrl/arbor/internal/mechanism"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/recipe"
	"github.com/oehrl/arbor/internal/region"
	"github.com/oehrl/arbor/internal/revpot"
)

// GlobalProperties re-exports recipe.GlobalProperties under the
// public package, matching the name callers of Compile construct.
type GlobalProperties = recipe.GlobalProperties

// MLocation re-exports region.Mlocation under the public package.
type MLocation = region.Mlocation

// Cell accumulates a cell's morphology, paintings, and placements
// while Open; Describe freezes it into a recipe.CellDescription.
// Mutating a Cell after Describe has been called returns
// cellerr.InvalidTopology.
type Cell struct {
	tree             morph.Tree
	segs             []morph.Segment
	cellOverrides    map[string]float64
	segmentOverrides map[int]map[string]float64
	paintings        []recipe.Painting
	placements       []recipe.Placement
	revpotMethods    map[string]string
	frozen           bool
}

// NewCell starts a new Open cell builder over the given segment tree
// and per-node segment geometry.
func NewCell(tree morph.Tree, segs []morph.Segment) *Cell {
	return &Cell{
		tree:             tree,
		segs:             segs,
		cellOverrides:    make(map[string]float64),
		segmentOverrides: make(map[int]map[string]float64),
		revpotMethods:    make(map[string]string),
	}
}

// Paint records a painting of prop over where. Returns
// cellerr.InvalidTopology if the cell has already been frozen by a
// call to Describe.
func (c *Cell) Paint(where region.Region, prop recipe.Property) error {
	if c.frozen {
		return cellerr.New(cellerr.InvalidTopology, "cannot paint a frozen cell")
	}
	if sp, ok := prop.(recipe.ScalarProperty); ok {
		// A scalar property painted over a Branch region narrows that
		// segment's override; any broader region narrows the cell-wide
		// default instead, per the three-level fallback fvm.Discretize
		// implements (global -> cell -> region).
		if b, ok := where.(region.Branch); ok {
			m, ok := c.segmentOverrides[b.Index]
			if !ok {
				m = make(map[string]float64)
				c.segmentOverrides[b.Index] = m
			}
			m[sp.Name] = sp.Value
			return nil
		}
		c.cellOverrides[sp.Name] = sp.Value
		return nil
	}
	c.paintings = append(c.paintings, recipe.Painting{Where: where, Prop: prop})
	return nil
}

// Place records a placement of item at loc, returning its index in
// this cell's placement sequence (stable target indices are assigned
// later, across all cells, by Compile).
func (c *Cell) Place(loc region.Mlocation, item recipe.PointItem) (int, error) {
	if c.frozen {
		return 0, cellerr.New(cellerr.InvalidTopology, "cannot place on a frozen cell")
	}
	idx := len(c.placements)
	c.placements = append(c.placements, recipe.Placement{Loc: loc, Item: item})
	return idx, nil
}

// SetRevpotMethod assigns the reversal-potential method this cell
// uses for ion.
func (c *Cell) SetRevpotMethod(ion, method string) error {
	if c.frozen {
		return cellerr.New(cellerr.InvalidTopology, "cannot set revpot method on a frozen cell")
	}
	c.revpotMethods[ion] = method
	return nil
}

// Describe freezes the cell and returns its recipe.CellDescription.
func (c *Cell) Describe() recipe.CellDescription {
	c.frozen = true
	return recipe.CellDescription{
		Tree:             c.tree,
		Segments:         c.segs,
		CellOverrides:    c.cellOverrides,
		SegmentOverrides: c.segmentOverrides,
		Paintings:        c.paintings,
		Placements:       c.placements,
		RevpotMethods:    c.revpotMethods,
	}
}

// Compile discretizes every cell in r, resolves paintings/placements
// against the resulting CVs, builds the mechanism and ion configs, and
// links reversal potentials, in that order. On any error the call
// returns no partial artifact: both return values are nil alongside
// the first error encountered, in cell-index order.
func Compile(r recipe.Recipe) (*fvm.Discretization, *mechanism.MechanismData, error) {
	n := r.NumCells()
	global := r.GlobalProperties()

	descs := make([]recipe.CellDescription, n)
	cellInputs := make([]fvm.CellInput, n)
	for i := 0; i < n; i++ {
		d := r.CellDescription(i)
		descs[i] = d
		cellInputs[i] = fvm.CellInput{
			Tree:             d.Tree,
			Segments:         d.Segments,
			CellOverrides:    d.CellOverrides,
			SegmentOverrides: d.SegmentOverrides,
		}
	}

	disc, err := fvm.Discretize(cellInputs, global.Defaults)
	if err != nil {
		return nil, nil, err
	}

	b := mechanism.NewBuilder()
	var revpotPaints []revpot.Paint

	for i, d := range descs {
		for _, p := range d.Paintings {
			switch prop := p.Prop.(type) {
			case recipe.DensityMech:
				w := region.Resolve(disc, i, d.Segments, p.Where)
				b.AddDensity(i, prop.Name, prop.Params, w)
			case recipe.RevpotMethod:
				w := region.Resolve(disc, i, d.Segments, p.Where)
				cvs := make([]int, len(w))
				for k, wt := range w {
					cvs[k] = wt.CV
				}
				revpotPaints = append(revpotPaints, revpot.Paint{
					CellIdx: i, Method: prop.Method, Ions: []string{prop.Ion}, CVs: cvs,
				})
			case recipe.ScalarProperty:
				// Handled via Cell.Paint narrowing CellOverrides/
				// SegmentOverrides before Describe; a Recipe that
				// supplies one directly here is out of contract.
			}
		}

		for _, pl := range d.Placements {
			cv := region.ResolveLocation(disc, i, pl.Loc)
			switch item := pl.Item.(type) {
			case recipe.PointMech:
				b.AddPoint(item.Name, cv, item.Params)
			case recipe.Stimulus:
				b.AddPoint(item.Name, cv, item.Params)
			case recipe.Detector:
				b.AddPoint(item.Name, cv, map[string]float64{"threshold": item.Threshold})
			case recipe.GapJunctionSite:
				b.AddGapJunction(item.Name, cv, item.Params)
			}
		}

		for ion, method := range d.RevpotMethods {
			if _, painted := ionAlreadyPaintedAsRevpot(revpotPaints, i, ion); painted {
				continue
			}
			lo, hi := disc.CVRange(i)
			cvs := make([]int, 0, hi-lo)
			for cv := lo; cv < hi; cv++ {
				cvs = append(cvs, cv)
			}
			revpotPaints = append(revpotPaints, revpot.Paint{CellIdx: i, Method: method, Ions: []string{ion}, CVs: cvs})
		}
	}

	densityCfgs, err := b.BuildDensity(global.Catalogue)
	if err != nil {
		return nil, nil, err
	}
	pointCfgs, err := b.BuildPoint(global.Catalogue, global.Coalesce)
	if err != nil {
		return nil, nil, err
	}
	gapCfgs, err := b.BuildGapJunction(global.Catalogue)
	if err != nil {
		return nil, nil, err
	}

	merged := make(map[string]mechanism.MechanismConfig, len(densityCfgs)+len(pointCfgs)+len(gapCfgs))
	for name, cfg := range densityCfgs {
		merged[name] = cfg
	}
	for name, cfg := range pointCfgs {
		merged[name] = cfg
	}
	for name, cfg := range gapCfgs {
		merged[name] = cfg
	}

	if err := mechanism.ValidateIonCharges(merged, global.Catalogue, global.Ions); err != nil {
		return nil, nil, err
	}

	usage := mechanism.CollectIonUsage(merged, global.Catalogue)
	revpotCfgs, err := revpot.Link(revpotPaints, usage, global.Catalogue)
	if err != nil {
		return nil, nil, err
	}
	for name, cfg := range revpotCfgs {
		merged[name] = cfg
	}

	ionCfgs := mechanism.BuildIonConfigs(usage, global.Ions)

	return disc, &mechanism.MechanismData{Mechanisms: merged, Ions: ionCfgs}, nil
}

// ionAlreadyPaintedAsRevpot reports whether an explicit RevpotMethod
// painting already covered (cell, ion), so the cell-wide
// RevpotMethods fallback does not double-register it.
func ionAlreadyPaintedAsRevpot(paints []revpot.Paint, cellIdx int, ion string) (int, bool) {
	for i, p := range paints {
		if p.CellIdx != cellIdx {
			continue
		}
		for _, pi := range p.Ions {
			if pi == ion {
				return i, true
			}
		}
	}
	return -1, false
}
