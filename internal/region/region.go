// Package region implements the region algebra used by paintings and
// placements, and resolves region expressions against a discretized
// cell into per-CV area-weight lists.
package region

import (
	"github.com/oehrl/arbor/internal/fvm"
	"github.com/oehrl/arbor/internal/morph"
)

// Region is a sealed algebraic data type: the only implementations are
// the ones defined in this file. A region denotes a set of points on a
// cell's segment tree.
type Region interface {
	region()
}

// Tagged selects every point on a segment carrying the given tag.
type Tagged struct{ Tag int }

// Branch selects every point on one segment, identified by its index
// in the cell's segment tree.
type Branch struct{ Index int }

// Join is the union of two regions.
type Join struct{ A, B Region }

// Intersect is the intersection of two regions.
type Intersect struct{ A, B Region }

// Complement is the set of all points not in A.
type Complement struct{ A Region }

// Mlocation is a single point at relative position Pos along branch
// Branch, Pos in [0,1] with 0 at the proximal end. It is zero-measure:
// Resolve never assigns it any area, since a painted region built from
// it would otherwise paint nothing. Use ResolveLocation to map it to a
// CV for placements.
type Mlocation struct {
	Branch int
	Pos    float64
}

func (Tagged) region()     {}
func (Branch) region()     {}
func (Join) region()       {}
func (Intersect) region()  {}
func (Complement) region() {}
func (Mlocation) region()  {}

// Weighted is one CV's coverage by a resolved region: Area square
// micrometers of the CV's membrane lie within the region, which is
// Fraction of the CV's total area.
type Weighted struct {
	CV       int
	Area     float64
	Fraction float64
}

// member reports whether the whole of segment seg (tag tg, index idx)
// lies within r. Tagged and Branch are evaluated per-segment because
// every segment carries a single tag along its whole length, so a
// segment's contribution to any CV is uniformly in or out of a region
// built from these primitives.
func member(r Region, idx int, seg morph.Segment) bool {
	switch v := r.(type) {
	case Tagged:
		return seg.Tag == v.Tag
	case Branch:
		return v.Index == idx
	case Join:
		return member(v.A, idx, seg) || member(v.B, idx, seg)
	case Intersect:
		return member(v.A, idx, seg) && member(v.B, idx, seg)
	case Complement:
		return !member(v.A, idx, seg)
	case Mlocation:
		return false
	default:
		return false
	}
}

// Resolve translates a region expression into the list of CVs it
// covers, each with the membrane area (and CV-normalized fraction)
// contributed by segments in the region. Only CVs with positive
// contributed area are returned, ordered by increasing CV index.
func Resolve(d *fvm.Discretization, cellIdx int, segs []morph.Segment, r Region) []Weighted {
	lo, hi := d.CVRange(cellIdx)
	var out []Weighted
	for cv := lo; cv < hi; cv++ {
		var area float64
		for _, c := range d.CVContribs[cv] {
			if member(r, c.Segment, segs[c.Segment]) {
				area += c.Area
			}
		}
		if area <= 0 {
			continue
		}
		total := d.CVArea[cv]
		frac := 0.0
		if total > 0 {
			frac = area / total
		}
		out = append(out, Weighted{CV: cv, Area: area, Fraction: frac})
	}
	return out
}

// ResolveLocation maps a single point placement to the CV that owns
// it: position 0 on a cable lands on its shared proximal (branch-point
// or soma) CV, position 1 lands in its last compartment, and
// intermediate positions divide the segment's own CVs uniformly. A
// location on the soma (branch 0, no parent) always resolves to the
// soma's single CV regardless of Pos.
func ResolveLocation(d *fvm.Discretization, cellIdx int, loc Mlocation) int {
	segLo, _ := d.CellSegmentRange(cellIdx)
	seg := d.Segments[segLo+loc.Branch]

	if !seg.HasParent {
		return seg.CVLo
	}
	k := seg.CVHi - seg.CVLo
	if k <= 0 {
		return seg.ParentCV
	}
	if loc.Pos <= 0 {
		return seg.ParentCV
	}
	idx := int(loc.Pos * float64(k))
	if idx >= k {
		idx = k - 1
	}
	return seg.CVLo + idx
}
