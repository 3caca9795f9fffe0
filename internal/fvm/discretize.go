// Package fvm implements the finite-volume discretizer: it walks each
// cell's segment tree, partitions cables into compartments, and
// produces the flat control-volume array plus the CV-parent graph that
// the rest of the compiler (region resolution, mechanism layout)
// builds on top of.
package fvm

import (
	"math"

	"github.com/oehrl/arbor/internal/cellerr"
	"github.com/oehrl/arbor/internal/compartment"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
)

// faceConductanceUnitFactor converts um^2 / (um * Ohm*cm) to uS:
// R[Ohm] = rho[Ohm*cm] * h[um] * 1e4 / a[um^2], G[uS] = 1/R * 1e6
//        = a/(rho*h) * 100
const faceConductanceUnitFactor = 100.0

// capacitanceUnitFactor converts Cm, stored as F/m^2 (numerically
// equal to pF/um^2), to nF: 1 F/m^2 = 1e-3 nF/um^2.
const capacitanceUnitFactor = 1e-3

// CellInput is the per-cell input to Discretize: a segment tree, the
// segment geometry indexed by tree node, and the scalar-property
// overrides (Cm, Ra) a cell's paintings narrowed — cell-wide, and
// per-segment (region-scoped). Only "cm" and "ra" are read here; Vm and
// temperature overrides may be present in the maps but no compile stage
// reads them.
type CellInput struct {
	Tree             morph.Tree
	Segments         []morph.Segment
	CellOverrides    map[string]float64
	SegmentOverrides map[int]map[string]float64
}

// Contribution records that `Area` square micrometers of a CV's
// membrane area came from `Segment`. A plain interior CV has exactly
// one contribution; a branch-point CV has one per cable meeting there.
type Contribution struct {
	Segment int
	Area    float64
}

// SegmentCVs is the half-open CV range owned by one segment, plus the
// (possibly shared) branch-point CV containing its proximal endpoint.
type SegmentCVs struct {
	ParentCV  int
	HasParent bool
	CVLo, CVHi int
}

// Discretization is the flat, cross-cell discretization artifact.
// Once returned from Discretize it is never mutated.
type Discretization struct {
	ParentCV        []int
	CVToCell        []int
	CellCVPart      []int
	CVArea          []float64
	CVCapacitance   []float64
	FaceConductance []float64
	DiamUm          []float64
	CellSegmentPart []int
	Segments        []SegmentCVs
	CVContribs      [][]Contribution
}

// NumCVs returns the total number of control volumes across all cells.
func (d *Discretization) NumCVs() int { return len(d.CVArea) }

// NumCells returns the number of cells laid out in this artifact.
func (d *Discretization) NumCells() int { return len(d.CellCVPart) - 1 }

// CVRange returns the half-open global CV range owned by cell i.
func (d *Discretization) CVRange(cell int) (lo, hi int) {
	return d.CellCVPart[cell], d.CellCVPart[cell+1]
}

// CellSegmentRange returns the half-open range into Segments owned by
// cell i; Segments[lo+j] is segment j of that cell's tree.
func (d *Discretization) CellSegmentRange(cell int) (lo, hi int) {
	return d.CellSegmentPart[cell], d.CellSegmentPart[cell+1]
}

// Discretize builds the flat discretization artifact for the supplied
// cells, processed in order — that order is part of the contract, as
// it determines global CV numbering.
func Discretize(cells []CellInput, defaults phys.Defaults) (*Discretization, error) {
	d := &Discretization{CellCVPart: []int{0}, CellSegmentPart: []int{0}}

	for cellIdx, cell := range cells {
		if err := discretizeCell(d, cellIdx, cell, defaults); err != nil {
			return nil, err
		}
		d.CellCVPart = append(d.CellCVPart, len(d.CVArea))
		d.CellSegmentPart = append(d.CellSegmentPart, len(d.Segments))
	}

	return d, nil
}

func discretizeCell(d *Discretization, cellIdx int, cell CellInput, defaults phys.Defaults) error {
	tree := cell.Tree
	n := tree.NumNodes()
	if n == 0 || n != len(cell.Segments) {
		return cellerr.New(cellerr.InvalidTopology, "segment tree and segment list size mismatch", cellerr.WithCell(cellIdx))
	}

	root := tree.Root()
	somaSeg := cell.Segments[root]
	if somaSeg.Kind != morph.Soma {
		return cellerr.New(cellerr.UnsupportedTopology, "root segment must be a soma",
			cellerr.WithCell(cellIdx), cellerr.WithSegment(root))
	}
	if !somaSeg.Valid() {
		return cellerr.New(cellerr.InvalidGeometry, "soma radius must be positive",
			cellerr.WithCell(cellIdx), cellerr.WithSegment(root))
	}

	base := len(d.CVArea)
	var diamW []float64 // parallel to d.CVArea[base:], un-normalized sum(r*a)

	appendCV := func(parentCV int, area, cap, faceCond, dW float64) int {
		idx := len(d.CVArea)
		d.CVArea = append(d.CVArea, area)
		d.CVCapacitance = append(d.CVCapacitance, cap)
		d.FaceConductance = append(d.FaceConductance, faceCond)
		d.ParentCV = append(d.ParentCV, parentCV)
		d.CVToCell = append(d.CVToCell, cellIdx)
		diamW = append(diamW, dW)
		return idx
	}

	cmSoma := phys.Resolve(defaults, cell.CellOverrides, cell.SegmentOverrides[root], "cm")
	somaArea := 4 * math.Pi * somaSeg.Radius * somaSeg.Radius
	somaIdx := appendCV(-1, somaArea, somaArea*cmSoma*capacitanceUnitFactor, 0, somaSeg.Radius*somaArea)
	d.CVContribs = append(d.CVContribs, []Contribution{{Segment: root, Area: somaArea}})

	attachCV := make([]int, n)
	for i := range attachCV {
		attachCV[i] = -1
	}
	if tree.NumChildren(root) > 0 {
		jIdx := appendCV(somaIdx, 0, 0, 0, 0)
		d.CVContribs = append(d.CVContribs, nil)
		attachCV[root] = jIdx
	}

	segOut := make([]SegmentCVs, n)
	segOut[root] = SegmentCVs{ParentCV: -1, HasParent: false, CVLo: somaIdx, CVHi: somaIdx + 1}

	var visitErr error
	var visit func(v int)
	visit = func(v int) {
		for _, c := range tree.Children(v) {
			if visitErr != nil {
				return
			}
			seg := cell.Segments[c]
			if seg.Kind != morph.Cable {
				visitErr = cellerr.New(cellerr.UnsupportedTopology, "non-root segment must be a cable",
					cellerr.WithCell(cellIdx), cellerr.WithSegment(c))
				return
			}
			if !seg.Valid() {
				visitErr = cellerr.New(cellerr.InvalidGeometry,
					"cable segment has non-positive length/radius or zero compartments",
					cellerr.WithCell(cellIdx), cellerr.WithSegment(c))
				return
			}

			k := seg.NCompartment
			compLen := seg.Length / float64(k)
			halves := compartment.Halves(seg.Length, seg.Radii, k)

			cmSeg := phys.Resolve(defaults, cell.CellOverrides, cell.SegmentOverrides[c], "cm")
			raSeg := phys.Resolve(defaults, cell.CellOverrides, cell.SegmentOverrides[c], "ra")

			parentSeg := cell.Segments[v]
			parentIsSoma := parentSeg.Kind == morph.Soma
			var parentCompLen float64
			if !parentIsSoma {
				parentCompLen = parentSeg.Length / float64(parentSeg.NCompartment)
			}

			lo := len(d.CVArea)
			parentAttach := attachCV[v]

			for i := 0; i < k; i++ {
				var area, vol, diamWeight float64
				if i == k-1 {
					area = halves[i].AreaRight
					vol = halves[i].VolumeRight
					diamWeight = halves[i].RadiusRight * halves[i].AreaRight
				} else {
					area = halves[i].AreaRight + halves[i+1].AreaLeft
					vol = halves[i].VolumeRight + halves[i+1].VolumeLeft
					diamWeight = halves[i].RadiusRight*halves[i].AreaRight + halves[i+1].RadiusLeft*halves[i+1].AreaLeft
				}
				_ = vol
				cap := area * cmSeg * capacitanceUnitFactor

				var parentCV int
				var h, rFace float64
				if i == 0 {
					parentCV = parentAttach
					h = compLen / 2
					if !parentIsSoma {
						h += parentCompLen / 2
					}
					rFace = compartment.RadiusAt(seg.Radii, seg.Length, 0)
				} else {
					parentCV = lo + i - 1
					h = compLen
					rFace = compartment.RadiusAt(seg.Radii, seg.Length, float64(i)*compLen)
				}
				faceCond := compartment.CrossSectionArea(rFace) / (h * raSeg) * faceConductanceUnitFactor

				appendCV(parentCV, area, cap, faceCond, diamWeight)
				d.CVContribs = append(d.CVContribs, []Contribution{{Segment: c, Area: area}})
			}
			hi := lo + k
			segOut[c] = SegmentCVs{ParentCV: parentAttach, HasParent: true, CVLo: lo, CVHi: hi}
			attachCV[c] = hi - 1

			d.CVArea[parentAttach] += halves[0].AreaLeft
			d.CVCapacitance[parentAttach] += halves[0].AreaLeft * cmSeg * capacitanceUnitFactor
			diamW[parentAttach-base] += halves[0].RadiusLeft * halves[0].AreaLeft
			d.CVContribs[parentAttach] = append(d.CVContribs[parentAttach], Contribution{Segment: c, Area: halves[0].AreaLeft})

			visit(c)
		}
	}
	visit(root)
	if visitErr != nil {
		return visitErr
	}

	d.Segments = append(d.Segments, segOut...)

	for i, w := range diamW {
		idx := base + i
		if d.CVArea[idx] > 0 {
			d.DiamUm = append(d.DiamUm, 2*w/d.CVArea[idx])
		} else {
			d.DiamUm = append(d.DiamUm, 0)
		}
	}

	return nil
}
