// Package recipe defines the input contract the compiler consumes: a
// cell count, a per-cell description (morphology, paintings,
// placements, local overrides), and global properties (catalogue,
// defaults, ion species, coalescing flag). It also ships a static,
// slice-backed implementation for tests and the CLI demo.
package recipe

import (
	"github.com/oehrl/arbor/internal/catalogue"
	"github.com/oehrl/arbor/internal/morph"
	"github.com/oehrl/arbor/internal/phys"
	"github.com/oehrl/arbor/internal/region"
)

// Property is a sealed ADT: the target of a Painting is either a
// density mechanism, a scalar membrane property, or a
// reversal-potential method selector.
type Property interface{ property() }

// DensityMech paints a density mechanism (channel, current) with
// parameter overrides; parameters absent from Params take the
// catalogue default.
type DensityMech struct {
	Name   string
	Params map[string]float64
}

// ScalarProperty paints one of the four scalar membrane properties:
// "cm", "ra", "vm", or "celsius".
type ScalarProperty struct {
	Name  string
	Value float64
}

// RevpotMethod assigns the reversal-potential method for one ion over
// the painted region.
type RevpotMethod struct {
	Ion    string
	Method string
}

func (DensityMech) property()    {}
func (ScalarProperty) property() {}
func (RevpotMethod) property()   {}

// PointItem is a sealed ADT: the target of a Placement is a point
// mechanism (synapse), a stimulus waveform, a threshold detector, or a
// gap-junction site.
type PointItem interface{ pointItem() }

// PointMech is a point-process mechanism instance, e.g. a synapse.
type PointMech struct {
	Name   string
	Params map[string]float64
}

// Stimulus is a current-clamp-style waveform generator, modeled as a
// point mechanism under its own catalogue name; like any point
// mechanism it is coalesced only when the catalogue marks it linear.
type Stimulus struct {
	Name   string
	Params map[string]float64
}

// Detector is a threshold-crossing spike detector.
type Detector struct {
	Name      string
	Threshold float64
}

// GapJunctionSite is one endpoint of an electrical junction between
// two cells.
type GapJunctionSite struct {
	Name   string
	Params map[string]float64
}

func (PointMech) pointItem()       {}
func (Stimulus) pointItem()        {}
func (Detector) pointItem()        {}
func (GapJunctionSite) pointItem() {}

// Painting attaches a Property to a region of a cell.
type Painting struct {
	Where region.Region
	Prop  Property
}

// Placement attaches a PointItem to a single location on a cell.
type Placement struct {
	Loc  region.Mlocation
	Item PointItem
}

// CellDescription is everything Compile needs to discretize and
// layout one cell: its morphology, its paintings/placements, its
// local overrides of the four scalar properties, and its explicit
// reversal-potential method assignments.
type CellDescription struct {
	Tree             morph.Tree
	Segments         []morph.Segment
	CellOverrides    map[string]float64
	SegmentOverrides map[int]map[string]float64
	Paintings        []Painting
	Placements       []Placement
	RevpotMethods    map[string]string // ion -> method name
}

// GlobalProperties are the compile-wide inputs shared by every cell.
type GlobalProperties struct {
	Catalogue catalogue.Catalogue
	Defaults  phys.Defaults
	Ions      map[string]phys.IonDefault
	Coalesce  bool
}

// Recipe is the collaborator Compile consumes: cell count plus, for
// each cell in [0, NumCells), its description; global properties are
// shared across all cells.
type Recipe interface {
	NumCells() int
	CellDescription(i int) CellDescription
	GlobalProperties() GlobalProperties
}

// Static is an in-memory Recipe over a fixed slice of descriptions,
// built once and never mutated — the same shape as
// catalogue.Static, and sufficient for tests and the CLI demo.
type Static struct {
	Cells  []CellDescription
	Global GlobalProperties
}

func (s *Static) NumCells() int                        { return len(s.Cells) }
func (s *Static) CellDescription(i int) CellDescription { return s.Cells[i] }
func (s *Static) GlobalProperties() GlobalProperties    { return s.Global }
