// Package morph owns the segment-tree invariants: a rooted tree whose
// node 0 is a soma and whose remaining nodes are tapered cables, plus
// root relocation and depth balancing.
package morph

// SegmentKind distinguishes the two segment shapes a cell is built
// from. A tagged variant replaces what would otherwise be a soma/cable
// class hierarchy.
type SegmentKind int

const (
	Soma SegmentKind = iota
	Cable
)

// Segment is a tagged union: a Soma carries only Radius, a Cable
// carries a length, a piecewise-linear radius profile sampled at
// sub-segment boundaries, and a compartment count.
type Segment struct {
	Kind SegmentKind
	Tag  int // region label

	// Soma fields.
	Radius float64

	// Cable fields.
	Length       float64
	Radii        []float64 // >= 2 samples, uniformly spaced along [0, Length]
	NCompartment int
}

// NewSoma builds a soma segment with the given tag.
func NewSoma(radius float64, tag int) Segment {
	return Segment{Kind: Soma, Tag: tag, Radius: radius}
}

// NewCable builds a cable segment with the given tag.
func NewCable(length float64, radii []float64, ncomp, tag int) Segment {
	return Segment{
		Kind:         Cable,
		Tag:          tag,
		Length:       length,
		Radii:        radii,
		NCompartment: ncomp,
	}
}

// Valid reports whether the segment's own geometry is well formed
// (positive length/radii, at least one compartment). It does not check
// topology; that is the Tree's responsibility.
func (s Segment) Valid() bool {
	switch s.Kind {
	case Soma:
		return s.Radius > 0
	case Cable:
		if s.Length <= 0 || s.NCompartment < 1 || len(s.Radii) < 2 {
			return false
		}
		for _, r := range s.Radii {
			if r <= 0 {
				return false
			}
		}
		return true
	default:
		return false
	}
}
