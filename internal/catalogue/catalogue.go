// Package catalogue describes the mechanism catalogue interface the
// compiler queries for parameter defaults, ion dependencies, and
// coalescing eligibility. It does not parse or execute mechanism code
// (that is out of scope, the way the teacher never parses NSCP source,
// only evaluates its formula tables); it ships a static, map-backed
// implementation for tests and the CLI demo.
package catalogue

// MechKind distinguishes the mechanism shapes a catalogue entry can
// describe.
type MechKind int

const (
	Density MechKind = iota
	Point
	GapJunction
	ReversalPotential
)

func (k MechKind) String() string {
	switch k {
	case Density:
		return "density"
	case Point:
		return "point"
	case GapJunction:
		return "gap_junction"
	case ReversalPotential:
		return "reversal_potential"
	default:
		return "unknown"
	}
}

// ParamMeta describes one mechanism parameter: its default value and
// valid range, used to validate painted density overrides and to fill
// uncovered CV area fraction during density projection.
type ParamMeta struct {
	Default float64
	Min, Max float64
	HasRange bool
}

// Catalogue is the read-only mechanism registry the layout builder
// queries. A conforming implementation must be safe for concurrent
// reads: a Compile may run concurrently with others sharing the same
// Catalogue.
type Catalogue interface {
	Has(name string) bool
	Kind(name string) MechKind
	Parameters(name string) map[string]ParamMeta
	IonsRead(name string) []string
	IonsWrite(name string) []string
	IsLinear(name string) bool
	// IonCharge returns the mechanism's declared charge for ion, if it
	// declares one; ok is false when the mechanism is agnostic to the
	// ion's charge.
	IonCharge(name, ion string) (charge int, ok bool)
}

// entry is one catalogue-static mechanism's metadata.
type entry struct {
	kind       MechKind
	params     map[string]ParamMeta
	ionsRead   []string
	ionsWrite  []string
	linear     bool
	ionCharges map[string]int
}

// Static is an in-memory Catalogue built once at construction and
// never mutated afterward, so concurrent reads are trivially safe.
type Static struct {
	entries map[string]entry
}

// NewStatic returns an empty catalogue; use Add to register
// mechanisms before handing it to Compile.
func NewStatic() *Static {
	return &Static{entries: make(map[string]entry)}
}

// Add registers a mechanism's metadata. params/ionsRead/ionsWrite may
// be nil. linear marks the mechanism eligible for point-instance
// coalescing (no per-instance state read externally).
func (s *Static) Add(name string, kind MechKind, params map[string]ParamMeta, ionsRead, ionsWrite []string, linear bool) {
	s.entries[name] = entry{kind: kind, params: params, ionsRead: ionsRead, ionsWrite: ionsWrite, linear: linear}
}

// AddIonCharge declares the charge a mechanism expects for one of the
// ions it reads or writes, used to detect IonChargeMismatch against
// the global species table at link time.
func (s *Static) AddIonCharge(name, ion string, charge int) {
	e := s.entries[name]
	if e.ionCharges == nil {
		e.ionCharges = make(map[string]int)
	}
	e.ionCharges[ion] = charge
	s.entries[name] = e
}

func (s *Static) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

func (s *Static) Kind(name string) MechKind {
	return s.entries[name].kind
}

func (s *Static) Parameters(name string) map[string]ParamMeta {
	return s.entries[name].params
}

func (s *Static) IonsRead(name string) []string {
	return s.entries[name].ionsRead
}

func (s *Static) IonsWrite(name string) []string {
	return s.entries[name].ionsWrite
}

func (s *Static) IsLinear(name string) bool {
	return s.entries[name].linear
}

func (s *Static) IonCharge(name, ion string) (int, bool) {
	c, ok := s.entries[name].ionCharges[ion]
	return c, ok
}
