// Package cellerr defines the enumerated error taxonomy the compiler
// reports synchronously on any failed build; no partial artifacts are
// ever returned alongside an error.
package cellerr

import "fmt"

// Kind enumerates the failure categories a compile can produce.
type Kind int

const (
	InvalidTopology Kind = iota
	InvalidGeometry
	UnsupportedTopology
	UnknownMechanism
	IncompatibleMechanism
	MissingIon
	IonChargeMismatch
	InconsistentRevpot
	ParameterOutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidTopology:
		return "InvalidTopology"
	case InvalidGeometry:
		return "InvalidGeometry"
	case UnsupportedTopology:
		return "UnsupportedTopology"
	case UnknownMechanism:
		return "UnknownMechanism"
	case IncompatibleMechanism:
		return "IncompatibleMechanism"
	case MissingIon:
		return "MissingIon"
	case IonChargeMismatch:
		return "IonChargeMismatch"
	case InconsistentRevpot:
		return "InconsistentRevpot"
	case ParameterOutOfRange:
		return "ParameterOutOfRange"
	default:
		return "Unknown"
	}
}

// CableCellError carries the failure kind plus enough context to
// locate it: the cell, segment/CV, and mechanism/parameter involved.
// Any field left at its zero value (-1 for indices, "" for names) was
// not applicable to the failure.
type CableCellError struct {
	Kind      Kind
	Msg       string
	Cell      int
	Segment   int
	CV        int
	Mechanism string
	Parameter string
}

func (e *CableCellError) Error() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Cell >= 0 {
		s += fmt.Sprintf(" (cell %d", e.Cell)
		if e.Segment >= 0 {
			s += fmt.Sprintf(", segment %d", e.Segment)
		}
		if e.CV >= 0 {
			s += fmt.Sprintf(", cv %d", e.CV)
		}
		s += ")"
	}
	if e.Mechanism != "" {
		s += fmt.Sprintf(" [mechanism %q", e.Mechanism)
		if e.Parameter != "" {
			s += fmt.Sprintf(", parameter %q", e.Parameter)
		}
		s += "]"
	}
	return s
}

// Option narrows a CableCellError with extra locating context.
type Option func(*CableCellError)

func WithCell(i int) Option      { return func(e *CableCellError) { e.Cell = i } }
func WithSegment(i int) Option   { return func(e *CableCellError) { e.Segment = i } }
func WithCV(i int) Option        { return func(e *CableCellError) { e.CV = i } }
func WithMechanism(m string) Option {
	return func(e *CableCellError) { e.Mechanism = m }
}
func WithParameter(p string) Option {
	return func(e *CableCellError) { e.Parameter = p }
}

// New constructs a CableCellError of the given kind.
func New(kind Kind, msg string, opts ...Option) *CableCellError {
	e := &CableCellError{Kind: kind, Msg: msg, Cell: -1, Segment: -1, CV: -1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
