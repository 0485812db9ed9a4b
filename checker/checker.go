// Package checker detects known dangerous patterns in compiled
// smart-contract functions. It consumes the lowered control-flow graph the
// frontend emits and flags reentrancy, bad randomness, time manipulation and
// numerical precision hazards before the program is deployed.
package checker

import (
	"github.com/solguard/solguard/checker/mir"
)

// Kind identifies one vulnerability class.
type Kind int

const (
	KindReentrancy Kind = iota
	KindBadRandomness
	KindTimeManipulation
	KindNumericalPrecision
)

// String returns the stable identifier used in reports and fingerprints.
func (k Kind) String() string {
	switch k {
	case KindReentrancy:
		return "reentrancy"
	case KindBadRandomness:
		return "bad-randomness"
	case KindTimeManipulation:
		return "time-manipulation"
	case KindNumericalPrecision:
		return "numerical-precision"
	}
	return "unknown"
}

// MarshalYAML serializes the kind by name, the form the report collaborator
// consumes.
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Checker is the capability shared by all detectors. The traversal driver
// holds a homogeneous collection of these and dispatches every visited
// statement and terminator without knowing concrete kinds.
//
// RecordItem is invoked once per visited statement/terminator in
// block-then-intra-block order. RecordCall is additionally invoked for call
// terminators, with the destination place the result is stored into; the
// destination is threaded through the call rather than parked in detector
// state, so it lives only for the one visit that needs it.
//
// Check is a pure function of the accumulated state: idempotent, never
// panics, callable on functions with zero blocks. Span is the location to
// attach to a positive finding and is meaningless while Check is false.
type Checker interface {
	Kind() Kind
	RecordItem(block mir.BlockID, item mir.BlockItem)
	RecordCall(block mir.BlockID, callee string, dest *mir.Place)
	Check() bool
	Span() mir.Span
}
