package checker

import (
	"github.com/solguard/solguard/checker/mir"
	"github.com/solguard/solguard/checker/signature"
)

// flagChecker answers a single question: was any callable from its table
// ever referenced in this function. No ordering, no place analysis.
type flagChecker struct {
	kind      Kind
	table     signature.Table
	triggered bool
	span      mir.Span
}

// NewBadRandomnessChecker flags use of randomness sources that validators
// can predict or bias.
func NewBadRandomnessChecker(config *signature.Config) Checker {
	return &flagChecker{kind: KindBadRandomness, table: config.RandomnessSource}
}

// NewTimeManipulationChecker flags use of the on-chain clock, whose value a
// leader can skew within the allowed drift.
func NewTimeManipulationChecker(config *signature.Config) Checker {
	return &flagChecker{kind: KindTimeManipulation, table: config.ClockSource}
}

// NewNumericalPrecisionChecker flags float rounding, a proxy for value lost
// to precision in token arithmetic.
func NewNumericalPrecisionChecker(config *signature.Config) Checker {
	return &flagChecker{kind: KindNumericalPrecision, table: config.RoundingFunction}
}

func (f *flagChecker) Kind() Kind {
	return f.kind
}

// RecordItem triggers on the first call terminator whose callee is listed in
// the table; repeat matches keep the first span.
func (f *flagChecker) RecordItem(_ mir.BlockID, item mir.BlockItem) {
	if f.triggered {
		return
	}
	terminator, ok := item.(*mir.Terminator)
	if !ok || terminator.Kind != mir.TerminatorCall {
		return
	}
	if f.table.Has(terminator.Callee) {
		f.triggered = true
		f.span = terminator.Span
	}
}

func (f *flagChecker) RecordCall(mir.BlockID, string, *mir.Place) {}

func (f *flagChecker) Check() bool {
	return f.triggered
}

func (f *flagChecker) Span() mir.Span {
	if !f.triggered {
		return mir.Span{}
	}
	return f.span
}
