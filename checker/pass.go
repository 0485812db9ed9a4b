package checker

import (
	log "github.com/sirupsen/logrus"
	"github.com/solguard/solguard/checker/mir"
	"github.com/solguard/solguard/checker/signature"
)

// Pass owns the detector set for one function. State is function-scoped:
// a fresh Pass is created per analyzed function and dropped after Report.
type Pass struct {
	checkers []Checker
}

// NewPass creates detectors bound to the given signature tables. A nil
// config falls back to the built-in tables.
func NewPass(config *signature.Config) *Pass {
	if config == nil {
		config = signature.Default()
	}
	return &Pass{
		checkers: []Checker{
			NewReentrancyChecker(config),
			NewBadRandomnessChecker(config),
			NewTimeManipulationChecker(config),
			NewNumericalPrecisionChecker(config),
		},
	}
}

// VisitItem feeds one statement or terminator to every detector. Call
// terminators additionally dispatch RecordCall, threading the result
// destination through for the duration of this one visit.
func (p *Pass) VisitItem(block mir.BlockID, item mir.BlockItem) {
	for _, checker := range p.checkers {
		checker.RecordItem(block, item)
	}
	terminator, ok := item.(*mir.Terminator)
	if !ok || terminator.Kind != mir.TerminatorCall {
		return
	}
	for _, checker := range p.checkers {
		checker.RecordCall(block, terminator.Callee, terminator.Dest)
	}
}

// Report runs every detector and returns one finding per detector kind.
func (p *Pass) Report(function string) []Finding {
	findings := make([]Finding, 0, len(p.checkers))
	for _, checker := range p.checkers {
		finding := Finding{
			Function:  function,
			Kind:      checker.Kind(),
			Triggered: checker.Check(),
		}
		if finding.Triggered {
			finding.Span = checker.Span()
			finding.Fingerprint = fingerprint(function, finding.Kind, finding.Span)
			log.Infof("%v: %v at [%d:%d]", function, finding.Kind, finding.Span.Start, finding.Span.End)
		}
		findings = append(findings, finding)
	}
	return findings
}

// AnalyzeFunction runs a fresh pass over fn, visiting every block item in
// emission order, and returns the findings. It stands in for the external
// traversal driver when the CFG is already at hand.
func AnalyzeFunction(fn *mir.Function, config *signature.Config) []Finding {
	pass := NewPass(config)
	for _, block := range fn.Blocks {
		for _, item := range block.Items {
			pass.VisitItem(block.ID, item)
		}
	}
	return pass.Report(fn.Name)
}
