package checker

import (
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/solguard/solguard/checker/mir"
	"github.com/solguard/solguard/checker/signature"
)

// ReentrancyChecker accumulates per-function state during a single CFG
// traversal and decides afterwards whether the function violates
// checks-effects-interactions: a balance is loaded, value is transferred to
// an external account, and only then is the balance written down. Block-id
// order is used as the proxy for program order, so the write must sit in a
// block strictly after the last recorded transfer.
//
// One instance analyzes exactly one function and is discarded afterwards.
type ReentrancyChecker struct {
	balanceRead   signature.Table
	valueTransfer signature.Table

	// Full retained content of every visited block; the post-pass scan needs
	// the whole block, not just matched calls.
	blocks map[mir.BlockID][]mir.BlockItem
	// Blocks containing a recognized value-transfer call, keyed to the
	// matched callee name.
	transfers     map[mir.BlockID]string
	transferSpans map[mir.BlockID]mir.Span

	// Destination of the first recognized balance-read call. Later reads are
	// ignored: re-binding could be steered to a decoy location.
	trackedBalance *mir.Place
	balanceSpan    mir.Span

	// Span of the item currently being visited, bridging RecordItem and the
	// RecordCall that follows it within the same visit.
	lastSpan mir.Span
}

// NewReentrancyChecker returns a checker bound to the given signature tables.
func NewReentrancyChecker(config *signature.Config) *ReentrancyChecker {
	return &ReentrancyChecker{
		balanceRead:   config.BalanceRead,
		valueTransfer: config.ValueTransfer,
		blocks:        make(map[mir.BlockID][]mir.BlockItem),
		transfers:     make(map[mir.BlockID]string),
		transferSpans: make(map[mir.BlockID]mir.Span),
	}
}

// Kind returns KindReentrancy.
func (r *ReentrancyChecker) Kind() Kind {
	return KindReentrancy
}

// RecordItem retains item under block, whatever its kind.
func (r *ReentrancyChecker) RecordItem(block mir.BlockID, item mir.BlockItem) {
	r.blocks[block] = append(r.blocks[block], item)
	switch v := item.(type) {
	case *mir.Statement:
		r.lastSpan = v.Span
	case *mir.Terminator:
		r.lastSpan = v.Span
	}
}

// RecordCall classifies a call terminator. A balance-read call binds the
// tracked balance to its destination if none is bound yet; a value-transfer
// call marks the enclosing block.
func (r *ReentrancyChecker) RecordCall(block mir.BlockID, callee string, dest *mir.Place) {
	if r.balanceRead.Has(callee) && r.trackedBalance == nil && dest != nil {
		place := *dest
		r.trackedBalance = &place
		r.balanceSpan = r.lastSpan
		log.Debugf("reentrancy: tracking balance place %v from %v", place.Local, callee)
	}
	if r.valueTransfer.Has(callee) {
		r.transfers[block] = callee
		r.transferSpans[block] = r.lastSpan
	}
}

// Check reports whether the accumulated facts show a reentrancy surface. It
// is read-only over the state and may be called any number of times.
func (r *ReentrancyChecker) Check() bool {
	triggered, _ := r.scan()
	return triggered
}

// Span returns the source range bounding the evidence: from the balance read
// to the offending write. Empty while Check is false.
func (r *ReentrancyChecker) Span() mir.Span {
	_, span := r.scan()
	return span
}

func (r *ReentrancyChecker) scan() (bool, mir.Span) {
	if len(r.transfers) == 0 {
		return false, mir.Span{}
	}

	// Deterministic stand-in for "the last transfer": the maximum block id
	// among recorded transfer blocks.
	lastTransfer := mir.BlockID(-1)
	for block := range r.transfers {
		if block > lastTransfer {
			lastTransfer = block
		}
	}
	log.Debugf("reentrancy: last transfer block %v, tracked balance %v", lastTransfer, r.trackedBalance)

	ids := make([]mir.BlockID, 0, len(r.blocks))
	for block := range r.blocks {
		if block > lastTransfer {
			ids = append(ids, block)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, block := range ids {
		for _, item := range r.blocks[block] {
			if span, ok := r.matches(item); ok {
				evidence := r.balanceSpan.Cover(r.transferSpans[lastTransfer]).Cover(span)
				return true, evidence
			}
		}
	}
	return false, mir.Span{}
}

// matches reports whether item writes the tracked balance: a direct
// assignment to it, or an overflow-checked subtraction reading it, the
// lowered form of `balance -= amount`.
func (r *ReentrancyChecker) matches(item mir.BlockItem) (mir.Span, bool) {
	if r.trackedBalance == nil {
		return mir.Span{}, false
	}
	switch v := item.(type) {
	case *mir.Statement:
		if v.Kind == mir.StatementAssign && v.Dest.SameLocation(*r.trackedBalance) {
			return v.Span, true
		}
	case *mir.Terminator:
		if v.Kind != mir.TerminatorAssert || v.Assert == nil {
			break
		}
		if v.Assert.Kind != mir.AssertOverflowSub {
			break
		}
		left := v.Assert.Left
		if left.Kind == mir.OperandCopy && left.Place.SameLocation(*r.trackedBalance) {
			return v.Span, true
		}
	}
	return mir.Span{}, false
}
