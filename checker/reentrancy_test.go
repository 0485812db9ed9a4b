package checker

import (
	"testing"

	"github.com/solguard/solguard/checker/mir"
	"github.com/solguard/solguard/checker/signature"
	"github.com/stretchr/testify/assert"
)

const (
	readBalance = "std::collections::HashMap::get_mut"
	payOut      = "solana_program::account_info::AccountInfo::try_borrow_mut_lamports"
)

func assign(dest mir.Place, span mir.Span) *mir.Statement {
	return &mir.Statement{Kind: mir.StatementAssign, Dest: dest, Span: span}
}

func call(callee string, dest *mir.Place, span mir.Span) *mir.Terminator {
	return &mir.Terminator{Kind: mir.TerminatorCall, Callee: callee, Dest: dest, Span: span}
}

func subGuard(place mir.Place, span mir.Span) *mir.Terminator {
	return &mir.Terminator{
		Kind:   mir.TerminatorAssert,
		Assert: &mir.AssertMessage{Kind: mir.AssertOverflowSub, Left: mir.Copy(place)},
		Span:   span,
	}
}

// feed replays block items through the recording hooks the way the traversal
// driver would: RecordItem for everything, RecordCall for call terminators.
func feed(r *ReentrancyChecker, block mir.BlockID, items ...mir.BlockItem) {
	for _, item := range items {
		r.RecordItem(block, item)
		if terminator, ok := item.(*mir.Terminator); ok && terminator.Kind == mir.TerminatorCall {
			r.RecordCall(block, terminator.Callee, terminator.Dest)
		}
	}
}

func TestReentrancyChecker_Check(t *testing.T) {
	balance := mir.Place{Local: 5}
	other := mir.Place{Local: 9}

	tests := []struct {
		name string
		feed func(r *ReentrancyChecker)
		want bool
	}{
		{
			name: "vulnerable withdraw: write after transfer",
			feed: func(r *ReentrancyChecker) {
				feed(r, 3, call(readBalance, &balance, mir.Span{Start: 100, End: 120}))
				feed(r, 4, call(payOut, nil, mir.Span{Start: 130, End: 160}))
				feed(r, 6, assign(balance, mir.Span{Start: 200, End: 220}))
			},
			want: true,
		},
		{
			name: "fixed withdraw: write before transfer",
			feed: func(r *ReentrancyChecker) {
				feed(r, 3, call(readBalance, &balance, mir.Span{Start: 100, End: 120}))
				feed(r, 4, assign(balance, mir.Span{Start: 130, End: 150}))
				feed(r, 6, call(payOut, nil, mir.Span{Start: 200, End: 230}))
			},
			want: false,
		},
		{
			name: "overflow guard stands in for the decrement",
			feed: func(r *ReentrancyChecker) {
				feed(r, 2, call(readBalance, &balance, mir.Span{Start: 50, End: 70}))
				feed(r, 3, call(payOut, nil, mir.Span{Start: 80, End: 110}))
				feed(r, 5, subGuard(balance, mir.Span{Start: 140, End: 160}))
			},
			want: true,
		},
		{
			name: "no transfer means no finding",
			feed: func(r *ReentrancyChecker) {
				feed(r, 1, call(readBalance, &balance, mir.Span{Start: 10, End: 20}))
				feed(r, 2, assign(balance, mir.Span{Start: 30, End: 40}))
			},
			want: false,
		},
		{
			name: "no balance tracked means no finding",
			feed: func(r *ReentrancyChecker) {
				feed(r, 2, call(payOut, nil, mir.Span{Start: 30, End: 60}))
				feed(r, 4, assign(other, mir.Span{Start: 80, End: 90}))
			},
			want: false,
		},
		{
			name: "write in the transfer block itself is in order",
			feed: func(r *ReentrancyChecker) {
				feed(r, 3, call(readBalance, &balance, mir.Span{Start: 10, End: 30}))
				feed(r, 4,
					assign(balance, mir.Span{Start: 40, End: 50}),
					call(payOut, nil, mir.Span{Start: 60, End: 90}))
			},
			want: false,
		},
		{
			name: "later write to an unrelated place is in order",
			feed: func(r *ReentrancyChecker) {
				feed(r, 3, call(readBalance, &balance, mir.Span{Start: 10, End: 30}))
				feed(r, 4, call(payOut, nil, mir.Span{Start: 40, End: 70}))
				feed(r, 6, assign(other, mir.Span{Start: 100, End: 110}))
			},
			want: false,
		},
		{
			name: "maximum transfer block decides, not insertion order",
			feed: func(r *ReentrancyChecker) {
				feed(r, 2, call(readBalance, &balance, mir.Span{Start: 10, End: 30}))
				// The write sits between two transfers; only blocks past the
				// maximum-id transfer count as "after".
				feed(r, 7, call(payOut, nil, mir.Span{Start: 200, End: 230}))
				feed(r, 5, assign(balance, mir.Span{Start: 100, End: 120}))
				feed(r, 3, call(payOut, nil, mir.Span{Start: 40, End: 70}))
			},
			want: false,
		},
		{
			name: "projected write still hits the tracked base",
			feed: func(r *ReentrancyChecker) {
				feed(r, 3, call(readBalance, &balance, mir.Span{Start: 10, End: 30}))
				feed(r, 4, call(payOut, nil, mir.Span{Start: 40, End: 70}))
				projected := mir.Place{Local: balance.Local, Projection: []mir.Projection{{Kind: mir.ProjectionField, Value: 1}}}
				feed(r, 6, assign(projected, mir.Span{Start: 100, End: 120}))
			},
			want: true,
		},
		{
			name: "empty function",
			feed: func(r *ReentrancyChecker) {},
			want: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReentrancyChecker(signature.Default())
			tc.feed(r)
			assert.Equal(t, tc.want, r.Check())
			// Check is idempotent and read-only.
			assert.Equal(t, tc.want, r.Check())
		})
	}
}

func TestReentrancyChecker_FirstBalanceReadWins(t *testing.T) {
	first := mir.Place{Local: 5}
	second := mir.Place{Local: 11}

	r := NewReentrancyChecker(signature.Default())
	feed(r, 1, call(readBalance, &first, mir.Span{Start: 10, End: 20}))
	feed(r, 2, call(readBalance, &second, mir.Span{Start: 30, End: 40}))

	if !assert.NotNil(t, r.trackedBalance) {
		return
	}
	assert.Equal(t, first.Local, r.trackedBalance.Local)

	// A post-transfer write to the decoy location is not a finding; a write
	// to the first-bound place is.
	feed(r, 3, call(payOut, nil, mir.Span{Start: 50, End: 70}))
	feed(r, 4, assign(second, mir.Span{Start: 80, End: 90}))
	assert.False(t, r.Check())

	feed(r, 5, assign(first, mir.Span{Start: 100, End: 110}))
	assert.True(t, r.Check())
}

func TestReentrancyChecker_Span(t *testing.T) {
	balance := mir.Place{Local: 5}

	r := NewReentrancyChecker(signature.Default())
	assert.True(t, r.Span().IsEmpty())

	feed(r, 3, call(readBalance, &balance, mir.Span{Start: 100, End: 120}))
	feed(r, 4, call(payOut, nil, mir.Span{Start: 130, End: 160}))
	feed(r, 6, assign(balance, mir.Span{Start: 200, End: 220}))

	assert.True(t, r.Check())
	// Evidence runs from the balance read to the offending write.
	assert.Equal(t, mir.Span{Start: 100, End: 220}, r.Span())
}

func TestReentrancyChecker_TransferNameOverwrite(t *testing.T) {
	r := NewReentrancyChecker(signature.Default())
	feed(r, 2,
		call(payOut, nil, mir.Span{Start: 10, End: 30}),
		call("solana_program::program::invoke", nil, mir.Span{Start: 40, End: 60}))

	// Later transfer calls in one block overwrite the recorded name; the
	// block stays recorded exactly once.
	assert.Len(t, r.transfers, 1)
	assert.Equal(t, "solana_program::program::invoke", r.transfers[2])
}
