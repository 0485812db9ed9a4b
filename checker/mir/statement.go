package mir

// StatementKind distinguishes mid-block statement variants.
type StatementKind int

const (
	StatementAssign StatementKind = iota // Dest = <rvalue>
	StatementNop                         // Lowering artifact, no effect
)

// Statement is a non-terminating instruction inside a basic block. Only the
// assignment variant carries information the detectors use; other variants
// are retained so a block scan sees the block exactly as emitted.
type Statement struct {
	Kind StatementKind `yaml:"kind"`
	Dest Place         `yaml:"dest,omitempty"` // Valid for Assign
	Span Span          `yaml:"span"`
}

// TerminatorKind distinguishes the control-transferring instruction ending a
// basic block.
type TerminatorKind int

const (
	TerminatorCall   TerminatorKind = iota // Function call, optional result place
	TerminatorAssert                       // Runtime guard, aborts on failure
	TerminatorGoto                         // Unconditional jump
	TerminatorReturn                       // Function exit
)

// AssertKind identifies which runtime guard an assert terminator encodes.
type AssertKind int

const (
	// AssertOverflowSub guards a subtraction against underflow. The left
	// operand is the value being decremented.
	AssertOverflowSub AssertKind = iota
	AssertOverflowAdd
	AssertBoundsCheck
)

// AssertMessage describes the guarded condition of an assert terminator.
type AssertMessage struct {
	Kind AssertKind `yaml:"kind"`
	Left Operand    `yaml:"left,omitempty"` // Left operand of the guarded arithmetic
}

// Terminator is the single control-transferring instruction ending a basic
// block.
type Terminator struct {
	Kind   TerminatorKind `yaml:"kind"`
	Callee string         `yaml:"callee,omitempty"` // Fully-qualified name, valid for Call
	Args   []Operand      `yaml:"args,omitempty"`   // Valid for Call
	Dest   *Place         `yaml:"dest,omitempty"`   // Call result destination, if stored
	Assert *AssertMessage `yaml:"assert,omitempty"` // Valid for Assert
	Span   Span           `yaml:"span"`
}
