package mir

// OperandKind distinguishes how an operand supplies its value.
type OperandKind int

const (
	OperandConst OperandKind = iota // Inline constant
	OperandCopy                     // Copy out of a place
	OperandMove                     // Move out of a place
)

// Operand is an argument to a call or assert: either an inline constant or a
// reference to a place.
type Operand struct {
	Kind  OperandKind `yaml:"kind"`
	Place Place       `yaml:"place,omitempty"` // Valid for Copy and Move
}

// Const returns a constant operand.
func Const() Operand {
	return Operand{Kind: OperandConst}
}

// Copy returns an operand reading from place.
func Copy(place Place) Operand {
	return Operand{Kind: OperandCopy, Place: place}
}

// Move returns an operand consuming place.
func Move(place Place) Operand {
	return Operand{Kind: OperandMove, Place: place}
}
