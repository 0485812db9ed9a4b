package mir

// BlockID identifies a basic block. Ids are assigned by the frontend in
// emission order, and their total order stands in for "happens no earlier
// than" in program order throughout the detectors.
type BlockID int

// BlockItem is one entry of a basic block: either a mid-block statement or
// the block's terminator.
type BlockItem interface {
	blockItem()
}

func (*Statement) blockItem()  {}
func (*Terminator) blockItem() {}

// Block is a basic block: an ordered run of statements closed by one
// terminator, both flattened into Items in emission order.
type Block struct {
	ID    BlockID     `yaml:"id"`
	Items []BlockItem `yaml:"items"`
}

// Function is the already-lowered body handed over by the frontend: the unit
// one detector pass runs over.
type Function struct {
	Name   string  `yaml:"name"`
	Blocks []Block `yaml:"blocks"`
}
