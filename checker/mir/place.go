package mir

// VarID identifies a local slot within a lowered function body.
type VarID int

// ProjectionKind distinguishes how a projection refines a base local.
type ProjectionKind int

const (
	ProjectionField ProjectionKind = iota // Struct field access
	ProjectionIndex                       // Array/slice element access
)

// Projection is a single field or index step applied to a base local.
type Projection struct {
	Kind  ProjectionKind `yaml:"kind"`
	Value int            `yaml:"value"` // Field ordinal or constant index
}

// Place names a storage location: a base local plus an optional
// field/index path into it.
type Place struct {
	Local      VarID        `yaml:"local"`
	Projection []Projection `yaml:"projection,omitempty"`
}

// SameLocation reports whether two places refer to the same tracked
// location. Only the base local is compared; projections are ignored, so
// distinct fields of one struct are conflated. All detector comparisons go
// through here so the approximation can be tightened in one spot.
func (p Place) SameLocation(other Place) bool {
	return p.Local == other.Local
}
