package mir

// Span is a half-open byte-offset range into the original contract source.
// Offsets are produced by the frontend and are only ever carried through,
// never interpreted, so a finding can point at real source.
type Span struct {
	Start int `yaml:"start"` // Starting byte offset
	End   int `yaml:"end"`   // Ending byte offset
}

// IsEmpty reports whether the span carries no source location.
func (s Span) IsEmpty() bool {
	return s.Start == 0 && s.End == 0
}

// Cover returns the smallest span enclosing both s and other.
func (s Span) Cover(other Span) Span {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}
