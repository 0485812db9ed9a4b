package signature

// Table is a set of fully-qualified callable names recognized as one class
// of dangerous API. Matching is exact: partial names would widen the table
// beyond what the configuration states.
type Table []string

// Has reports whether callee is listed in the table.
func (t Table) Has(callee string) bool {
	for _, name := range t {
		if name == callee {
			return true
		}
	}
	return false
}
