package model

// RowStatus classifies one dependency comparison result
type RowStatus string

const (
	// StatusIdentical means name, constraint and selector all match
	StatusIdentical RowStatus = "identical"
	// StatusMismatched means the name matches but constraint or selector differ
	StatusMismatched RowStatus = "mismatched"
	// StatusCurrentOnly means the dependency exists only in the current recipe
	StatusCurrentOnly RowStatus = "current_only"
	// StatusFoundOnly means the dependency exists only in the generated recipe
	StatusFoundOnly RowStatus = "found_only"
)

// ComparisonRow is one row of the dependency comparison table. Current
// and Found are nil when the row has no dependency on that side.
type ComparisonRow struct {
	Status  RowStatus
	Current *Dependency
	Found   *Dependency
}
