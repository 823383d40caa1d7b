package inspections

import "context"

// Repository port (interface for the row store). All filter values are
// untrusted input and must be parameter-bound by implementations, never
// concatenated into query text.
type Repository interface {
	// Count returns the number of records matching the filter.
	Count(ctx context.Context, f FilterSet) (int, error)

	// Page returns one page of matching records ordered by timestamp
	// descending, inspection_id ascending on ties.
	Page(ctx context.Context, f FilterSet, p PageRequest) ([]*Inspection, error)

	// Summary returns the OK and KO counts under the filter.
	Summary(ctx context.Context, f FilterSet) (ok int, ko int, err error)

	// Total returns the unfiltered table count.
	Total(ctx context.Context) (int, error)

	// DefectTypes returns the distinct non-null defect types, sorted.
	DefectTypes(ctx context.Context) ([]string, error)
}
