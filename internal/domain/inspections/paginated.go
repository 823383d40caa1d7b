package inspections

// Page size bounds for one dashboard page.
const (
	DefaultPerPage = 8
	MaxPerPage     = 100
)

// PageRequest selects one page of results.
type PageRequest struct {
	Page    int
	PerPage int
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination metadata for one envelope.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Stats aggregates prediction outcomes. Total counts the whole table
// regardless of filter; Filtered, OKCount and KOCount are under the
// current filter.
type Stats struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	OKCount  int `json:"ok_count"`
	KOCount  int `json:"ko_count"`
}

// ResultEnvelope is the combined list + pagination + stats response for
// one query, ordered by timestamp descending.
type ResultEnvelope struct {
	Inspections []*Inspection `json:"inspections"`
	Pagination  Pagination    `json:"pagination"`
	Stats       Stats         `json:"stats"`
}

// TotalPages computes ceil(totalCount/perPage), 0 when the result set is
// empty.
func TotalPages(totalCount, perPage int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + perPage - 1) / perPage
}
