package inspections

import (
	"context"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
)

// Service implements the filtered inspection query use-case. Safe for
// concurrent use.
type Service struct {
	Repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{Repo: repo}
}

// Query resolves one dashboard page: count, page fetch and aggregate stats
// under the same predicate, plus the unfiltered table total. The store
// calls are sequential; there is no ordering dependency between them.
//
// A page beyond the last one returns an empty list with a correct
// pagination block; clamping is the caller's concern.
func (s *Service) Query(ctx context.Context, f domain.FilterSet, p domain.PageRequest) (*domain.ResultEnvelope, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PerPage == 0 {
		p.PerPage = domain.DefaultPerPage
	}
	if p.Page < 1 {
		return nil, &domain.InvalidPageRequest{Field: "page", Value: p.Page}
	}
	if p.PerPage < 1 || p.PerPage > domain.MaxPerPage {
		return nil, &domain.InvalidPageRequest{Field: "per_page", Value: p.PerPage}
	}

	totalCount, err := s.Repo.Count(ctx, f)
	if err != nil {
		return nil, &domain.QueryExecutionError{Op: "count inspections", Err: err}
	}

	rows, err := s.Repo.Page(ctx, f, p)
	if err != nil {
		return nil, &domain.QueryExecutionError{Op: "page inspections", Err: err}
	}
	if rows == nil {
		rows = []*domain.Inspection{}
	}

	ok, ko, err := s.Repo.Summary(ctx, f)
	if err != nil {
		return nil, &domain.QueryExecutionError{Op: "summarize inspections", Err: err}
	}

	total, err := s.Repo.Total(ctx)
	if err != nil {
		return nil, &domain.QueryExecutionError{Op: "total inspections", Err: err}
	}

	return &domain.ResultEnvelope{
		Inspections: rows,
		Pagination: domain.Pagination{
			Page:       p.Page,
			PerPage:    p.PerPage,
			TotalCount: totalCount,
			TotalPages: domain.TotalPages(totalCount, p.PerPage),
		},
		Stats: domain.Stats{
			Total:    total,
			Filtered: totalCount,
			OKCount:  ok,
			KOCount:  ko,
		},
	}, nil
}

// DefectTypes lists the distinct defect types for the filter-options
// endpoint.
func (s *Service) DefectTypes(ctx context.Context) ([]string, error) {
	types, err := s.Repo.DefectTypes(ctx)
	if err != nil {
		return nil, &domain.QueryExecutionError{Op: "list defect types", Err: err}
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}
