package factories

import (
	"context"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	"github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
)

// Service lists the factory catalog for the region/factory/camera filter
// dropdowns.
type Service struct {
	Repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*domain.Factory, error) {
	fs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, &inspections.QueryExecutionError{Op: "list factories", Err: err}
	}
	if fs == nil {
		fs = []*domain.Factory{}
	}
	return fs, nil
}
