package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appfactories "github.com/databricks-chaima/appsOPM2025/internal/application/factories"
	appimages "github.com/databricks-chaima/appsOPM2025/internal/application/images"
	appinspections "github.com/databricks-chaima/appsOPM2025/internal/application/inspections"
	domfactories "github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	domimages "github.com/databricks-chaima/appsOPM2025/internal/domain/images"
	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/middleware"
)

type stubRepo struct {
	records []*domain.Inspection
	err     error

	lastFilter domain.FilterSet
	lastPage   domain.PageRequest
}

func (r *stubRepo) Count(_ context.Context, f domain.FilterSet) (int, error) {
	r.lastFilter = f
	return len(r.records), r.err
}

func (r *stubRepo) Page(_ context.Context, _ domain.FilterSet, p domain.PageRequest) ([]*domain.Inspection, error) {
	r.lastPage = p
	return r.records, r.err
}

func (r *stubRepo) Summary(context.Context, domain.FilterSet) (int, int, error) {
	return len(r.records), 0, r.err
}

func (r *stubRepo) Total(context.Context) (int, error) {
	return len(r.records), r.err
}

func (r *stubRepo) DefectTypes(context.Context) ([]string, error) {
	return []string{"crack", "scratch"}, r.err
}

type stubFactories struct{ err error }

func (s *stubFactories) List(context.Context) ([]*domfactories.Factory, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domfactories.Factory{
		{FactoryID: "WUH-01", Region: "Hubei", Cameras: []string{"CAM-01", "CAM-02"}},
	}, nil
}

type stubImages struct {
	bytes map[string][]byte
	err   error
	slow  bool
}

func (s *stubImages) Validate(path string) error {
	if path == "" || path[0] == '/' {
		return &domimages.ValidationError{Path: path, Reason: "path must start with images/"}
	}
	return nil
}

func (s *stubImages) Fetch(ctx context.Context, path string) ([]byte, error) {
	if s.slow {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.bytes[path], nil
}

func newTestRouter(repo *stubRepo, facts *stubFactories, store *stubImages) http.Handler {
	return NewRouter(
		appinspections.NewService(repo),
		appfactories.NewService(facts),
		appimages.NewCoordinator(store, 4),
		100*time.Millisecond,
		map[string]middleware.HealthChecker{
			"database": middleware.CheckerFunc(func(context.Context) error { return nil }),
		},
	)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	h := NewRouter(
		appinspections.NewService(&stubRepo{}),
		appfactories.NewService(&stubFactories{}),
		appimages.NewCoordinator(&stubImages{}, 4),
		100*time.Millisecond,
		map[string]middleware.HealthChecker{
			"database": middleware.CheckerFunc(func(context.Context) error {
				return errors.New("connection refused")
			}),
		},
	)
	rec := get(t, h, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestFactoriesEndpoint(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/api/factories")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Factories []struct {
			FactoryID string   `json:"factory_id"`
			Region    string   `json:"region"`
			Cameras   []string `json:"cameras"`
		} `json:"factories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Factories, 1)
	require.Equal(t, "WUH-01", body.Factories[0].FactoryID)
	require.Equal(t, []string{"CAM-01", "CAM-02"}, body.Factories[0].Cameras)
}

func TestFilterOptionsEndpoint(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/api/filter-options")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		DefectTypes []string `json:"defect_types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"crack", "scratch"}, body.DefectTypes)
}

func TestInspectionsEndpoint(t *testing.T) {
	repo := &stubRepo{records: []*domain.Inspection{{
		InspectionID: "INSP-0001",
		FactoryID:    "WUH-01",
		CameraID:     "CAM-01",
		Timestamp:    domain.Timestamp{Time: time.Date(2025, 6, 10, 15, 4, 5, 0, time.UTC)},
		ImagePath:    "images/photo1.jpg",
		Prediction:   domain.PredictionOK,
		Date:         "2025-06-10",
	}}}
	h := newTestRouter(repo, &stubFactories{}, &stubImages{})

	rec := get(t, h, "/api/inspections?factory=WUH-01&region=All&per_page=5&page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "WUH-01", repo.lastFilter.Factory)
	require.Empty(t, repo.lastFilter.Region, `"All" means no region constraint`)
	require.Equal(t, domain.PageRequest{Page: 2, PerPage: 5}, repo.lastPage)

	var body struct {
		Records []struct {
			InspectionID string `json:"inspection_id"`
			Timestamp    string `json:"timestamp"`
		} `json:"inspections"`
		Pagination struct {
			Page    int `json:"page"`
			PerPage int `json:"per_page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Records, 1)
	require.Equal(t, "INSP-0001", body.Records[0].InspectionID)
	require.Equal(t, "2025-06-10 15:04:05", body.Records[0].Timestamp)
	require.Equal(t, 2, body.Pagination.Page)
	require.Equal(t, 5, body.Pagination.PerPage)
}

func TestInspectionsEndpointBadRequests(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})

	for _, target := range []string{
		"/api/inspections?date_from=10-06-2025",
		"/api/inspections?date_to=not-a-date",
		"/api/inspections?page=-1",
		"/api/inspections?page=abc",
		"/api/inspections?per_page=101",
		"/api/inspections?per_page=-1",
	} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestInspectionsEndpointStoreFailure(t *testing.T) {
	h := newTestRouter(&stubRepo{err: errors.New("warehouse unavailable")}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/api/inspections")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestImageEndpoint(t *testing.T) {
	store := &stubImages{bytes: map[string][]byte{"images/photo1.jpg": []byte("jpegdata")}}
	h := newTestRouter(&stubRepo{}, &stubFactories{}, store)

	rec := get(t, h, "/api/image?path=images/photo1.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	require.Equal(t, "jpegdata", rec.Body.String())
}

func TestImageEndpointMissingPath(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/api/image")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageEndpointInvalidPath(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{})
	rec := get(t, h, "/api/image?path=/etc/passwd")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageEndpointTimeout(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{slow: true})
	rec := get(t, h, "/api/image?path=images/photo1.jpg")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "timed out")
}

func TestImageEndpointFetchFailure(t *testing.T) {
	h := newTestRouter(&stubRepo{}, &stubFactories{}, &stubImages{err: errors.New("object not found")})
	rec := get(t, h, "/api/image?path=images/missing.jpg")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
