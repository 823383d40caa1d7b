package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appfactories "github.com/databricks-chaima/appsOPM2025/internal/application/factories"
	appimages "github.com/databricks-chaima/appsOPM2025/internal/application/images"
	appinspections "github.com/databricks-chaima/appsOPM2025/internal/application/inspections"
	domimages "github.com/databricks-chaima/appsOPM2025/internal/domain/images"
	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/middleware"
)

type Router struct {
	inspections  *appinspections.Service
	factories    *appfactories.Service
	images       *appimages.Coordinator
	fetchTimeout time.Duration
}

func NewRouter(
	inspectionsSvc *appinspections.Service,
	factoriesSvc *appfactories.Service,
	coordinator *appimages.Coordinator,
	fetchTimeout time.Duration,
	checkers map[string]middleware.HealthChecker,
) http.Handler {
	r := &Router{
		inspections:  inspectionsSvc,
		factories:    factoriesSvc,
		images:       coordinator,
		fetchTimeout: fetchTimeout,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/factories", r.wrap(r.handleFactories))
		rt.Get("/filter-options", r.wrap(r.handleFilterOptions))
		rt.Get("/inspections", r.wrap(r.handleInspections))
		rt.With(middleware.RateLimitMiddleware(60, 20)).
			Get("/image", r.wrap(r.handleImage))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps the domain error taxonomy onto HTTP statuses. Filter, page and
// path errors are user-correctable 4xx; a row store failure is a 5xx and is
// never retried here.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var filterErr *domain.InvalidFilterError
		var pageErr *domain.InvalidPageRequest
		var pathErr *domimages.ValidationError
		switch {
		case errors.As(err, &filterErr), errors.As(err, &pageErr), errors.As(err, &pathErr):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// GET /api/factories
func (rt *Router) handleFactories(w http.ResponseWriter, req *http.Request) error {
	list, err := rt.factories.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"factories": list})
}

// GET /api/filter-options
func (rt *Router) handleFilterOptions(w http.ResponseWriter, req *http.Request) error {
	types, err := rt.inspections.DefectTypes(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"defect_types": types})
}

// GET /api/inspections?region&factory&camera&prediction&defect_type&search&date_from&date_to&page&per_page
func (rt *Router) handleInspections(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()

	filters, err := domain.NormalizeFilters(domain.RawFilters{
		Region:     q.Get("region"),
		Factory:    q.Get("factory"),
		Camera:     q.Get("camera"),
		Prediction: q.Get("prediction"),
		DefectType: q.Get("defect_type"),
		Search:     q.Get("search"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
	})
	if err != nil {
		return err
	}

	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		return err
	}
	perPage, err := intParam(q.Get("per_page"), "per_page")
	if err != nil {
		return err
	}

	envelope, err := rt.inspections.Query(req.Context(), filters, domain.PageRequest{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, envelope)
}

// GET /api/image?path=<volume path>
func (rt *Router) handleImage(w http.ResponseWriter, req *http.Request) error {
	path := req.URL.Query().Get("path")
	if path == "" {
		return &domimages.ValidationError{Path: path, Reason: "path is required"}
	}

	result := rt.images.FetchAll(req.Context(), []string{path}, rt.fetchTimeout)[0]
	switch result.State {
	case domimages.StateSucceeded:
		middleware.IncrementImagesFetched()
		w.Header().Set("Content-Type", domimages.ContentTypeForPath(path))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Accept-Ranges", "bytes")
		_, err := w.Write(result.Bytes)
		return err
	case domimages.StateTimedOut:
		middleware.IncrementImagesTimedOut()
		http.Error(w, "image fetch timed out", http.StatusInternalServerError)
		return nil
	default:
		middleware.IncrementImagesFailed()
		return result.Err
	}
}

func intParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InvalidPageRequest{Field: field, Value: -1}
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
