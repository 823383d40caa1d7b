package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

type fixtureRow struct {
	id, factory, camera string
	ts                  time.Time
	prediction          string
	confidence          float64
	defect              any
}

func newTestSession(t *testing.T) *db.Session {
	t.Helper()
	sess := NewSession(filepath.Join(t.TempDir(), "qc.db"), time.Hour, nil)
	t.Cleanup(func() { sess.Close() })

	conn, err := sess.DB(context.Background())
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), conn))
	return sess
}

func seedFixtures(t *testing.T, sess *db.Session) {
	t.Helper()
	ctx := context.Background()
	conn, err := sess.DB(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx,
		`INSERT INTO factories (factory_id, region, cameras) VALUES
		 ('WUH-01', 'Hubei', 'CAM-01,CAM-02'),
		 ('KYO-01', 'Kansai', 'CAM-01')`)
	require.NoError(t, err)

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rows := []fixtureRow{
		{"INSP-0001", "WUH-01", "CAM-01", base.Add(3 * time.Hour), "OK", 0.97, nil},
		{"INSP-0002", "WUH-01", "CAM-02", base.Add(2 * time.Hour), "KO", 0.81, "scratch"},
		// Tie on timestamp with INSP-0004; id breaks the tie.
		{"INSP-0004", "KYO-01", "CAM-01", base.Add(time.Hour), "OK", 0.95, nil},
		{"INSP-0003", "KYO-01", "CAM-01", base.Add(time.Hour), "KO", 0.77, "dent"},
		{"INSP-100%A", "WUH-01", "CAM-01", base.AddDate(0, 0, -3), "OK", 0.93, nil},
	}
	for _, r := range rows {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO inspections
			 (inspection_id, factory_id, camera_id, timestamp, image_path, prediction,
			  confidence_score, defect_type, inference_time_ms, model_version, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.id, r.factory, r.camera, r.ts, "images/photo1.jpg", r.prediction,
			r.confidence, r.defect, 120, "v2.3.1", r.ts.Format(time.DateOnly))
		require.NoError(t, err)
	}
}

func TestCount(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)
	ctx := context.Background()

	n, err := repo.Count(ctx, domain.FilterSet{})
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = repo.Count(ctx, domain.FilterSet{Factory: "KYO-01"})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = repo.Count(ctx, domain.FilterSet{Region: "Hubei"})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = repo.Count(ctx, domain.FilterSet{Prediction: "KO", Region: "Kansai"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestPageOrderingAndOffset(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)
	ctx := context.Background()

	page, err := repo.Page(ctx, domain.FilterSet{}, domain.PageRequest{Page: 1, PerPage: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	require.Equal(t, "INSP-0001", page[0].InspectionID)
	require.Equal(t, "INSP-0002", page[1].InspectionID)
	// Equal timestamps fall back to ascending id.
	require.Equal(t, "INSP-0003", page[2].InspectionID)

	page, err = repo.Page(ctx, domain.FilterSet{}, domain.PageRequest{Page: 2, PerPage: 3})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "INSP-0004", page[0].InspectionID)
	require.Equal(t, "INSP-100%A", page[1].InspectionID)
}

func TestPageScansFields(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)

	page, err := repo.Page(context.Background(),
		domain.FilterSet{Search: "0002"}, domain.PageRequest{Page: 1, PerPage: 8})
	require.NoError(t, err)
	require.Len(t, page, 1)

	ins := page[0]
	require.Equal(t, "INSP-0002", ins.InspectionID)
	require.Equal(t, "WUH-01", ins.FactoryID)
	require.Equal(t, "CAM-02", ins.CameraID)
	require.Equal(t, domain.PredictionKO, ins.Prediction)
	require.InDelta(t, 0.81, ins.ConfidenceScore, 1e-9)
	require.NotNil(t, ins.DefectType)
	require.Equal(t, "scratch", *ins.DefectType)
	require.Equal(t, int64(120), ins.InferenceTimeMS)
	require.Equal(t, "2025-06-10", ins.Date)
	require.Equal(t, "images/photo1.jpg", ins.ImagePath)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)
	ctx := context.Background()

	// "%" in the search term must not match everything.
	n, err := repo.Count(ctx, domain.FilterSet{Search: "100%"})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repo.Count(ctx, domain.FilterSet{Search: "0_0"})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDateRangeFilter(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)

	n, err := repo.Count(context.Background(),
		domain.FilterSet{DateFrom: "2025-06-10", DateTo: "2025-06-10"})
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestSummary(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)
	ctx := context.Background()

	ok, ko, err := repo.Summary(ctx, domain.FilterSet{})
	require.NoError(t, err)
	require.Equal(t, 3, ok)
	require.Equal(t, 2, ko)

	ok, ko, err = repo.Summary(ctx, domain.FilterSet{Region: "Kansai"})
	require.NoError(t, err)
	require.Equal(t, 1, ok)
	require.Equal(t, 1, ko)
}

func TestTotalIgnoresFilters(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)

	n, err := repo.Total(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestDefectTypes(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewInspectionRepository(sess)

	types, err := repo.DefectTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"dent", "scratch"}, types)
}

func TestFactoryList(t *testing.T) {
	sess := newTestSession(t)
	seedFixtures(t, sess)
	repo := NewFactoryRepository(sess)

	factories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, factories, 2)

	require.Equal(t, "KYO-01", factories[0].FactoryID)
	require.Equal(t, "Kansai", factories[0].Region)
	require.Equal(t, []string{"CAM-01"}, factories[0].Cameras)

	require.Equal(t, "WUH-01", factories[1].FactoryID)
	require.Equal(t, []string{"CAM-01", "CAM-02"}, factories[1].Cameras)
}
