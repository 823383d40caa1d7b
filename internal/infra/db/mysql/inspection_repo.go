package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

const inspectionColumns = `
i.inspection_id, i.factory_id, i.camera_id, i.timestamp, i.image_path,
i.prediction, i.confidence_score, i.defect_type, i.inference_time_ms,
i.model_version, i.date`

type InspectionRepository struct {
	sess *db.Session
}

func NewInspectionRepository(sess *db.Session) *InspectionRepository {
	return &InspectionRepository{sess: sess}
}

func (r *InspectionRepository) Count(ctx context.Context, f domain.FilterSet) (int, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return 0, err
	}

	join, where, args := db.BuildFilter(f, db.Question)
	q := "SELECT COUNT(*) FROM inspections i"
	if join != "" {
		q += " " + join
	}
	if where != "" {
		q += " WHERE " + where
	}

	var n int
	if err := conn.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *InspectionRepository) Page(ctx context.Context, f domain.FilterSet, p domain.PageRequest) ([]*domain.Inspection, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return nil, err
	}

	join, where, args := db.BuildFilter(f, db.Question)
	q := "SELECT " + inspectionColumns + " FROM inspections i"
	if join != "" {
		q += " " + join
	}
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY i.timestamp DESC, i.inspection_id ASC LIMIT ? OFFSET ?"
	args = append(args, p.PerPage, p.Offset())

	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Inspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

func (r *InspectionRepository) Summary(ctx context.Context, f domain.FilterSet) (int, int, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return 0, 0, err
	}

	join, where, args := db.BuildFilter(f, db.Question)
	q := `
SELECT COALESCE(SUM(CASE WHEN i.prediction = 'OK' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN i.prediction = 'KO' THEN 1 ELSE 0 END), 0)
FROM inspections i`
	if join != "" {
		q += " " + join
	}
	if where != "" {
		q += " WHERE " + where
	}

	var ok, ko int
	if err := conn.QueryRowContext(ctx, q, args...).Scan(&ok, &ko); err != nil {
		return 0, 0, err
	}
	return ok, ko, nil
}

func (r *InspectionRepository) Total(ctx context.Context) (int, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM inspections").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *InspectionRepository) DefectTypes(ctx context.Context) ([]string, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return nil, err
	}
	const q = `
SELECT DISTINCT defect_type FROM inspections
WHERE defect_type IS NOT NULL
ORDER BY defect_type`
	rows, err := conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var dt string
		if err := rows.Scan(&dt); err != nil {
			return nil, err
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}

func scanInspection(rows *sql.Rows) (*domain.Inspection, error) {
	var (
		ins    domain.Inspection
		ts     time.Time
		defect sql.NullString
		date   time.Time
	)
	if err := rows.Scan(
		&ins.InspectionID, &ins.FactoryID, &ins.CameraID, &ts, &ins.ImagePath,
		&ins.Prediction, &ins.ConfidenceScore, &defect, &ins.InferenceTimeMS,
		&ins.ModelVersion, &date,
	); err != nil {
		return nil, err
	}
	ins.Timestamp = domain.Timestamp{Time: ts}
	ins.Date = date.Format(time.DateOnly)
	if defect.Valid {
		ins.DefectType = &defect.String
	}
	return &ins, nil
}
