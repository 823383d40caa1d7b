package sqlite

import (
	"context"
	"strings"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

type FactoryRepository struct {
	sess *db.Session
}

func NewFactoryRepository(sess *db.Session) *FactoryRepository {
	return &FactoryRepository{sess: sess}
}

// List all factories. Cameras are stored comma-joined in sqlite.
func (r *FactoryRepository) List(ctx context.Context) ([]*domain.Factory, error) {
	conn, err := r.sess.DB(ctx)
	if err != nil {
		return nil, err
	}
	const q = `SELECT factory_id, region, cameras FROM factories ORDER BY factory_id`
	rows, err := conn.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Factory
	for rows.Next() {
		var f domain.Factory
		var cameras string
		if err := rows.Scan(&f.FactoryID, &f.Region, &cameras); err != nil {
			return nil, err
		}
		if cameras != "" {
			f.Cameras = strings.Split(cameras, ",")
		} else {
			f.Cameras = []string{}
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
