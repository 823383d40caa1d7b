package postgres

import (
	"context"

	"github.com/lib/pq"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
)

type FactoryRepository struct {
	sess *db.Session
}

func NewFactoryRepository(sess *db.Session) *FactoryRepository {
	return &FactoryRepository{sess: sess}
}

// List all factories. Cameras are a native text[] column in postgres.
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
		if err := rows.Scan(&f.FactoryID, &f.Region, pq.Array(&f.Cameras)); err != nil {
			return nil, err
		}
		if f.Cameras == nil {
			f.Cameras = []string{}
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
