// Seeds the configured row store with demo factories and inspection
// records so the dashboard has something to show locally.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/databricks-chaima/appsOPM2025/internal/config"
	"github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	"github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	mysqlp "github.com/databricks-chaima/appsOPM2025/internal/infra/db/mysql"
	postgresp "github.com/databricks-chaima/appsOPM2025/internal/infra/db/postgres"
	sqlitep "github.com/databricks-chaima/appsOPM2025/internal/infra/db/sqlite"
	"github.com/databricks-chaima/appsOPM2025/internal/mockdata"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	records := flag.Int("records", 500, "number of inspection records")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *configPath == "config.yaml" {
		*configPath = v
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	conn, migrate, err := open(ctx, cfg)
	if err != nil {
		log.Fatalf("connect error: %v", err)
	}
	defer conn.Close()

	if err := migrate(ctx, conn); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	batch := uuid.NewString()
	rng := rand.New(rand.NewSource(*seed))
	facts := mockdata.Factories()
	records2 := mockdata.Generate(rng, *records, time.Now().UTC(), cfg.Blob.AllowedPrefix)

	if err := insertFactories(ctx, conn, cfg.Database.Driver, facts); err != nil {
		log.Fatalf("insert factories error: %v", err)
	}
	if err := insertInspections(ctx, conn, cfg.Database.Driver, records2); err != nil {
		log.Fatalf("insert inspections error: %v", err)
	}

	log.Printf("seed batch %s done: %d factories, %d inspections", batch, len(facts), len(records2))
}

type migrateFunc func(ctx context.Context, conn *sql.DB) error

func open(ctx context.Context, cfg *config.Config) (*sql.DB, migrateFunc, error) {
	switch cfg.Database.Driver {
	case "postgres":
		conn, err := postgresp.Connect(ctx, cfg.PostgresDSN(cfg.Database.Password))
		return conn, postgresp.Migrate, err
	case "mysql":
		conn, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		return conn, mysqlp.Migrate, err
	case "sqlite":
		conn, err := sqlitep.Open(ctx, cfg.Database.Path)
		return conn, sqlitep.Migrate, err
	}
	return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
}

func insertFactories(ctx context.Context, conn *sql.DB, driver string, facts []*factories.Factory) error {
	var q string
	switch driver {
	case "postgres":
		q = `INSERT INTO factories (factory_id, region, cameras) VALUES ($1, $2, $3)
		     ON CONFLICT (factory_id) DO NOTHING`
	case "mysql":
		q = `INSERT IGNORE INTO factories (factory_id, region, cameras) VALUES (?, ?, ?)`
	default:
		q = `INSERT OR IGNORE INTO factories (factory_id, region, cameras) VALUES (?, ?, ?)`
	}

	for _, f := range facts {
		var cams any = strings.Join(f.Cameras, ",")
		if driver == "postgres" {
			cams = pq.Array(f.Cameras)
		}
		if _, err := conn.ExecContext(ctx, q, f.FactoryID, f.Region, cams); err != nil {
			return err
		}
	}
	return nil
}

func insertInspections(ctx context.Context, conn *sql.DB, driver string, records []*inspections.Inspection) error {
	cols := `(inspection_id, factory_id, camera_id, timestamp, image_path,
	          prediction, confidence_score, defect_type, inference_time_ms,
	          model_version, date)`

	var q string
	switch driver {
	case "postgres":
		q = `INSERT INTO inspections ` + cols + `
		     VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		     ON CONFLICT (inspection_id) DO NOTHING`
	case "mysql":
		q = `INSERT IGNORE INTO inspections ` + cols + ` VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	default:
		q = `INSERT OR IGNORE INTO inspections ` + cols + ` VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	}

	stmt, err := conn.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ins := range records {
		var defect any
		if ins.DefectType != nil {
			defect = *ins.DefectType
		}
		if _, err := stmt.ExecContext(ctx,
			ins.InspectionID, ins.FactoryID, ins.CameraID, ins.Timestamp.Time,
			ins.ImagePath, string(ins.Prediction), ins.ConfidenceScore, defect,
			ins.InferenceTimeMS, ins.ModelVersion, ins.Date,
		); err != nil {
			return err
		}
	}
	return nil
}
