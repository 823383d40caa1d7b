package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
	appfactories "github.com/databricks-chaima/appsOPM2025/internal/application/factories"
	appimages "github.com/databricks-chaima/appsOPM2025/internal/application/images"
	appinspections "github.com/databricks-chaima/appsOPM2025/internal/application/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/config"
	domfactories "github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	dominspections "github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/db"
	mysqlp "github.com/databricks-chaima/appsOPM2025/internal/infra/db/mysql"
	postgresp "github.com/databricks-chaima/appsOPM2025/internal/infra/db/postgres"
	sqlitep "github.com/databricks-chaima/appsOPM2025/internal/infra/db/sqlite"
	"github.com/databricks-chaima/appsOPM2025/internal/infra/httpserver"
	minioStore "github.com/databricks-chaima/appsOPM2025/internal/infra/storage"
	"github.com/databricks-chaima/appsOPM2025/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	clock := application.SystemClock{}

	// row store session + repositories, by configured driver
	sess, inspectionRepo, factoryRepo, err := openRowStore(cfg, clock)
	if err != nil {
		log.Fatalf("row store init error: %v", err)
	}
	defer sess.Close()

	// blob store
	store, err := minioStore.New(ctx, minioStore.Options{
		Endpoint:      cfg.Blob.Endpoint,
		Region:        cfg.Blob.Region,
		Bucket:        cfg.Blob.BucketName,
		AccessKey:     cfg.Blob.AccessKey,
		SecretKey:     cfg.Blob.SecretKey,
		AllowedPrefix: cfg.Blob.AllowedPrefix,
		UseSSL:        cfg.Blob.UseSSL,
	}, clock)
	if err != nil {
		log.Fatalf("blob store init error: %v", err)
	}

	// services
	inspectionsSvc := appinspections.NewService(inspectionRepo)
	factoriesSvc := appfactories.NewService(factoryRepo)
	coordinator := appimages.NewCoordinator(store, cfg.Fetch.MaxConcurrent)

	mux := httpserver.NewRouter(
		inspectionsSvc,
		factoriesSvc,
		coordinator,
		cfg.PerItemTimeout(),
		map[string]middleware.HealthChecker{
			"database": sess,
			"storage":  store,
		},
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func openRowStore(cfg *config.Config, clock application.Clock) (*db.Session, dominspections.Repository, domfactories.Repository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		sess := postgresp.NewSession(
			cfg.PostgresDSN,
			postgresp.StaticToken(cfg.Database.Password),
			cfg.SessionMaxAge(),
			clock,
		)
		return sess, postgresp.NewInspectionRepository(sess), postgresp.NewFactoryRepository(sess), nil
	case "mysql":
		sess := mysqlp.NewSession(cfg.MySQLDSN(), cfg.SessionMaxAge(), clock)
		return sess, mysqlp.NewInspectionRepository(sess), mysqlp.NewFactoryRepository(sess), nil
	case "sqlite":
		sess := sqlitep.NewSession(cfg.Database.Path, cfg.SessionMaxAge(), clock)
		return sess, sqlitep.NewInspectionRepository(sess), sqlitep.NewFactoryRepository(sess), nil
	}
	return nil, nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
}
