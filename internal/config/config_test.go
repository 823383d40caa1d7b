package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fullConfig = `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: qc_reader
  password: from-yaml
  name: inspections
  sslMode: disable
  sessionMaxAgeMinutes: 30
blob:
  endpoint: minio.internal:9000
  accessKey: ak
  secretKey: sk
  bucketName: qc-images
  region: eu-west-1
  useSSL: true
  allowedPrefix: images/
fetch:
  perItemTimeoutSeconds: 5
  maxConcurrent: 16
`

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, 30*time.Minute, cfg.SessionMaxAge())
	require.Equal(t, "qc-images", cfg.Blob.BucketName)
	require.Equal(t, "images/", cfg.Blob.AllowedPrefix)
	require.True(t, cfg.Blob.UseSSL)
	require.Equal(t, 5*time.Second, cfg.PerItemTimeout())
	require.Equal(t, 16, cfg.Fetch.MaxConcurrent)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  driver: sqlite\n  path: qc.db\n"))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 59*time.Minute, cfg.SessionMaxAge())
	require.Equal(t, "require", cfg.Database.SSLMode)
	require.Equal(t, 10*time.Second, cfg.PerItemTimeout())
	require.Zero(t, cfg.Fetch.MaxConcurrent)
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("BLOB_ACCESS_KEY", "env-ak")
	t.Setenv("BLOB_SECRET_KEY", "env-sk")

	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "from-env", cfg.Database.Password)
	require.Equal(t, "env-ak", cfg.Blob.AccessKey)
	require.Equal(t, "env-sk", cfg.Blob.SecretKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPostgresDSNUsesCallerPassword(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	dsn := cfg.PostgresDSN("rotated-token")
	require.Equal(t,
		"host=db.internal port=5432 user=qc_reader password=rotated-token dbname=inspections sslmode=disable connect_timeout=30",
		dsn)
}

func TestMySQLDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	require.Equal(t,
		"qc_reader:from-yaml@tcp(db.internal:5432)/inspections?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
}
