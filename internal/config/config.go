package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		// Driver selects the row store adapter: postgres | mysql | sqlite.
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
		// Path is the database file for the sqlite driver.
		Path string `yaml:"path"`
		// SessionMaxAgeMinutes bounds how long a connection is reused
		// before it is proactively reopened.
		SessionMaxAgeMinutes int `yaml:"sessionMaxAgeMinutes"`
	} `yaml:"database"`

	Blob struct {
		Endpoint      string `yaml:"endpoint"`
		AccessKey     string `yaml:"accessKey"`
		SecretKey     string `yaml:"secretKey"`
		BucketName    string `yaml:"bucketName"`
		Region        string `yaml:"region"`
		UseSSL        bool   `yaml:"useSSL"`
		AllowedPrefix string `yaml:"allowedPrefix"`
	} `yaml:"blob"`

	Fetch struct {
		PerItemTimeoutSeconds int `yaml:"perItemTimeoutSeconds"`
		// MaxConcurrent caps image fan-out; 0 means unbounded.
		MaxConcurrent int `yaml:"maxConcurrent"`
	} `yaml:"fetch"`
}

// Load reads config.yaml, after loading a .env file if one is present.
// Secrets can be overridden from the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("BLOB_ACCESS_KEY"); v != "" {
		c.Blob.AccessKey = v
	}
	if v := os.Getenv("BLOB_SECRET_KEY"); v != "" {
		c.Blob.SecretKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.SessionMaxAgeMinutes == 0 {
		c.Database.SessionMaxAgeMinutes = 59
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.Fetch.PerItemTimeoutSeconds == 0 {
		c.Fetch.PerItemTimeoutSeconds = 10
	}
}

// PostgresDSN builds the lakebase-style connection string. The password is
// a parameter because token-based sessions re-derive it on every refresh.
func (c *Config) PostgresDSN(password string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=30",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// MySQLDSN builds the warehouse-style connection string.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.Database.SessionMaxAgeMinutes) * time.Minute
}

func (c *Config) PerItemTimeout() time.Duration {
	return time.Duration(c.Fetch.PerItemTimeoutSeconds) * time.Second
}
