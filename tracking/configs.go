package tracking

import (
	"fmt"
	"os"
)

// Backend selects the tracking store implementation.
type Backend string

const (
	// BackendMemory keeps everything in process memory.
	BackendMemory Backend = "memory"

	// BackendPostgres stores run metadata in Postgres and artifact
	// payloads in MinIO.
	BackendPostgres Backend = "postgres"
)

// Config holds tracking store configuration.
type Config struct {
	// Backend is "memory" or "postgres".
	Backend Backend

	// ExperimentName is the default experiment for pipeline runs.
	ExperimentName string

	Postgres PostgresConnection
	Minio    MinioConnection
}

// PostgresConnection contains the run metadata database connection details.
type PostgresConnection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	SSLMode  string
}

// MinioConnection contains the artifact object-store connection details.
type MinioConnection struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// NewConfig reads tracking configuration from environment variables.
//
// Variables:
//   - TRACKING_BACKEND ("memory" or "postgres", default "memory")
//   - TRACKING_EXPERIMENT (default "talent-matching")
//   - TRACKING_PG_HOST, TRACKING_PG_PORT, TRACKING_PG_USER,
//     TRACKING_PG_PASSWORD, TRACKING_PG_DBNAME, TRACKING_PG_SSLMODE
//   - TRACKING_MINIO_ENDPOINT, TRACKING_MINIO_ACCESS_KEY,
//     TRACKING_MINIO_SECRET_KEY, TRACKING_MINIO_BUCKET,
//     TRACKING_MINIO_USE_SSL ("true" enables TLS)
func NewConfig() Config {
	backend := Backend(os.Getenv("TRACKING_BACKEND"))
	if backend == "" {
		backend = BackendMemory
	}

	experiment := os.Getenv("TRACKING_EXPERIMENT")
	if experiment == "" {
		experiment = "talent-matching"
	}

	return Config{
		Backend:        backend,
		ExperimentName: experiment,
		Postgres: PostgresConnection{
			Host:     envOr("TRACKING_PG_HOST", "localhost"),
			Port:     envOr("TRACKING_PG_PORT", "5432"),
			User:     os.Getenv("TRACKING_PG_USER"),
			Password: os.Getenv("TRACKING_PG_PASSWORD"),
			DbName:   envOr("TRACKING_PG_DBNAME", "tracking"),
			SSLMode:  envOr("TRACKING_PG_SSLMODE", "disable"),
		},
		Minio: MinioConnection{
			Endpoint:        os.Getenv("TRACKING_MINIO_ENDPOINT"),
			AccessKeyID:     os.Getenv("TRACKING_MINIO_ACCESS_KEY"),
			SecretAccessKey: os.Getenv("TRACKING_MINIO_SECRET_KEY"),
			BucketName:      envOr("TRACKING_MINIO_BUCKET", "artifacts"),
			UseSSL:          os.Getenv("TRACKING_MINIO_USE_SSL") == "true",
		},
	}
}

// Validate ensures the selected backend has the fields it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendPostgres:
		if c.Postgres.User == "" {
			return fmt.Errorf("tracking: missing TRACKING_PG_USER")
		}
		if c.Minio.Endpoint == "" {
			return fmt.Errorf("tracking: missing TRACKING_MINIO_ENDPOINT")
		}
		if c.Minio.AccessKeyID == "" || c.Minio.SecretAccessKey == "" {
			return fmt.Errorf("tracking: missing MinIO credentials")
		}
		return nil
	default:
		return fmt.Errorf("tracking: unknown backend %q", c.Backend)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
