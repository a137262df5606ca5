// Package config loads server settings from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
)

// Blob backends
const (
	BlobLocal = "local"
	BlobGCS   = "gcs"
)

// Config holds every setting the server reads at startup
type Config struct {
	Port     string
	LogLevel slog.Level

	StoreBackend          string
	FirestoreProjectID    string
	GoogleCredentialsFile string
	DatabaseURL           string
	MongoURI              string
	MongoDB               string

	BlobBackend   string
	GCSBucket     string
	GCSURLMode    string
	UploadDir     string
	PublicBaseURL string

	AuthHMACSecret string
	AuthJWKSURL    string
	AuthIssuer     string
	AuthAudience   string

	CleanupOrphanedUploads bool
	RateLimitRequests      int
	RateLimitWindow        time.Duration
	CORSAllowedOrigins     []string
}

// Load reads the optional env files (".env" when none are given) and then the
// environment. Variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:                  getenv("APP_PORT", "8080"),
		StoreBackend:          strings.ToLower(getenv("STORE_BACKEND", StoreMemory)),
		FirestoreProjectID:    getenv("FIRESTORE_PROJECT_ID", ""),
		GoogleCredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", ""),
		DatabaseURL:           getenv("DATABASE_URL", ""),
		MongoURI:              getenv("MONGO_URI", ""),
		MongoDB:               getenv("MONGO_DB", "sightings"),
		BlobBackend:           strings.ToLower(getenv("BLOB_BACKEND", BlobLocal)),
		GCSBucket:             getenv("GCS_BUCKET", ""),
		GCSURLMode:            strings.ToLower(getenv("GCS_URL_MODE", "firebase")),
		UploadDir:             getenv("UPLOAD_DIR", "uploads"),
		AuthHMACSecret:        getenv("AUTH_HMAC_SECRET", ""),
		AuthJWKSURL:           getenv("AUTH_JWKS_URL", ""),
		AuthIssuer:            getenv("AUTH_ISSUER", ""),
		AuthAudience:          getenv("AUTH_AUDIENCE", ""),
	}
	cfg.PublicBaseURL = getenv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	var err error
	if err = cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.CleanupOrphanedUploads, err = strconv.ParseBool(getenv("CLEANUP_ORPHANED_UPLOADS", "false")); err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_ORPHANED_UPLOADS: %w", err)
	}
	if cfg.RateLimitRequests, err = strconv.Atoi(getenv("RATE_LIMIT_REQUESTS", "100")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(getenv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// Validate rejects settings the selected backends cannot start with
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case StoreMemory:
	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			errs = append(errs, errors.New("FIRESTORE_PROJECT_ID is required for the firestore backend"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	switch c.BlobBackend {
	case BlobLocal:
		if c.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is required for the local blob backend"))
		}
	case BlobGCS:
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for the gcs blob backend"))
		}
		if c.GCSURLMode != "firebase" && c.GCSURLMode != "public" {
			errs = append(errs, fmt.Errorf("unknown GCS_URL_MODE %q", c.GCSURLMode))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend))
	}

	if c.AuthHMACSecret == "" && c.AuthJWKSURL == "" {
		errs = append(errs, errors.New("one of AUTH_HMAC_SECRET or AUTH_JWKS_URL is required"))
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}

	return errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
