// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level); AppConfig is everything specific to LabHub. Values come from
// environment variables (LABHUB_*), config files, or flags, loaded in
// LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token auth
	AuthSecret string        // HMAC signing secret (must be strong in production)
	TokenTTL   time.Duration // zero means tokens do not expire

	// File storage configuration
	StorageType      string // "local", "s3", or "memory" (tests)
	StorageLocalPath string // local storage root (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region   string
	StorageS3Bucket   string
	StorageS3Prefix   string
	StorageS3Endpoint string // custom endpoint for S3-compatible stores

	// Activity logging: "all" (db+log), "db", "log", or "off"
	ActivityLog string
}
