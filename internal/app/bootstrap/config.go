// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for LabHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_secret, etc.
//   - Environment variables: LABHUB_MONGO_URI, LABHUB_AUTH_SECRET, etc.
//   - Command-line flags: --mongo_uri, --auth_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "labhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer-token auth
	{Name: "auth_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer-token signing secret (must be strong in production)"},
	{Name: "token_ttl", Default: "0s", Desc: "Bearer-token lifetime (0s means tokens do not expire)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "labhub/", Desc: "S3 key prefix"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "Custom S3 endpoint (for MinIO and other S3-compatible stores)"},

	// Activity logging
	{Name: "activity_log", Default: "all", Desc: "Activity logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LABHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthSecret: appValues.String("auth_secret"),
		TokenTTL:   appValues.Duration("token_ttl", 0),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		StorageS3Region:   appValues.String("storage_s3_region"),
		StorageS3Bucket:   appValues.String("storage_s3_bucket"),
		StorageS3Prefix:   appValues.String("storage_s3_prefix"),
		StorageS3Endpoint: appValues.String("storage_s3_endpoint"),

		ActivityLog: appValues.String("activity_log"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// LabHub validates the MongoDB URI format and the storage/logging mode
// enums to catch configuration errors before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "local", "s3", "memory":
	default:
		return fmt.Errorf("storage_type must be 'local', 's3', or 'memory', got %q", appCfg.StorageType)
	}
	if appCfg.StorageType == "s3" && (appCfg.StorageS3Region == "" || appCfg.StorageS3Bucket == "") {
		return fmt.Errorf("storage_type 's3' requires storage_s3_region and storage_s3_bucket")
	}

	switch appCfg.ActivityLog {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("activity_log must be 'all', 'db', 'log', or 'off', got %q", appCfg.ActivityLog)
	}

	if coreCfg.Env == "prod" && appCfg.AuthSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("auth_secret must be changed from the development default in production")
	}

	return nil
}
