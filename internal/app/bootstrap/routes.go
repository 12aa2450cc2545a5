// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	activityfeature "github.com/dalemusser/labhub/internal/app/features/activity"
	documentsfeature "github.com/dalemusser/labhub/internal/app/features/documents"
	groupsfeature "github.com/dalemusser/labhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/labhub/internal/app/features/health"
	labsfeature "github.com/dalemusser/labhub/internal/app/features/labs"
	loginfeature "github.com/dalemusser/labhub/internal/app/features/login"
	recordsfeature "github.com/dalemusser/labhub/internal/app/features/records"
	usersfeature "github.com/dalemusser/labhub/internal/app/features/users"
	activitystore "github.com/dalemusser/labhub/internal/app/store/activity"
	"github.com/dalemusser/labhub/internal/app/system/activitylog"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/app/system/blobstore"
	"github.com/dalemusser/labhub/internal/app/system/metrics"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the blob store and token
// manager from app config, applies the metrics and token middleware, and
// mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokenMgr := auth.NewManager(appCfg.AuthSecret, appCfg.TokenTTL, logger)

	blobs, err := buildBlobStore(appCfg)
	if err != nil {
		logger.Error("blob store init failed", zap.Error(err))
		return nil, err
	}

	actLog := activitylog.New(
		activitystore.New(deps.MongoDatabase),
		logger,
		activitylog.Mode(appCfg.ActivityLog),
	)

	r := chi.NewRouter()

	// Request metrics wrap everything, including auth failures.
	r.Use(metrics.InstrumentHandler)

	// Global auth middleware: loads the bearer token's user into context
	// so handlers can use auth.CurrentUser(r).
	r.Use(tokenMgr.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", metrics.Handler())

	// Locally stored uploads are served straight from disk.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, logger, tokenMgr, actLog)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	// Directory hierarchy
	labsHandler := labsfeature.NewHandler(deps.MongoDatabase, logger, blobs, actLog)
	r.Mount("/labs", labsfeature.Routes(labsHandler))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger, blobs, actLog)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger, blobs, actLog)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Standalone work-record collections, one mount per kind.
	recordsHandler := recordsfeature.NewHandler(deps.MongoDatabase, logger, actLog)
	for _, kind := range models.RecordKinds {
		r.Mount("/"+kind.Collection(), recordsfeature.Routes(recordsHandler, kind))
	}

	documentsHandler := documentsfeature.NewHandler(deps.MongoDatabase, logger, blobs)
	r.Mount("/documents", documentsfeature.Routes(documentsHandler))

	activityHandler := activityfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/activity", activityfeature.Routes(activityHandler))

	return r, nil
}

// buildBlobStore selects the storage backend from app config.
func buildBlobStore(appCfg AppConfig) (blobstore.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return blobstore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
	case "s3":
		return blobstore.NewS3(context.Background(), blobstore.S3Config{
			Region:   appCfg.StorageS3Region,
			Bucket:   appCfg.StorageS3Bucket,
			Prefix:   appCfg.StorageS3Prefix,
			Endpoint: appCfg.StorageS3Endpoint,
		})
	case "memory":
		return blobstore.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
}
