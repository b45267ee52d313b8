package bootstrap

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-blob-backend/internal/collections"
	"hr-blob-backend/internal/documents"
	"hr-blob-backend/internal/shared/config"
	"hr-blob-backend/internal/shared/server"
	"hr-blob-backend/internal/shared/storage/blob"
	localstore "hr-blob-backend/internal/shared/storage/blob/local"
	s3store "hr-blob-backend/internal/shared/storage/blob/s3"
)

// App holds the shared dependencies behind the HTTP surface.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	Blob             blob.Store
	Collections      *collections.Store
	DocumentsService *documents.Service
	PeopleHandler    *collections.Handler
	WorkItemsHandler *collections.Handler
	AlertsHandler    *collections.Handler
	DocumentsHandler *documents.Handler
	Seeder           *collections.Seeder
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	collStore := &collections.Store{
		Blob:   store,
		Bucket: cfg.DataBucket,
	}

	docSvc := &documents.Service{
		Collections: collStore,
		Assets:      store,
		Bucket:      cfg.DocumentsBucket,
	}

	app := &App{
		Config:           cfg,
		Blob:             store,
		Collections:      collStore,
		DocumentsService: docSvc,
		PeopleHandler:    collections.NewHandler(collStore, collections.People),
		WorkItemsHandler: collections.NewHandler(collStore, collections.WorkItems),
		AlertsHandler:    collections.NewHandler(collStore, collections.Alerts),
		DocumentsHandler: documents.NewHandler(docSvc),
		Seeder: &collections.Seeder{
			Blob:   store,
			Bucket: cfg.DataBucket,
		},
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    app.Config,
		People:    app.PeopleHandler,
		WorkItems: app.WorkItemsHandler,
		Alerts:    app.AlertsHandler,
		Documents: app.DocumentsHandler,
		Seeder:    app.Seeder,
	})

	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicAssetBaseURL), nil
	}
}
