package bootstrap

import (
	"log/slog"

	"github.com/osse101/RecipeBOM_Go/internal/bom"
	"github.com/osse101/RecipeBOM_Go/internal/catalog"
	"github.com/osse101/RecipeBOM_Go/internal/config"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// Services bundles the application services built over one store
type Services struct {
	Catalog catalog.Service
	Engine  *bom.Engine
}

// InitializeServices wires the catalog service and the expansion engine.
// The engine reads through the service's graph so catalog writes invalidate
// whatever it has cached.
func InitializeServices(cfg *config.Config, store repository.Catalog) *Services {
	catalogSvc := catalog.NewService(store, catalog.Options{
		CacheSize: cfg.GraphCacheSize,
		CacheTTL:  cfg.GraphCacheTTL,
	})

	engine := bom.NewEngine(catalogSvc.Graph(), bom.Options{
		Strict:      cfg.BOMStrict,
		MaxDepth:    cfg.BOMMaxDepth,
		Parallelism: cfg.BOMParallelism,
	})

	opts := engine.Options()
	slog.Info(LogMsgServicesInitialized,
		"strict", opts.Strict,
		"max_depth", opts.MaxDepth,
		"parallelism", opts.Parallelism)

	return &Services{Catalog: catalogSvc, Engine: engine}
}
