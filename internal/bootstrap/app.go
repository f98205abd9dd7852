package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/llm"
	openai "sales-assistant/internal/llm/openai"
	"sales-assistant/internal/menu"
	"sales-assistant/internal/recommendations"
	"sales-assistant/internal/services/health"
	"sales-assistant/internal/shared/config"
	"sales-assistant/internal/shared/server"
	"sales-assistant/internal/shared/server/middleware"
	"sales-assistant/internal/shared/storage/db"
	"sales-assistant/internal/shared/storage/object"
	localstore "sales-assistant/internal/shared/storage/object/local"
	miniostore "sales-assistant/internal/shared/storage/object/minio"
	s3store "sales-assistant/internal/shared/storage/object/s3"
	"sales-assistant/internal/shared/telemetry"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config                 config.Config
	Router                 *gin.Engine
	DB                     *sql.DB
	Store                  object.ObjectStore
	Analyzer               llm.Analyzer
	MenuRepo               menu.Repo
	ProductsRepo           recommendations.Repo
	MenuService            *menu.Service
	RecommendationsService *recommendations.Service
	MenuHandler            *menu.Handler
	RecommendationsHandler *recommendations.Handler
}

// Option overrides a dependency before services are built.
type Option func(*App)

// WithAnalyzer replaces the vision analyzer.
func WithAnalyzer(a llm.Analyzer) Option {
	return func(app *App) {
		app.Analyzer = a
	}
}

// WithStore replaces the object store.
func WithStore(s object.ObjectStore) Option {
	return func(app *App) {
		app.Store = s
	}
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	if app.Store == nil {
		store, err := buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Store = store
	}

	if app.Analyzer == nil {
		analyzer, err := buildAnalyzer(cfg)
		if err != nil {
			return nil, err
		}
		app.Analyzer = analyzer
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 app.Config,
		Health:                 health.NewService(pinger(app.DB), cfg.ObjectStoreType),
		MenuHandler:            app.MenuHandler,
		RecommendationsHandler: app.RecommendationsHandler,
		Limiter:                middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "err": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildAnalyzer(cfg config.Config) (llm.Analyzer, error) {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		telemetry.Warn("bootstrap.llm.placeholder", map[string]any{"reason": "OPENAI_API_KEY empty"})
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, cfg.LLMTimeout)
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.MenuRepo = &menu.PGRepo{DB: app.DB}
		app.ProductsRepo = &recommendations.PGRepo{DB: app.DB}
	} else {
		app.MenuRepo = menu.NewMemoryRepo()
		app.ProductsRepo = recommendations.NewMemoryRepo(recommendations.Catalog()...)
	}

	app.MenuService = &menu.Service{
		Store:          app.Store,
		Repo:           app.MenuRepo,
		Analyzer:       app.Analyzer,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	app.RecommendationsService = &recommendations.Service{
		Repo:  app.ProductsRepo,
		Menus: menuIngredients{svc: app.MenuService},
	}
	app.MenuHandler = menu.NewHandler(app.MenuService)
	app.RecommendationsHandler = recommendations.NewHandler(app.RecommendationsService)

	if app.MenuHandler == nil || app.RecommendationsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

// menuIngredients adapts the menu service to the catalog's lookup contract.
type menuIngredients struct {
	svc *menu.Service
}

func (m menuIngredients) Ingredients(ctx context.Context, analysisID string) ([]string, error) {
	ingredients, err := m.svc.Ingredients(ctx, analysisID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			return nil, recommendations.ErrAnalysisNotFound
		}
		return nil, err
	}
	return ingredients, nil
}

func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
