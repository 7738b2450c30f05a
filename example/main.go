package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/dispatch"
	"github.com/dmitrymomot/dispatch/example/controllers"
	"github.com/dmitrymomot/dispatch/middlewares"
	"github.com/dmitrymomot/dispatch/pkg/assets"
	"github.com/dmitrymomot/dispatch/pkg/cache"
	"github.com/dmitrymomot/dispatch/pkg/config"
	"github.com/dmitrymomot/dispatch/pkg/db"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/redis"
	"github.com/dmitrymomot/dispatch/pkg/session"
	"github.com/dmitrymomot/dispatch/pkg/storage"
)

//go:embed site
var site embed.FS

type appConfig struct {
	Address    string        `env:"ADDRESS" envDefault:":8080"`
	SiteFile   string        `env:"SITE_CONFIG_FILE"`
	RequestTTL time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	Log        logger.Config
}

func main() {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var siteOpts []config.Option
	if cfg.SiteFile != "" {
		siteOpts = append(siteOpts, config.WithFile(cfg.SiteFile))
	}
	siteCfg, err := config.Load(siteOpts...)
	if err != nil {
		return err
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(log),
		dispatch.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTTL),
		),
		dispatch.WithMetrics(""),
	}

	checks := []dispatch.HealthOption{}

	pool, err := openDatabase(ctx, log)
	if err != nil {
		return err
	}
	client, err := openRedis(ctx)
	if err != nil {
		return err
	}

	switch {
	case pool != nil:
		if err := db.Migrate(ctx, pool, session.Migrations(), "", log); err != nil {
			return err
		}
		opts = append(opts, dispatch.WithSession(session.NewPostgresStore(pool)), dispatch.WithShutdownHook(db.Shutdown(pool)))
		checks = append(checks, dispatch.WithReadinessCheck("postgres", db.Healthcheck(pool)))
	case client != nil:
		opts = append(opts, dispatch.WithSession(session.NewRedisStore(client, "example:session:")))
	default:
		opts = append(opts, dispatch.WithSession(session.NewMemoryStore()))
	}
	if client != nil {
		opts = append(opts, dispatch.WithShutdownHook(redis.Shutdown(client)))
		checks = append(checks, dispatch.WithReadinessCheck("redis", redis.Healthcheck(client)))
	}

	fsys, err := siteAssets(client)
	if err != nil {
		return err
	}
	if len(siteCfg.StaticPrefixes) == 0 {
		siteCfg.StaticPrefixes = []string{"static/"}
	}
	if siteCfg.PhysicalPath == "" {
		siteCfg.PhysicalPath = "site"
	}

	opts = append(opts,
		dispatch.WithSiteConfig(siteCfg, fsys),
		dispatch.WithHealthChecks(checks...),
	)
	opts = append(opts, controllers.Register()...)

	return dispatch.New(opts...).Run(cfg.Address, dispatch.Logger(log))
}

// openDatabase connects when DATABASE_CONN_URL is set.
func openDatabase(ctx context.Context, log *slog.Logger) (*pgxpool.Pool, error) {
	if os.Getenv("DATABASE_CONN_URL") == "" {
		return nil, nil
	}
	var cfg db.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	log.Info("connecting to postgres")
	return db.Connect(ctx, cfg)
}

// openRedis connects when REDIS_URL is set.
func openRedis(ctx context.Context) (goredis.UniversalClient, error) {
	if os.Getenv("REDIS_URL") == "" {
		return nil, nil
	}
	var cfg redis.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return redis.Open(ctx, cfg)
}

// siteAssets serves the site from S3 when STORAGE_BUCKET is set, otherwise
// from the embedded site folder. Remote existence checks are cached, in
// Redis when available.
func siteAssets(client goredis.UniversalClient) (assets.FileSystem, error) {
	if os.Getenv("STORAGE_BUCKET") == "" {
		return assets.FromFS(site), nil
	}

	var cfg storage.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	store, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}

	var exists cache.Cache[bool] = cache.NewMemory[bool]()
	if client != nil {
		exists = cache.NewRedis[bool](client, cache.JSONCodec[bool]{}, cache.WithPrefix("example:assets:"))
	}
	return assets.Cached(assets.S3(store), exists, 0), nil
}
