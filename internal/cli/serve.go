package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagecraft/internal/config"
	"github.com/matzehuels/pagecraft/internal/server"
	"github.com/matzehuels/pagecraft/pkg/auth"
	"github.com/matzehuels/pagecraft/pkg/cache"
	"github.com/matzehuels/pagecraft/pkg/export"
	"github.com/matzehuels/pagecraft/pkg/session"
	"github.com/matzehuels/pagecraft/pkg/storage"
)

// serveFlags holds command-line overrides for the loaded configuration.
type serveFlags struct {
	configPath string
	addr       string
	memory     bool
	insecure   bool
}

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor HTTP API",
		Long: `Run the editor HTTP API.

Settings are read from pagecraft.toml (or --config), then from the environment.
ACCESS_TOKEN_SECRET is always required; MONGODB_URI is required unless the
in-memory user store is selected with --memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if f := cmd.Flag("verbose"); f == nil || !f.Changed {
				lvl, _ := cfg.LogLevel()
				c.SetLogLevel(lvl)
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default: ./"+config.DefaultFile+" if present)")
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&flags.memory, "memory", false, "keep users in memory instead of MongoDB")
	cmd.Flags().BoolVar(&flags.insecure, "insecure-cookies", false, "drop the Secure cookie flag for plain-HTTP development")

	return cmd
}

// load resolves the configuration and applies flag overrides.
func (f serveFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.memory {
		cfg.Store.Backend = config.StoreMemory
	}
	if f.insecure {
		cfg.Server.InsecureCookies = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	registerLogHooks(c.Logger)

	users, ping, err := c.openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := users.Close(closeCtx); err != nil {
			c.Logger.Warn("close user store", "err", err)
		}
	}()

	issuer, err := session.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	artifacts, err := c.openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	exporter := export.NewExporter(
		cache.Instrumented(artifacts, "export"),
		cache.NewScopedKeyer(nil, cfg.Cache.Prefix),
		c.Logger,
	)
	exporter.TTL = cfg.Cache.TTL

	srv := server.New(server.Options{
		Auth:          auth.NewService(users, issuer),
		Exporter:      exporter,
		Logger:        c.Logger,
		SecureCookies: !cfg.Server.InsecureCookies,
		Ping:          ping,
	})

	if cfg.Server.InsecureCookies {
		printWarning("Secure cookie flag disabled; use only for local HTTP")
	}
	printInfo("Listening on %s", accentStyle.Render(cfg.Server.Addr))
	printKeyValue("Store", cfg.Store.Backend)
	printKeyValue("Cache", cfg.Cache.Backend)

	return srv.ListenAndServe(ctx, cfg.Server)
}

// openStore connects the configured user store. The returned ping is nil for
// the in-memory store.
func (c *CLI) openStore(ctx context.Context, cfg config.StoreConfig) (storage.UserStore, func(context.Context) error, error) {
	if cfg.Backend == config.StoreMemory {
		printWarning("Using the in-memory user store; accounts are lost on exit")
		return storage.NewMemoryStore(), nil, nil
	}

	spinner := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
	spinner.Start()
	store, err := storage.NewMongoStore(ctx, storage.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.Database,
	})
	if err != nil {
		spinner.StopWithError("MongoDB unavailable")
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	spinner.StopWithSuccess("Connected to MongoDB")
	return store, store.Ping, nil
}

// openCache builds the export artifact cache.
func (c *CLI) openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
			dir = d
		}
		c.Logger.Debug("using file cache", "dir", dir)
		return cache.NewFileCache(dir)
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}
