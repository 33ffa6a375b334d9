package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/internal/server"
	"github.com/cardgrid/cardgrid/pkg/cache"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
	"github.com/cardgrid/cardgrid/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		redisURL string
		mongoURI string
		noCache  bool
		maxArr   int
	)
	cfg := c.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the enumeration and layout API over HTTP",
		Long: `Serve the enumeration and layout API over HTTP.

Endpoints live under /api/v1: count, formula, arrangements, layout/grid,
comparison, and layouts (saved plans). With --redis the response cache is
shared across instances; with --mongo saved layouts persist across restarts.
Without them the server falls back to the local file cache and an in-memory
store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, redisURL, mongoURI, noCache, maxArr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", cfg.Server.Listen, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", cfg.Server.RedisURL, "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&mongoURI, "mongo", cfg.Server.Mongo.URI, "mongodb URI for persistent layout storage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&maxArr, "max", cfg.MaxArrangements, "per-request arrangement cap")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen, redisURL, mongoURI string, noCache bool, maxArr int) error {
	ch, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, st, c.Logger, maxArr)
	return srv.ListenAndServe(ctx, listen)
}

// serveCache picks the cache backend for serve mode: redis when configured,
// otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		c.Logger.Info("using redis cache", "url", redisURL)
		return cache.NewRedisCache(ctx, redisURL)
	}
	return c.newCache(false)
}

// serveStore picks the document store: mongo when configured, otherwise
// in-memory (layouts vanish on restart).
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("no --mongo URI, saved layouts are kept in memory only")
		return store.NewMemoryStore(), nil
	}
	cfg := c.Config.Server.Mongo
	c.Logger.Info("using mongodb store", "database", cfg.Database, "collection", cfg.Collection)
	return store.NewMongoStore(ctx, mongoURI, cfg.Database, cfg.Collection)
}
