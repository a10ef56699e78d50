package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strut/internal/server"
	"github.com/matzehuels/strut/pkg/cache"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		cacheDirF string
		keyPrefix string
		ttl       time.Duration
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the strut HTTP API",
		Long: `Run the strut HTTP API.

The API is stateless: POST /v1/solve resolves a JSON scene document to
frames, POST /v1/graph renders its constraint graph, and GET /healthz
reports liveness. Results are cached keyed on the request body.

With --redis, results are cached in Redis so multiple replicas share one
cache. Otherwise a local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.serveCache(cmd, redisAddr, cacheDirF, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			defer store.Close()

			var keyer cache.Keyer
			if keyPrefix != "" {
				keyer = cache.NewScopedKeyer(nil, keyPrefix)
			}

			srv := server.New(server.Config{
				Cache:  store,
				Keyer:  keyer,
				Logger: c.Logger,
				TTL:    ttl,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the shared result cache (host:port)")
	cmd.Flags().StringVar(&cacheDirF, "cache-dir", "", "directory for the file cache (default: XDG cache dir)")
	cmd.Flags().StringVar(&keyPrefix, "cache-prefix", "", "prefix for cache keys (namespacing shared Redis)")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", time.Hour, "lifetime of cached results (0 = no expiry)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serveCache picks the cache backend: Redis when configured, otherwise a
// file cache, otherwise nothing.
func (c *CLI) serveCache(cmd *cobra.Command, redisAddr, dir string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(cmd.Context(), redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	c.Logger.Info("using file cache", "dir", dir)
	return cache.NewFileCache(dir)
}
