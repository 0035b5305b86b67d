package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/floatplace/internal/server"
	"github.com/matzehuels/floatplace/pkg/cache"
	"github.com/matzehuels/floatplace/pkg/pipeline"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	addr        string
	redisAddr   string
	noCache     bool
	cacheTTL    time.Duration
	maxBatch    int
	concurrency int
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the positioning API over HTTP",
		Long: `Serve starts the HTTP API:

  POST /v1/compute         compute one JSON scenario
  POST /v1/compute/batch   compute {"scenarios": [...]} concurrently
  GET  /healthz            liveness

Results are cached in Redis when --redis is set, otherwise in the user
cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.Logger.Debug("opening cache", "redis", opts.redisAddr != "", "disabled", opts.noCache)
			var backend cache.Cache
			switch {
			case opts.noCache:
				backend = cache.NewNullCache()
			case opts.redisAddr != "":
				rc, err := cache.NewRedisCache(ctx, opts.redisAddr, redisPrefix)
				if err != nil {
					return err
				}
				backend = cache.Instrument(rc, "result")
			default:
				fc, err := newCache(false)
				if err != nil {
					return err
				}
				backend = fc
			}

			runner := pipeline.NewRunner(backend, newKeyer(), c.Logger)
			defer runner.Close()

			srv, err := server.New(server.Config{
				Addr:        opts.addr,
				CacheTTL:    opts.cacheTTL,
				MaxBatch:    opts.maxBatch,
				Concurrency: opts.concurrency,
			}, runner, c.Logger)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address (host:port or redis:// URL) for the result cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", cache.TTLResult, "how long results stay cached")
	cmd.Flags().IntVar(&opts.maxBatch, "max-batch", server.DefaultMaxBatch, "maximum scenarios per batch request")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", server.DefaultConcurrency, "scenarios computed at once per batch")

	return cmd
}
