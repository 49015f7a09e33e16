package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagdraw/internal/server"
	"github.com/matzehuels/dagdraw/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP render
// service until the command's context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

Settings are read from DAGDRAW_* environment variables (DAGDRAW_ADDR,
DAGDRAW_REDIS_URL, DAGDRAW_CACHE_TTL, DAGDRAW_MAX_BODY, DAGDRAW_RENDER_TIMEOUT).
The --addr flag overrides DAGDRAW_ADDR, which overrides [server] addr in the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			switch {
			case cmd.Flags().Changed("addr"):
				cfg.Addr = addr
			case os.Getenv(server.EnvPrefix+"_ADDR") == "" && fileCfg.Server.Addr != "":
				cfg.Addr = fileCfg.Server.Addr
			}

			ctx := cmd.Context()
			store, keyer, err := server.NewCache(ctx, cfg)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, keyer, c.Logger)
			runner.ArtifactTTL = cfg.CacheTTL
			defer runner.Close()

			backend := "none"
			if cfg.RedisURL != "" {
				backend = "redis"
			}
			printKeyValue("address", cfg.Addr)
			printKeyValue("cache", backend)

			return server.New(cfg, runner, c.Logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}
