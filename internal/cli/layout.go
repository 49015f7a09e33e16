package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/pipeline"
)

// layoutCommand creates the layout command, which writes the laid-out
// graph as JSON. Use -o - to print it.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Write the laid-out graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Render)
			opts.Input = args[0]
			opts.Formats = []string{pipeline.FormatJSON}
			opts.SetDefaults()
			if err := opts.Validate(); err != nil {
				return err
			}

			path := outputPaths(opts.Input, flags.output, opts.Formats)[pipeline.FormatJSON]
			if err := errors.ValidateOutputPath(path); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.NoCache, cfg.CacheDir)
			if err != nil {
				return err
			}
			defer runner.Close()

			p := newProgress(c.Logger)
			res, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := writeArtifact(path, res.Artifacts[pipeline.FormatJSON]); err != nil {
				return err
			}
			p.done(fmt.Sprintf("Laid out %s", filepath.Base(opts.Input)))
			if path != "-" {
				printFile(path)
			}
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}
