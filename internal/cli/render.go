package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagdraw/pkg/errors"
	"github.com/matzehuels/dagdraw/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by render and layout.
type renderFlags struct {
	output    string  // output file (single format) or base path (multiple)
	formats   string  // comma-separated output formats
	rankdir   string  // rank direction override
	margin    float64 // space around the drawing
	scale     float64 // PNG resolution multiplier
	embedFont bool    // embed the label font in SVG output
	noCache   bool    // bypass the cache
}

// register adds the flags to cmd. withFormats is false for commands with a
// fixed output format.
func (f *renderFlags) register(cmd *cobra.Command, withFormats bool) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	if withFormats {
		cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
		cmd.Flags().Float64Var(&f.margin, "margin", pipeline.DefaultMargin, "space around the drawing in pixels")
		cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
		cmd.Flags().BoolVar(&f.embedFont, "embed-font", false, "embed the label font in SVG output")
	}
	cmd.Flags().StringVar(&f.rankdir, "rankdir", "", "rank direction: TB, BT, LR or RL (default: the graph's own)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable layout and artifact caching")
}

// options merges the config file defaults with the flags the user set.
func (f *renderFlags) options(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	opts := base
	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("rankdir") {
		opts.RankDir = f.rankdir
	}
	if changed("margin") {
		opts.Margin = f.margin
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("embed-font") {
		opts.EmbedFont = f.embedFont
	}
	if changed("no-cache") {
		opts.NoCache = f.noCache
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a JSON or DOT graph",
		Long: `Draw a graph read from a .json, .dot or .gv file.

Outputs are written next to the input unless -o is given. Laid-out JSON and
DOT use the suffixes .layout.json and .layout.dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg.Render)
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, flags.output, cfg.CacheDir)
		},
	}
	flags.register(cmd, true)
	return cmd
}

// runRender executes the pipeline and writes every artifact to disk.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output, cacheDir string) error {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	paths := outputPaths(opts.Input, output, opts.Formats)
	for _, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(opts.NoCache, cacheDir)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Status lines would corrupt an artifact written to stdout.
	quiet := false
	for _, p := range paths {
		quiet = quiet || p == "-"
	}
	status := io.Writer(os.Stderr)
	if quiet {
		status = io.Discard
	}

	spinner := newSpinner(ctx, status, fmt.Sprintf("Rendering %s...", filepath.Base(opts.Input)))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.Update(fmt.Sprintf("Writing %d artifact(s)...", len(opts.Formats)))
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			spinner.Stop()
			return err
		}
	}
	spinner.Stop()
	if quiet {
		return nil
	}

	printSuccess("Rendered %s", filepath.Base(opts.Input))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.RenderHit)
	return nil
}

// writeArtifact writes data to path, creating parent directories. The path
// "-" writes to standard output.
func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
