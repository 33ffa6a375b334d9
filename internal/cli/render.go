package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// renderCommand creates the render command that runs the complete pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		compare bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Enumerate, lay out, and render a selection in one step",
		Long: `Enumerate, lay out, and render a selection in one step.

Runs the complete pipeline and writes one file per requested format
(svg, json). With --compare, renders the four-mode comparison view
instead of a single mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			opts.Compare = compare
			return c.runRender(cmd, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "cards", "output file base name (extension added per format)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats: svg, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&compare, "compare", false, "render the four-mode comparison view")
	cmd.Flags().IntVarP(&opts.N, "deck", "n", pipeline.DefaultN, "deck size")
	cmd.Flags().IntVarP(&opts.R, "select", "r", pipeline.DefaultR, "selection size")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", pipeline.DefaultMode, "selection mode: perm, perm-repeat, comb, comb-repeat")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Title, "title", "", "headline drawn above the output")
	cmd.Flags().IntVar(&opts.MaxArrangements, "max", opts.MaxArrangements, "refuse to materialize more than this many arrangements")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		printDetail("%s", err)
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := output + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	cached := result.CacheInfo.EnumerateHit && result.CacheInfo.RenderHit
	printStats(result.Count, len(result.Plan.Cells), cached)
	return nil
}
