package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/pipeline"
	"github.com/cardgrid/cardgrid/pkg/render/svg"
)

// compareCommand creates the compare command for the four-mode view.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare all four selection modes side by side",
		Long: `Compare all four selection modes side by side.

Builds a 2x2 view: permutations on the top row, combinations on the bottom,
repetition on the right. All quadrants share one card scale, so the visual
density difference between modes is real, not an artifact of per-panel
scaling. The comparison requires r <= n since half the modes forbid
repetition.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the comparison SVG to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.N, "deck", "n", pipeline.DefaultN, "deck size")
	cmd.Flags().IntVarP(&opts.R, "select", "r", pipeline.DefaultR, "selection size")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")

	return cmd
}

func (c *CLI) runCompare(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building comparison...")
	spinner.Start()

	res, cacheHit, err := runner.CompareWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Comparison failed")
		printDetail("%s", err)
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Selections of %d from a deck of %d", res.R, res.N)))
	printNewline()
	for _, panel := range res.Panels {
		fmt.Printf("  %-30s %s  %s\n",
			panel.Title,
			StyleNumber.Render(fmt.Sprintf("%6d", panel.Count)),
			StyleDim.Render(panel.Formula))
	}
	printNewline()
	printStats(res.MaxCount(), 0, cacheHit)

	if output != "" {
		title := fmt.Sprintf("n=%d, r=%d", res.N, res.R)
		data := svg.RenderComparison(res, svg.WithTitle(title))
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printNewline()
		printSuccess("Comparison rendered")
		printFile(output)
	}
	return nil
}
