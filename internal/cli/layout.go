package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/layout"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing grid plans.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a display grid plan for a selection",
		Long: `Compute a display grid plan for a selection.

The plan places every arrangement in a grid cell and every card in a slot
with absolute canvas coordinates. Cards shrink to fit dense grids but never
below a minimum visible size; selections too dense for the canvas fail with
a layout overflow instead of producing unreadable output.

The output is a plan.json file that 'cardgrid render' can turn into SVG.
Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "plan.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Selection flags
	cmd.Flags().IntVarP(&opts.N, "deck", "n", pipeline.DefaultN, "deck size")
	cmd.Flags().IntVarP(&opts.R, "select", "r", pipeline.DefaultR, "selection size")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", pipeline.DefaultMode, "selection mode: perm, perm-repeat, comb, comb-repeat")

	// Canvas flags
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()

	mode, err := combin.ParseMode(opts.Mode)
	if err != nil {
		printError("%s", err)
		return err
	}
	count, err := combin.Count(opts.N, opts.R, mode)
	if err != nil {
		printError("%s", err)
		return err
	}
	if err := opts.CheckCap(count); err != nil {
		printError("%s", err)
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d arrangements...", count))
	spinner.Start()

	plan, cacheHit, err := runner.PlanGridWithCacheInfo(ctx, count, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		printDetail("%s", err)
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := layout.WritePlanFile(plan, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete (%d×%d grid)", plan.Rows, plan.Cols)
	printFile(output)
	printStats(count, len(plan.Cells), cacheHit)
	printNewline()
	printNextStep("Render", fmt.Sprintf("cardgrid render -n %d -r %d -m %s", opts.N, opts.R, mode))
	return nil
}
