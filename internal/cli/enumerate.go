package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// enumerateCommand creates the enumerate command for listing arrangements.
func (c *CLI) enumerateCommand() *cobra.Command {
	var (
		noCache bool
		limit   int
	)
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "List every arrangement for a selection",
		Long: `List every arrangement for a selection.

Arrangements are materialized in a deterministic order: two runs with the
same deck size, selection size, and mode always produce the same list.
Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEnumerate(cmd, opts, noCache, limit)
		},
	}

	cmd.Flags().IntVarP(&opts.N, "deck", "n", pipeline.DefaultN, "deck size")
	cmd.Flags().IntVarP(&opts.R, "select", "r", pipeline.DefaultR, "selection size")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", pipeline.DefaultMode, "selection mode: perm, perm-repeat, comb, comb-repeat")
	cmd.Flags().IntVar(&opts.MaxArrangements, "max", opts.MaxArrangements, "refuse to materialize more than this many arrangements")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many arrangements (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runEnumerate(cmd *cobra.Command, opts pipeline.Options, noCache bool, limit int) error {
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

	set, cacheHit, err := runner.EnumerateWithCacheInfo(ctx, opts)
	if err != nil {
		printError("%s", err)
		return err
	}

	fmt.Println(StyleTitle.Render(mode.Title()))
	printNewline()

	shown := len(set)
	if limit > 0 && limit < shown {
		shown = limit
	}
	width := len(fmt.Sprintf("%d", len(set)))
	for i := 0; i < shown; i++ {
		fmt.Printf("  %s %s\n",
			StyleDim.Render(fmt.Sprintf("#%-*d", width, i+1)),
			cardLine(set[i].Cards))
	}
	if shown < len(set) {
		printDetail("... and %d more", len(set)-shown)
	}

	printNewline()
	printStats(len(set), 0, cacheHit)
	printNewline()
	printNextStep("Lay out", fmt.Sprintf("cardgrid layout -n %d -r %d -m %s", opts.N, opts.R, mode))
	return nil
}
