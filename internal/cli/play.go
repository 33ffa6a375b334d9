package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/layout"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// playCommand creates the play command, an animated walk through the
// arrangements of a selection.
func (c *CLI) playCommand() *cobra.Command {
	opts := c.newOptions()

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Deal the arrangements of a selection as an animation",
		Long: `Deal the arrangements of a selection as an animation.

Each arrangement is dealt one card at a time, in enumeration order. The deal
positions come from the same expansion plan the SVG renderer uses, so the
animation and the rendered output agree on card order and spacing.

Keys: space pauses, n skips to the next arrangement, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.N, "deck", "n", pipeline.DefaultN, "deck size")
	cmd.Flags().IntVarP(&opts.R, "select", "r", pipeline.DefaultR, "selection size")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", pipeline.DefaultMode, "selection mode: perm, perm-repeat, comb, comb-repeat")
	cmd.Flags().IntVar(&opts.MaxArrangements, "max", opts.MaxArrangements, "refuse to animate more than this many arrangements")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, opts pipeline.Options) error {
	mode, err := combin.ParseMode(opts.Mode)
	if err != nil {
		printError("%s", err)
		return err
	}

	d, err := deck.Build(opts.N)
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

	set, err := combin.Enumerate(d, opts.R, mode)
	if err != nil {
		printError("%s", err)
		return err
	}

	plan, err := layout.PlanSingleExpansion(opts.R, opts.Bounds())
	if err != nil {
		printError("%s", err)
		return err
	}

	model := newDealModel(set, mode, plan)
	program := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run animation: %w", err)
	}
	return nil
}
