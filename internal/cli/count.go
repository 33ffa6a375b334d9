package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/combin"
)

// countCommand creates the count command for closed-form arrangement counts.
func (c *CLI) countCommand() *cobra.Command {
	var (
		n, r int
		mode string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count arrangements without enumerating them",
		Long: `Count arrangements without enumerating them.

The count comes from the closed-form formula for the selection mode, so it is
instant regardless of size. Use --all to see all four modes side by side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runCountAll(n, r)
			}
			parsed, err := combin.ParseMode(mode)
			if err != nil {
				printError("%s", err)
				return err
			}
			return runCount(n, r, parsed)
		},
	}

	cmd.Flags().IntVarP(&n, "deck", "n", 5, "deck size")
	cmd.Flags().IntVarP(&r, "select", "r", 2, "selection size")
	cmd.Flags().StringVarP(&mode, "mode", "m", "perm", "selection mode: perm, perm-repeat, comb, comb-repeat")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "show all four modes")

	return cmd
}

func runCount(n, r int, mode combin.Mode) error {
	count, err := combin.Count(n, r, mode)
	if err != nil {
		printError("%s", err)
		return err
	}
	formula, err := combin.Formula(n, r, mode)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(mode.Title()))
	printKeyValue("count", StyleNumber.Render(fmt.Sprintf("%d", count)))
	printKeyValue("formula", formula)
	printNewline()
	printNextStep("Enumerate", fmt.Sprintf("cardgrid enumerate -n %d -r %d -m %s", n, r, mode))
	return nil
}

func runCountAll(n, r int) error {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Selections of %d from a deck of %d", r, n)))
	printNewline()

	for _, mode := range combin.Modes {
		count, err := combin.Count(n, r, mode)
		if err != nil {
			// Without repetition, r > n has no arrangements to count;
			// the other modes still do.
			printDetail("%-30s %s", mode.Title(), StyleWarning.Render("n/a: "+err.Error()))
			continue
		}
		formula, err := combin.Formula(n, r, mode)
		if err != nil {
			return err
		}
		fmt.Printf("  %-30s %s  %s\n",
			mode.Title(),
			StyleNumber.Render(fmt.Sprintf("%6d", count)),
			StyleDim.Render(formula))
	}
	printNewline()
	printNextStep("Compare layouts", fmt.Sprintf("cardgrid compare -n %d -r %d", n, r))
	return nil
}
