package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/pipeline"
)

// deckCommand creates the deck command for inspecting deck construction.
func (c *CLI) deckCommand() *cobra.Command {
	var wide bool

	cmd := &cobra.Command{
		Use:   "deck [n]",
		Short: "Print the first n cards of the deck",
		Long: `Print the first n cards of the deck.

Cards cycle through thirteen ranks (A, 2-10, J, Q, K) and four suits
(hearts, spades, clubs, diamonds), so any two decks of the same size are
identical. Hearts and diamonds print in red, spades and clubs in white.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := pipeline.DefaultN
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("n must be an integer, got %q", args[0])
				}
				n = parsed
			}
			return runDeck(n, wide)
		},
	}

	cmd.Flags().BoolVarP(&wide, "wide", "w", false, "draw cards as boxes instead of a compact line")

	return cmd
}

func runDeck(n int, wide bool) error {
	d, err := deck.Build(n)
	if err != nil {
		printError("%s", err)
		return err
	}

	if wide {
		fmt.Println(cardRow(d))
	} else {
		fmt.Println(cardLine(d))
	}
	printNewline()
	printDetail("%d cards, ranks repeat every 13, suits every 4", len(d))
	return nil
}
