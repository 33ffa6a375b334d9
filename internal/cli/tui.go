package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

// TUI styles
var (
	styleCardBack = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Foreground(colorDim).
			Padding(0, 1)

	styleDealDone = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// dealTickMsg advances the dealing animation by one step.
type dealTickMsg time.Time

const dealInterval = 350 * time.Millisecond

// holdTicks is how many ticks a completed arrangement stays on screen before
// the next one starts.
const holdTicks = 3

func dealTick() tea.Cmd {
	return tea.Tick(dealInterval, func(t time.Time) tea.Msg {
		return dealTickMsg(t)
	})
}

// =============================================================================
// DealModel - Animated arrangement dealing
// =============================================================================

// DealModel is the bubbletea model that deals arrangements card by card.
// Positions and card order come from an expansion plan, so the animation
// mirrors what the SVG renderer draws.
type DealModel struct {
	Set  combin.ArrangementSet
	Mode combin.Mode

	// slots from the single-expansion plan; len(slots) is the hand size.
	slots []layout.Slot
	// gap is the horizontal padding between dealt cards, derived from the
	// plan's slot spacing relative to the card width.
	gap int

	current int // arrangement being dealt
	dealt   int // cards revealed in the current arrangement
	hold    int // ticks remaining before advancing past a complete arrangement
	paused  bool
	done    bool
}

// newDealModel creates a deal animation over the given arrangements.
func newDealModel(set combin.ArrangementSet, mode combin.Mode, plan layout.Plan) DealModel {
	var slots []layout.Slot
	if len(plan.Cells) > 0 {
		slots = plan.Cells[0].Slots
	}

	gap := 0
	if len(slots) > 1 && plan.CardWidth > 0 {
		spacing := slots[1].X - slots[0].X
		if ratio := spacing/plan.CardWidth - 1; ratio > 0 {
			gap = int(ratio * 2)
		}
	}

	return DealModel{
		Set:   set,
		Mode:  mode,
		slots: slots,
		gap:   gap,
	}
}

func (m DealModel) Init() tea.Cmd {
	return dealTick()
}

func (m DealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			if !m.done {
				m = m.advance()
			}
		}
	case dealTickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m = m.step()
		}
		return m, dealTick()
	}
	return m, nil
}

// step reveals the next card, or advances to the next arrangement once the
// hold period of a completed one has elapsed.
func (m DealModel) step() DealModel {
	if m.dealt < len(m.slots) {
		m.dealt++
		if m.dealt == len(m.slots) {
			m.hold = holdTicks
		}
		return m
	}
	if m.hold > 0 {
		m.hold--
		return m
	}
	return m.advance()
}

// advance moves to the next arrangement, or finishes after the last one.
func (m DealModel) advance() DealModel {
	if m.current+1 >= len(m.Set) {
		m.done = true
		m.dealt = len(m.slots)
		return m
	}
	m.current++
	m.dealt = 0
	m.hold = 0
	return m
}

func (m DealModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Mode.Title()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause  n next  q quit"))
	b.WriteString("\n\n")

	if len(m.Set) == 0 {
		b.WriteString(StyleDim.Render("nothing to deal"))
		b.WriteString("\n")
		return b.String()
	}

	cards := m.Set[m.current].Cards
	boxes := make([]string, 0, len(cards)*2)
	pad := strings.Repeat(" ", m.gap)
	for i, sym := range cards {
		if i > 0 && m.gap > 0 {
			boxes = append(boxes, pad)
		}
		if i < m.dealt {
			boxes = append(boxes, cardBox(sym))
		} else {
			boxes = append(boxes, styleCardBack.Render("??"))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, boxes...))
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf("arrangement %d of %d", m.current+1, len(m.Set))))
	if m.paused {
		b.WriteString("  " + StyleWarning.Render("paused"))
	}
	if m.done {
		b.WriteString("\n" + styleDealDone.Render("done") + StyleDim.Render("  press q to quit"))
	}
	b.WriteString("\n")
	return b.String()
}
