package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reelgrid/reelgrid/internal/gallery"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// laneCount mirrors the three-column masonry layout.
const laneCount = 3

// renderGallery draws the three lanes side by side. The aspect tag
// decides each card's height so the lanes stagger like a masonry grid.
func (m Model) renderGallery() string {
	items := m.snapshot.Items
	if len(items) == 0 {
		if m.fetching {
			return m.styles.MutedText.Render("Fetching reels...")
		}
		return m.styles.MutedText.Render("No reels. Press u to upload one, r to refresh.")
	}

	lanes := gallery.Distribute(items)
	laneWidth := m.laneWidth()

	columns := make([]string, 0, laneCount)
	for lane := 0; lane < laneCount; lane++ {
		cards := make([]string, 0, len(lanes[lane]))
		for i, item := range lanes[lane] {
			globalIdx := i*laneCount + lane
			cards = append(cards, m.renderCard(item, laneWidth, globalIdx == m.selected))
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, cards...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) laneWidth() int {
	w := m.width/laneCount - 2
	if w < 20 {
		w = 20
	}
	return w
}

// renderCard draws one reel tile. Height tracks the aspect tag so
// portrait items read taller than landscape ones.
func (m Model) renderCard(item reel.Item, width int, selected bool) string {
	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}

	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render(truncate(item.Title, width-4)))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s · %s · %s views",
		reel.FormatDuration(item.DurationSeconds),
		item.Category,
		formatCount(item.Views))
	b.WriteString(m.styles.MutedText.Render(truncate(meta, width-4)))
	b.WriteString("\n")

	badges := make([]string, 0, 3)
	if item.IsPublished {
		badges = append(badges, m.styles.StateStyle("published").Render("live"))
	} else {
		badges = append(badges, m.styles.StateStyle("draft").Render("draft"))
	}
	if item.IsFeatured {
		badges = append(badges, m.styles.StateStyle("featured").Render("featured"))
	}
	badges = append(badges, m.styles.FaintText.Render(item.DisplayAspect))
	b.WriteString(strings.Join(badges, " "))

	for i := 0; i < aspectFillerLines(item.DisplayAspect); i++ {
		b.WriteString("\n")
	}

	return style.Width(width).Render(b.String())
}

// aspectFillerLines maps an aspect tag to extra blank lines inside the
// card, approximating the tile heights of the original grid.
func aspectFillerLines(aspect string) int {
	switch aspect {
	case "3:4", "2:3", "4:5":
		return 3
	case "1:1", "4:3":
		return 2
	default: // 16:9 and anything unrecognized
		return 1
	}
}

func (m Model) selectedItem() (reel.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Items) {
		return reel.Item{}, false
	}
	return m.snapshot.Items[m.selected], true
}
