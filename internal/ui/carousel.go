package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reelgrid/reelgrid/internal/player"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// renderCarousel draws the featured strip with the active item enlarged
// in the middle and playback state underneath.
func (m Model) renderCarousel() string {
	if len(m.featured) == 0 {
		return m.styles.MutedText.Render("No featured reels.")
	}

	var cells []string
	for i, item := range m.featured {
		cells = append(cells, m.renderCarouselCell(item, i == m.carouselIdx))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Center, cells...)

	active := m.featured[m.carouselIdx]
	detail := m.renderCarouselDetail(active)
	return lipgloss.JoinVertical(lipgloss.Left, strip, "", detail)
}

func (m Model) renderCarouselCell(item reel.Item, active bool) string {
	style := m.styles.Card
	label := truncate(item.Title, 18)
	if active {
		style = m.styles.CardSelected
		label = m.styles.AccentText.Render(label)
	} else {
		label = m.styles.MutedText.Render(label)
	}
	return style.Render(label)
}

func (m Model) renderCarouselDetail(item reel.Item) string {
	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render(item.Title))
	b.WriteString("\n")
	if item.Description != "" {
		b.WriteString(m.styles.Text.Render(truncate(item.Description, m.width-4)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf("%s · %s likes · %s views",
		reel.FormatDuration(item.DurationSeconds),
		formatCount(item.Likes),
		formatCount(item.Views))))
	b.WriteString("\n")
	b.WriteString(m.playbackBadge(item.ID))
	return b.String()
}

func (m Model) playbackBadge(id string) string {
	if m.deck == nil || m.deck.ActiveID() != id {
		return m.styles.FaintText.Render("stopped")
	}
	switch m.deck.ActiveState() {
	case player.StateActive:
		return m.styles.StateStyle("playing").Render("playing")
	case player.StatePaused:
		return m.styles.StateStyle("paused").Render("paused")
	case player.StateUninitialized:
		return m.styles.StateStyle("uploading").Render("loading")
	default:
		return m.styles.FaintText.Render("stopped")
	}
}
