package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain assembles header, body, and footer for the active view.
func (m Model) renderMain() string {
	var body string
	switch {
	case m.edit != nil:
		body = m.renderEdit()
	case m.currentView == ViewUpload:
		body = m.renderUpload()
	case m.currentView == ViewCarousel:
		body = m.renderCarousel()
	default:
		body = m.renderGallery()
	}

	sections := []string{m.renderHeader()}
	if m.banner != "" {
		sections = append(sections, m.styles.Banner.Width(m.width).Render(m.banner))
	}
	if m.pendingDelete != "" {
		sections = append(sections, m.styles.WarningText.Render(
			"Delete this reel and its thumbnail? enter to confirm, esc to cancel"))
	}
	sections = append(sections, body, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	tabs := []string{"[1] Gallery", "[2] Featured", "[3] Upload"}
	active := int(m.currentView)
	for i := range tabs {
		if i == active {
			tabs[i] = m.styles.AccentText.Render(tabs[i])
		} else {
			tabs[i] = m.styles.MutedText.Render(tabs[i])
		}
	}
	title := m.styles.Text.Bold(true).Render("reelgrid")
	return m.styles.Header.Width(m.width).Render(title + "  " + strings.Join(tabs, "  "))
}

func (m Model) renderFooter() string {
	left := fmt.Sprintf("%d reels", len(m.snapshot.Items))
	if m.snapshot.HasMore {
		left += " · more available (m)"
	}
	if m.fetching {
		left += " · fetching"
	}
	if m.statusMsg != "" {
		left += " · " + m.statusMsg
	}
	right := "? help · q quit"

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	return m.styles.Footer.Width(m.width).Render(left + strings.Repeat(" ", pad) + right)
}
