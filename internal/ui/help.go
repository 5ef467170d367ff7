package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp draws the full-screen key reference.
func (m Model) renderHelp() string {
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Global", []key.Binding{m.keys.Quit, m.keys.Help, m.keys.CycleTheme, m.keys.Escape}},
		{"Views", []key.Binding{m.keys.ViewGallery, m.keys.ViewCarousel, m.keys.ViewUpload}},
		{"Gallery", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.LoadMore, m.keys.Refresh, m.keys.Edit, m.keys.Delete}},
		{"Playback", []key.Binding{m.keys.PlayPause}},
		{"Forms", []key.Binding{m.keys.Confirm, m.keys.NextField, m.keys.PrevField}},
	}

	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render("Key bindings"))
	b.WriteString("\n\n")
	for _, group := range groups {
		b.WriteString(m.styles.AccentText.Render(group.title))
		b.WriteString("\n")
		for _, binding := range group.bindings {
			help := binding.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(padRight(help.Key, 12)))
			b.WriteString(m.styles.MutedText.Render(help.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.FaintText.Render("press any key to close"))
	return b.String()
}
