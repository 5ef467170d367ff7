package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelgrid/reelgrid/internal/gallery"
	"github.com/reelgrid/reelgrid/internal/reel"
)

// Editable fields.
const (
	editTitle = iota
	editDescription
	editLikes
	editViews
	editFieldCount
)

// editForm holds the state of the edit overlay for one item.
type editForm struct {
	id       string
	original reel.Item
	inputs   [editFieldCount]textinput.Model
	focus    int
}

func newEditForm(item reel.Item) editForm {
	f := editForm{id: item.ID, original: item}

	labels := [editFieldCount]string{"Title", "Description", "Likes", "Views"}
	values := [editFieldCount]string{
		item.Title,
		item.Description,
		strconv.Itoa(item.Likes),
		strconv.Itoa(item.Views),
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.SetValue(values[i])
		in.Width = 48
		f.inputs[i] = in
	}
	f.inputs[editTitle].CharLimit = 256
	f.inputs[editDescription].CharLimit = 1024
	f.inputs[editTitle].Focus()
	return f
}

// patch diffs the inputs against the original item so the update only
// carries fields the user actually changed.
func (f *editForm) patch() gallery.Patch {
	var patch gallery.Patch

	if title := f.inputs[editTitle].Value(); title != f.original.Title {
		patch.Title = &title
	}
	if desc := f.inputs[editDescription].Value(); desc != f.original.Description {
		patch.Description = &desc
	}
	if likes, err := strconv.Atoi(strings.TrimSpace(f.inputs[editLikes].Value())); err == nil && likes != f.original.Likes {
		patch.Likes = &likes
	}
	if views, err := strconv.Atoi(strings.TrimSpace(f.inputs[editViews].Value())); err == nil && views != f.original.Views {
		patch.Views = &views
	}
	return patch
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.edit = nil
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.edit.inputs[m.edit.focus].Blur()
		m.edit.focus = (m.edit.focus + 1) % editFieldCount
		m.edit.inputs[m.edit.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.edit.inputs[m.edit.focus].Blur()
		m.edit.focus = (m.edit.focus - 1 + editFieldCount) % editFieldCount
		m.edit.inputs[m.edit.focus].Focus()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		patch := m.edit.patch()
		if patch.Title == nil && patch.Description == nil && patch.Likes == nil && patch.Views == nil {
			// Nothing changed; just close the overlay.
			m.edit = nil
			return m, nil
		}
		id := m.edit.id
		return m, editCmd(m.ctx, m.manager, id, patch)
	}

	var cmd tea.Cmd
	m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
	return m, cmd
}

func (m Model) renderEdit() string {
	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render("Edit " + m.edit.original.Title))
	b.WriteString("\n\n")
	for i := range m.edit.inputs {
		marker := "  "
		if i == m.edit.focus {
			marker = m.styles.AccentText.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.edit.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render("enter save · tab next field · esc cancel"))
	return b.String()
}
