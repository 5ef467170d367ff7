package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reelgrid/reelgrid/internal/reel"
	"github.com/reelgrid/reelgrid/internal/upload"
)

// Field order in the upload form.
const (
	fieldTitle = iota
	fieldDescription
	fieldMediaURL
	fieldThumbnail
	fieldDuration
	fieldTags
	fieldCategory
	fieldCount
)

// uploadForm holds the new-reel input state.
type uploadForm struct {
	inputs     [fieldCount]textinput.Model
	focus      int
	kind       upload.Kind
	publish    bool
	featured   bool
	submitting bool
	err        error
}

func newUploadForm() uploadForm {
	var f uploadForm
	labels := [fieldCount]string{
		"Title", "Description", "Media URL",
		"Thumbnail (path or URL)", "Duration (seconds)", "Tags (comma separated)",
		"Category (" + strings.Join(reel.Categories[:4], ", ") + ", ...)",
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 512
		in.Width = 48
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].CharLimit = upload.MaxTitleLen
	f.inputs[fieldDescription].CharLimit = upload.MaxDescriptionLen
	f.publish = true
	return f
}

func (f *uploadForm) focusFirst() {
	f.focus = fieldTitle
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *uploadForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// build converts the inputs into an upload form. Validation happens in
// the upload package; this only shapes the values.
func (f *uploadForm) build() upload.Form {
	form := upload.Form{
		Kind:        f.kind,
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		MediaURL:    strings.TrimSpace(f.inputs[fieldMediaURL].Value()),
		Category:    strings.TrimSpace(f.inputs[fieldCategory].Value()),
		IsPublished: f.publish,
		IsFeatured:  f.featured,
	}

	thumb := strings.TrimSpace(f.inputs[fieldThumbnail].Value())
	if strings.HasPrefix(thumb, "http://") || strings.HasPrefix(thumb, "https://") {
		form.ThumbnailURL = thumb
	} else if thumb != "" {
		form.ThumbnailPath = thumb
	}

	if n, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldDuration].Value())); err == nil {
		form.DurationSeconds = n
	}

	for _, tag := range strings.Split(f.inputs[fieldTags].Value(), ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			form.Tags = append(form.Tags, trimmed)
		}
	}
	return form
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGallery
		m.form.err = nil
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.form.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		form := m.form.build()
		if err := form.Validate(); err != nil {
			m.form.err = err
			return m, nil
		}
		m.form.err = nil
		m.form.submitting = true
		// Featured videos live in their own collection with their own
		// attribute names; everything else goes to the reels collection.
		collection := m.reelsCol
		if form.IsFeatured {
			collection = m.featCol
		}
		return m, submitCmd(m.ctx, m.uploader, collection, form)
	}

	// ctrl+k toggles reel/long-form, ctrl+p toggles publish, ctrl+f
	// toggles featured.
	switch msg.String() {
	case "ctrl+k":
		if m.form.kind == upload.KindReel {
			m.form.kind = upload.KindLongForm
		} else {
			m.form.kind = upload.KindReel
		}
		return m, nil
	case "ctrl+p":
		m.form.publish = !m.form.publish
		return m, nil
	case "ctrl+f":
		m.form.featured = !m.form.featured
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) renderUpload() string {
	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render("Publish a reel"))
	b.WriteString("\n\n")

	for i := range m.form.inputs {
		marker := "  "
		if i == m.form.focus {
			marker = m.styles.AccentText.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("kind: " + m.form.kind.String() + " (ctrl+k)"))
	b.WriteString("  ")
	if m.form.publish {
		b.WriteString(m.styles.StateStyle("published").Render("publish on submit"))
	} else {
		b.WriteString(m.styles.StateStyle("draft").Render("save as draft"))
	}
	b.WriteString(m.styles.MutedText.Render(" (ctrl+p)"))
	b.WriteString("  ")
	if m.form.featured {
		b.WriteString(m.styles.StateStyle("featured").Render("featured carousel"))
	} else {
		b.WriteString(m.styles.MutedText.Render("not featured"))
	}
	b.WriteString(m.styles.MutedText.Render(" (ctrl+f)"))
	b.WriteString("\n")

	if m.form.submitting {
		b.WriteString(m.styles.StateStyle("uploading").Render("publishing..."))
		b.WriteString("\n")
	}
	if m.form.err != nil {
		b.WriteString(m.styles.DangerText.Render(describeError(m.form.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render("enter submit · tab next field · esc back"))
	return b.String()
}
