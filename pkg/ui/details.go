package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
)

// DefaultDetailsStyle is the glamour standard style used for the pane.
const DefaultDetailsStyle = "dark"

// DetailsPane renders the markdown summary of one term with glamour.
// Renderers are rebuilt only when the wrap width changes.
type DetailsPane struct {
	theme    Theme
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// NewDetailsPane returns a pane using the named glamour style.
func NewDetailsPane(theme Theme, style string) *DetailsPane {
	if style == "" {
		style = DefaultDetailsStyle
	}
	return &DetailsPane{theme: theme, style: style, cache: make(map[string]string)}
}

// SetWidth sets the outer width of the pane including its frame.
func (d *DetailsPane) SetWidth(width int) {
	if width == d.width {
		return
	}
	d.width = width
	d.renderer = nil
	clear(d.cache)
}

// Width returns the outer width.
func (d *DetailsPane) Width() int { return d.width }

// Render returns the framed pane for term. Unknown ids render a short note.
func (d *DetailsPane) Render(term model.Term, known bool, id string) string {
	var body string
	if !known {
		body = d.theme.Renderer.NewStyle().Foreground(d.theme.Muted).
			Render(id + "\n\nNot defined in this catalog.")
	} else {
		body = d.markdown(term)
	}
	panel := d.theme.PanelStyle()
	if d.width > 0 {
		panel = panel.Width(d.width - panel.GetHorizontalFrameSize())
	}
	return panel.Render(body)
}

func (d *DetailsPane) markdown(term model.Term) string {
	if out, ok := d.cache[term.ID]; ok {
		return out
	}
	out := term.String()
	if r := d.termRenderer(); r != nil {
		if rendered, err := r.Render(term.Markdown()); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	d.cache[term.ID] = out
	return out
}

func (d *DetailsPane) termRenderer() *glamour.TermRenderer {
	if d.renderer != nil {
		return d.renderer
	}
	wrap := d.width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(d.style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	d.renderer = r
	return r
}
