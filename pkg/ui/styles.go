package ui

import "github.com/charmbracelet/lipgloss"

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorWarning   = lipgloss.Color("#FFB86C")
)

// Theme carries the renderer and the adaptive colors every view draws with.
// Views never call lipgloss.NewStyle directly so tests can render through a
// renderer bound to a discarded writer.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	Selected lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style
}

// DefaultTheme builds the theme for r. A nil renderer uses lipgloss's default.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: string(ColorPrimary)},
		Secondary: lipgloss.AdaptiveColor{Light: "#0087AF", Dark: string(ColorSecondary)},
		Text:      lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: string(ColorText)},
		Subtext:   lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: string(ColorSubtext)},
		Muted:     lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: string(ColorMuted)},
		Border:    lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: string(ColorBgHighlight)},
		Highlight: lipgloss.AdaptiveColor{Light: "#E8E0FF", Dark: string(ColorBgHighlight)},
		Warning:   lipgloss.AdaptiveColor{Light: "#D75F00", Dark: string(ColorWarning)},
		Success:   lipgloss.AdaptiveColor{Light: "#008700", Dark: string(ColorSuccess)},
	}
	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Foreground(t.Text).
		Bold(true)
	t.Header = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)
	t.Status = r.NewStyle().
		Foreground(t.Secondary)
	return t
}

// ══════════════════════════════════════════════════════════════════════════════
// PANELS
// ══════════════════════════════════════════════════════════════════════════════

// PanelStyle frames the details pane.
func (t Theme) PanelStyle() lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}
