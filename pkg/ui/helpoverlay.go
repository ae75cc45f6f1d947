package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var helpSections = []string{"NAVIGATION", "TREE", "FIND", "OTHER"}

// HelpOverlayModel shows every key binding, grouped as in KeyMap.FullHelp.
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	keys    KeyMap
	theme   Theme
}

// NewHelpOverlayModel creates a hidden help overlay
func NewHelpOverlayModel(keys KeyMap, theme Theme) HelpOverlayModel {
	return HelpOverlayModel{keys: keys, theme: theme}
}

func (m *HelpOverlayModel) Show()   { m.visible = true }
func (m *HelpOverlayModel) Hide()   { m.visible = false }
func (m *HelpOverlayModel) Toggle() { m.visible = !m.visible }

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update closes the overlay on any key.
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.visible = false
	}
	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	r := m.theme.Renderer
	titleStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary).MarginBottom(1)
	sectionStyle := r.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := r.NewStyle().Foreground(m.theme.Primary).Width(12)
	descStyle := r.NewStyle().Foreground(m.theme.Subtext)

	b.WriteString(titleStyle.Render("Gene Ontology Viewer Help"))
	b.WriteString("\n\n")

	for i, group := range m.keys.FullHelp() {
		if i < len(helpSections) {
			b.WriteString(sectionStyle.Render(helpSections[i]) + "\n")
		}
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	hintStyle := r.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	boxStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)
	box := boxStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
