// Package ui is the terminal view shell of gtv: a bubbletea program that
// renders the term tree, delivers selection events to the navigate
// controller and carries out the focus requests it issues.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/model"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/navigate"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// Catalog is the read-only term lookup the shell needs. *catalog.Store
// satisfies it.
type Catalog interface {
	Get(id string) (model.Term, bool)
	Len() int
}

// Options tunes a Model.
type Options struct {
	// Source names the loaded file in the header.
	Source   string
	Strategy navigate.Strategy
	// FollowCursor sends a selection event on every cursor move instead of
	// only on enter/space.
	FollowCursor bool
	ShowDetails  bool
	// DetailsStyle is a glamour standard style name.
	DetailsStyle string
	Logger       *zap.Logger
	// Renderer defaults to lipgloss's default renderer.
	Renderer *lipgloss.Renderer
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeGoTo
)

// minDetailsWidth is the narrowest details pane worth drawing.
const minDetailsWidth = 30

// Model is the top-level bubbletea model.
type Model struct {
	source  string
	terms   Catalog
	tree    *tree.Model
	ctrl    *navigate.Controller
	view    *TreeView
	history *navigate.History
	search  *nameSearch
	details *DetailsPane

	keys        KeyMap
	help        help.Model
	helpOverlay HelpOverlayModel
	prompt      textinput.Model
	theme       Theme
	logger      *zap.Logger
	copyFn      func(string) error

	mode         inputMode
	followCursor bool
	showDetails  bool
	status       string
	width        int
	height       int
	quitting     bool
}

// NewModel wires the view, the controller and the tree together. The tree's
// focus requests are routed to the returned model's TreeView.
func NewModel(terms Catalog, tm *tree.Model, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	theme := DefaultTheme(opts.Renderer)

	view := NewTreeView(tm, terms, theme)
	tm.SetFocuser(view)

	prompt := textinput.New()
	prompt.CharLimit = 256

	h := help.New()
	h.Styles.ShortKey = theme.Renderer.NewStyle().Foreground(theme.Primary)
	h.Styles.ShortDesc = theme.Renderer.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = theme.Renderer.NewStyle().Foreground(theme.Border)

	return Model{
		source:       opts.Source,
		terms:        terms,
		tree:         tm,
		ctrl:         navigate.NewController(terms, tm, navigate.WithStrategy(opts.Strategy), navigate.WithLogger(logger)),
		view:         view,
		history:      navigate.NewHistory(0),
		search:       newNameSearch(tm),
		details:      NewDetailsPane(theme, opts.DetailsStyle),
		keys:         DefaultKeyMap,
		help:         h,
		helpOverlay:  NewHelpOverlayModel(DefaultKeyMap, theme),
		prompt:       prompt,
		theme:        theme,
		logger:       logger,
		copyFn:       copyFn,
		followCursor: opts.FollowCursor,
		showDetails:  opts.ShowDetails,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		if m.helpOverlay.IsVisible() {
			m.helpOverlay, _ = m.helpOverlay.Update(msg)
			return m, nil
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeGoTo:
			return m.updateGoTo(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moved(m.view.MoveUp())
	case key.Matches(msg, m.keys.Down):
		m.moved(m.view.MoveDown())
	case key.Matches(msg, m.keys.Top):
		m.moved(m.view.JumpToTop())
	case key.Matches(msg, m.keys.Bottom):
		m.moved(m.view.JumpToBottom())
	case key.Matches(msg, m.keys.PageUp):
		m.moved(m.view.PageUp())
	case key.Matches(msg, m.keys.PageDown):
		m.moved(m.view.PageDown())
	case key.Matches(msg, m.keys.Expand):
		m.moved(m.view.ExpandOrMoveToChild())
	case key.Matches(msg, m.keys.Collapse):
		m.moved(m.view.CollapseOrJumpToParent())
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	case key.Matches(msg, m.keys.Back):
		m.back()
	case key.Matches(msg, m.keys.Search):
		return m, m.openPrompt(modeSearch, "/", "term name")
	case key.Matches(msg, m.keys.NextHit):
		m.jumpToMatch(m.search.Next())
	case key.Matches(msg, m.keys.PrevHit):
		m.jumpToMatch(m.search.Prev())
	case key.Matches(msg, m.keys.GoTo):
		return m, m.openPrompt(modeGoTo, ":", "GO:0000001")
	case key.Matches(msg, m.keys.Copy):
		m.copySelectedID()
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
		m.layout()
	case key.Matches(msg, m.keys.Help):
		m.helpOverlay.Show()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.search.Clear()
		m.view.SetHits(nil)
		return m, nil
	case "enter":
		m.closePrompt()
		if q := m.search.Query(); q != "" {
			m.status = fmt.Sprintf("%d matches for %q", len(m.search.Matches()), q)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	if q := m.prompt.Value(); q != m.search.Query() {
		first := m.search.Run(q)
		m.view.SetHits(m.search.Matches())
		m.view.Select(first)
	}
	return m, cmd
}

func (m Model) updateGoTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		id := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		m.goTo(id)
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// ── Actions ──

// moved emits a selection event after a cursor move when following the cursor.
func (m *Model) moved(changed bool) {
	if changed && m.followCursor {
		m.emit(m.view.Selected())
	}
}

// activate delivers the selected node to the controller. Name nodes also
// toggle, which is all "selecting" a name node means.
func (m *Model) activate() {
	node := m.view.Selected()
	if node == nil {
		return
	}
	m.emit(node)
	if node.Kind() == tree.KindName {
		m.view.Toggle()
	}
}

func (m *Model) emit(n *tree.Node) {
	if m.ctrl.HandleSelection(n) != navigate.OutcomeFocused {
		return
	}
	m.history.Push(n)
	if target := m.tree.Focused(); target != nil {
		m.status = fmt.Sprintf("%s → %s", n.Label(), target.Label())
	}
}

func (m *Model) back() {
	origin, ok := m.history.Pop()
	if !ok {
		m.status = "history is empty"
		return
	}
	m.view.Select(origin)
	m.status = "back to " + origin.Parent().Label()
}

func (m *Model) jumpToMatch(n *tree.Node) {
	if n == nil {
		if m.search.Query() != "" {
			m.status = fmt.Sprintf("no matches for %q", m.search.Query())
		}
		return
	}
	m.view.Select(n)
	m.status = fmt.Sprintf("match %d/%d", m.search.Position(), len(m.search.Matches()))
}

// goTo selects the name node of id, falling back to an exact name.
func (m *Model) goTo(id string) {
	if id == "" {
		return
	}
	n := m.tree.FindByID(id)
	if n == nil {
		n = m.tree.FindByLabel(id)
	}
	if n == nil || n.Kind() == tree.KindRoot {
		m.status = "no term " + id
		return
	}
	m.view.Select(n)
}

func (m *Model) copySelectedID() {
	n := m.view.Selected()
	if n == nil || n.Kind() == tree.KindRoot {
		return
	}
	if err := m.copyFn(n.ID()); err != nil {
		m.logger.Debug("clipboard write failed", zap.Error(err))
		m.status = "clipboard unavailable"
		return
	}
	m.status = "copied " + n.ID()
}

func (m *Model) openPrompt(mode inputMode, prompt, placeholder string) tea.Cmd {
	m.mode = mode
	m.prompt.Reset()
	m.prompt.Prompt = prompt
	m.prompt.Placeholder = placeholder
	if mode == modeSearch && m.search.Query() != "" {
		m.prompt.SetValue(m.search.Query())
	}
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.prompt.Blur()
}

// ── Layout and rendering ──

func (m *Model) layout() {
	bodyHeight := m.height - 3 // header, status line, help line
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	treeWidth := m.width
	if m.showDetails && m.width > 0 {
		dw := m.width * 2 / 5
		if dw < minDetailsWidth {
			dw = minDetailsWidth
		}
		if dw > m.width-20 {
			dw = m.width - 20
		}
		if dw > 0 {
			m.details.SetWidth(dw)
			treeWidth = m.width - dw - 1
		}
	}
	m.view.SetSize(treeWidth, bodyHeight)
	m.help.Width = m.width
	m.prompt.Width = m.width - 4
	m.helpOverlay.SetSize(m.width, m.height)
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	body := m.view.View()
	if m.showDetails && m.details.Width() > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.renderDetails())
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	if m.mode != modeBrowse {
		sb.WriteString(m.prompt.View())
	} else {
		sb.WriteString(m.theme.Status.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("gtv")
	info := fmt.Sprintf(" %d terms · %d references", m.tree.NameCount(), m.tree.LeafCount())
	if m.source != "" {
		info = " " + m.source + " ·" + info
	}
	return title + m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render(info)
}

func (m Model) renderDetails() string {
	n := m.view.Selected()
	if n == nil || n.Kind() == tree.KindRoot {
		summary := fmt.Sprintf("%s\n\n%d terms in catalog", tree.RootLabel, m.terms.Len())
		return m.theme.PanelStyle().Width(m.details.Width() - 4).Render(summary)
	}
	term, ok := m.terms.Get(n.ID())
	return m.details.Render(term, ok, n.ID())
}

// ── Accessors ──

// TreeView returns the tree widget.
func (m Model) TreeView() *TreeView { return m.view }

// Status returns the transient status line.
func (m Model) Status() string { return m.status }

// HistoryLen returns the depth of the back history.
func (m Model) HistoryLen() int { return m.history.Len() }
