package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/cli/formatter"
	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <package>",
		Short: "Browse a package interactively and open service curves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs an interactive terminal; use `scurve package show` instead")
			}
			id, err := resolvePackageID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newBrowseModel(app, id), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type browseKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Subpackage key.Binding
	Package    key.Binding
	Raw        key.Binding
	Refresh    key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "service curve")),
		Subpackage: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subpackage curve")),
		Package:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "package curve")),
		Raw:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raw/display")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Subpackage, k.Package, k.Raw, k.Back, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Refresh}}
}

type treeLoadedMsg struct {
	tree *contract.PackageTree
	err  error
}

type curveLoadedMsg struct {
	resp *contract.CurveResponse
	err  error
}

// browseRow is one selectable service line.
type browseRow struct {
	subpackage string
	node       contract.ServiceNode
}

// browseModel lists the services of a package and opens their curves in a
// scrollable detail pane.
type browseModel struct {
	app       *App
	packageID string
	keys      browseKeyMap
	help      help.Model
	viewport  viewport.Model

	tree    *contract.PackageTree
	rows    []browseRow
	cursor  int
	loading bool
	err     error

	detail   *contract.CurveResponse
	showRaw  bool
	width    int
	height   int
	quitting bool
}

func newBrowseModel(app *App, packageID string) *browseModel {
	return &browseModel{
		app:       app,
		packageID: packageID,
		keys:      defaultBrowseKeys(),
		help:      help.New(),
		viewport:  viewport.New(80, 20),
		loading:   true,
		showRaw:   !app.SmoothDisplay,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadTree()
}

func (m *browseModel) loadTree() tea.Cmd {
	app, id := m.app, m.packageID
	return func() tea.Msg {
		tree, err := app.Catalog.PackageTree(context.Background(), id)
		return treeLoadedMsg{tree: tree, err: err}
	}
}

func (m *browseModel) loadCurve(scope domain.Scope, id string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		req := contract.NewCurveRequest(scope, id)
		req.Location = app.location()
		resp, err := fetchCurve(context.Background(), app, req)
		return curveLoadedMsg{resp: resp, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		m.renderDetail()
		return m, nil

	case treeLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setTree(msg.tree)
		}
		return m, nil

	case curveLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.detail = msg.resp
			m.renderDetail()
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if row, ok := m.selected(); ok {
			m.loading = true
			return m, m.loadCurve(domain.ScopeService, row.node.Service.ID)
		}
	case key.Matches(msg, m.keys.Subpackage):
		if row, ok := m.selected(); ok {
			m.loading = true
			return m, m.loadCurve(domain.ScopeSubpackage, row.node.Service.SubpackageID)
		}
	case key.Matches(msg, m.keys.Package):
		m.loading = true
		return m, m.loadCurve(domain.ScopePackage, m.packageID)
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadTree()
	case key.Matches(msg, m.keys.Back):
		if m.tree != nil {
			m.err = nil
		}
	}
	return m, nil
}

func (m *browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail = nil
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.Raw):
		m.showRaw = !m.showRaw
		m.renderDetail()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browseModel) setTree(tree *contract.PackageTree) {
	m.tree = tree
	m.rows = m.rows[:0]
	for _, sp := range tree.Subpackages {
		for _, svc := range sp.Services {
			m.rows = append(m.rows, browseRow{subpackage: sp.Subpackage.Name, node: svc})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *browseModel) selected() (browseRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return browseRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *browseModel) renderDetail() {
	if m.detail == nil {
		return
	}
	m.viewport.SetContent(formatter.FormatCurve(m.detail, formatter.CurveOptions{Raw: m.showRaw}))
}

func (m *browseModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString("\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.detail != nil:
		b.WriteString(m.viewport.View() + "\n")
	case m.loading && m.tree == nil:
		b.WriteString("\n  " + formatter.Dim("Loading package...") + "\n")
	default:
		b.WriteString(m.listView())
	}
	if m.loading && m.tree != nil {
		b.WriteString(formatter.Dim("  loading...") + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *browseModel) listView() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleBold.Render(m.tree.Package.Name) + "  " +
		formatter.Dim(formatter.FormatHours(m.tree.TotalHours)+" weighted") + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString("  " + formatter.Dim("No services in this package.") + "\n\n")
		return b.String()
	}

	lastSub := ""
	for i, row := range m.rows {
		if row.subpackage != lastSub {
			b.WriteString("  " + formatter.Header(row.subpackage) + "\n")
			lastSub = row.subpackage
		}
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		svc := row.node.Service
		code := svc.Code
		if code == "" {
			code = "--"
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(padRight(code, 8)),
			nameStyle.Render(padRight(svc.Name, 28)),
			formatter.RenderProgress(row.node.Percent, 10),
			formatter.SourceBadge(row.node.Source),
		))
	}
	b.WriteString("\n")
	return b.String()
}

// padRight pads or truncates s to exactly n runes.
func padRight(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		if n <= 1 {
			return string(r[:n])
		}
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}
