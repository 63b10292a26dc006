package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"
)

type focus int

const (
	focusList focus = iota
	focusDetail
)

type collectionItem struct {
	schema domain.ModelSchema
}

func (c collectionItem) Title() string { return c.schema.Title() }
func (c collectionItem) Description() string {
	return fmt.Sprintf("%s • %d fields", c.schema.Collection, len(c.schema.Fields))
}
func (c collectionItem) FilterValue() string { return c.schema.Collection + " " + c.schema.Title() }

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps

	collections *browse.CollectionList
	selection   *browse.Selection
	detail      *browse.CollectionDetail
	stream      *stateStream

	focus  focus
	menu   list.Model
	width  int
	height int
	scroll int

	listState   browse.CollectionListState
	detailState browse.CollectionDetailState

	workspaceRoot string
	toast         string
}

// Run starts the browser: the collection list on the left, the detail of
// the highlighted collection on the right.
func Run(ctx context.Context, deps Deps) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []browse.Option{}
	if deps.Logger != nil {
		opts = append(opts, browse.WithLogger(deps.Logger))
		deps.Logger.Info("tui.start", "base_url", deps.BaseURL, "workspace", deps.WorkspaceRoot, "debug", deps.Debug)
	}

	collections := browse.NewCollectionList(deps.API, opts...)
	selection := browse.NewSelection()
	detail := browse.NewCollectionDetail(ctx, deps.API, selection, opts...)
	defer detail.Close()

	stream := newStateStream()
	unbind := stream.bind(collections, detail)
	defer unbind()

	m := newModel(ctx, deps, collections, selection, detail, stream)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	stream.close()
	return err
}

func newModel(
	ctx context.Context,
	deps Deps,
	collections *browse.CollectionList,
	selection *browse.Selection,
	detail *browse.CollectionDetail,
	stream *stateStream,
) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Collections"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		ctx:           ctx,
		theme:         DefaultTheme(),
		deps:          deps,
		collections:   collections,
		selection:     selection,
		detail:        detail,
		stream:        stream,
		menu:          l,
		listState:     collections.State(),
		detailState:   detail.State(),
		workspaceRoot: deps.WorkspaceRoot,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.stream.listen(), cmdActivateList(m.ctx, m.collections))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(m.listWidth(), max(msg.Height-8, 5))
		return m, nil

	case listStateMsg:
		m.listState = msg.state
		m.menu.SetItems(collectionItems(msg.state.Collections))
		return m, m.stream.listen()

	case detailStateMsg:
		if msg.state.Collection != m.detailState.Collection {
			m.scroll = 0
		}
		m.detailState = msg.state
		return m, m.stream.listen()

	case streamClosedMsg:
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.toast = "Export failed: " + userMessage(msg.err)
		} else {
			m.toast = "Saved export " + msg.id
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = "Init failed: " + userMessage(msg.err)
		} else {
			m.workspaceRoot = msg.root
			m.toast = "Workspace created at " + msg.root
		}
		return m, nil

	case tea.KeyMsg:
		if m.menu.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter", "right", "l":
			if m.focus == focusList {
				if it, ok := m.menu.SelectedItem().(collectionItem); ok {
					m.selection.Set(it.schema.Collection)
					m.focus = focusDetail
					m.toast = ""
				}
				return m, nil
			}

		case "tab":
			if m.focus == focusList {
				m.focus = focusDetail
			} else {
				m.focus = focusList
			}
			return m, nil

		case "esc", "left", "h":
			if m.focus == focusDetail {
				m.focus = focusList
				return m, nil
			}

		case "r":
			m.toast = ""
			if m.focus == focusDetail {
				return m, cmdRefetchDetail(m.ctx, m.detail)
			}
			return m, cmdRefetchList(m.ctx, m.collections)

		case "x":
			return m, cmdExport(m.deps, m.detailState)

		case "I":
			if m.workspaceRoot == "" {
				return m, cmdInitWorkspaceHere(m.deps)
			}
			return m, nil
		}

		if m.focus == focusDetail {
			switch msg.String() {
			case "down", "j":
				m.scroll++
			case "up", "k":
				if m.scroll > 0 {
					m.scroll--
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(0, 1)
	header := m.theme.Title.Render("acectl") + "  " +
		m.theme.Subtitle.Render("content browser • "+m.deps.BaseURL)

	banner := m.theme.Help.Render("Workspace: " + m.workspaceRoot)
	if m.workspaceRoot == "" {
		banner = m.theme.Help.Render("No workspace (press I to create one here)")
	}

	left := m.theme.Card
	right := m.theme.Card
	if m.focus == focusList {
		left = m.theme.Active
	} else {
		right = m.theme.Active
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Width(m.listWidth()).Render(m.listView()),
		right.Width(m.detailWidth()).Render(m.detailView()),
	)

	help := m.theme.Help.Render("enter open • tab switch pane • r refetch • x export • / filter • q quit")
	out := header + "\n" + banner + "\n" + panes + "\n" + help
	if m.toast != "" {
		out += "\n" + m.toast
	}
	return wrap.Render(out)
}

func (m model) listView() string {
	st := m.listState
	switch {
	case st.Loading && len(st.Collections) == 0:
		return "Loading collections..."
	case st.Error != "" && len(st.Collections) == 0:
		return m.theme.Error.Render("Error: " + st.Error)
	}

	out := m.menu.View()
	if st.Error != "" {
		out += "\n" + m.theme.Error.Render("Error: "+st.Error)
	}
	if len(st.Collections) == 0 {
		out += "\n(no collections)"
	}
	return out
}

func (m model) detailView() string {
	st := m.detailState
	if _, ok := m.selection.Get(); !ok && st.Collection == "" {
		return m.theme.Subtitle.Render("Select a collection")
	}

	var b strings.Builder
	title := st.Collection
	if st.Schema != nil {
		title = st.Schema.Title()
	}
	b.WriteString(m.theme.Title.Render(title))
	if st.Loading {
		b.WriteString("  " + m.theme.Subtitle.Render("loading..."))
	}
	b.WriteString("\n")
	if st.Error != "" {
		b.WriteString(m.theme.Error.Render("Error: "+st.Error) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderDetail(st, m.theme, m.detailWidth()-4))

	return scrollLines(b.String(), m.scroll, max(m.height-8, 5))
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 32
	}
	return max(m.width/3, 24)
}

func (m model) detailWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width-m.listWidth()-8, 20)
}

func collectionItems(cols []domain.ModelSchema) []list.Item {
	items := make([]list.Item, 0, len(cols))
	for _, c := range cols {
		items = append(items, collectionItem{schema: c})
	}
	return items
}
