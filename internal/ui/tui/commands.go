package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"
)

// stateStream forwards loader snapshots into the bubbletea loop. Loaders
// notify from their own goroutines; the program reads through listen.
type stateStream struct {
	ch   chan tea.Msg
	done chan struct{}
}

func newStateStream() *stateStream {
	return &stateStream{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

func (s *stateStream) push(msg tea.Msg) {
	select {
	case s.ch <- msg:
	case <-s.done:
	}
}

func (s *stateStream) close() {
	close(s.done)
}

func (s *stateStream) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.ch:
			return msg
		case <-s.done:
			return streamClosedMsg{}
		}
	}
}

// bind subscribes the stream to both loaders and returns the unsubscribe func.
func (s *stateStream) bind(list *browse.CollectionList, detail *browse.CollectionDetail) func() {
	stopList := list.Subscribe(func(st browse.CollectionListState) {
		s.push(listStateMsg{state: st})
	})
	stopDetail := detail.Subscribe(func(st browse.CollectionDetailState) {
		s.push(detailStateMsg{state: st})
	})
	return func() {
		stopList()
		stopDetail()
	}
}

func cmdActivateList(ctx context.Context, list *browse.CollectionList) tea.Cmd {
	return func() tea.Msg {
		list.Activate(ctx)
		return nil
	}
}

func cmdRefetchList(ctx context.Context, list *browse.CollectionList) tea.Cmd {
	return func() tea.Msg {
		list.Fetch(ctx)
		return nil
	}
}

func cmdRefetchDetail(ctx context.Context, detail *browse.CollectionDetail) tea.Cmd {
	return func() tea.Msg {
		detail.Fetch(ctx)
		return nil
	}
}

func cmdExport(deps Deps, st browse.CollectionDetailState) tea.Cmd {
	return func() tea.Msg {
		if deps.Exports == nil {
			return exportDoneMsg{err: errors.New("exports need a workspace (run acectl init)")}
		}
		if st.Schema == nil {
			return exportDoneMsg{err: domain.ErrNoSelection}
		}
		id, err := deps.Exports.SaveExport(domain.ExportArtifact{
			Collection: st.Collection,
			BaseURL:    deps.BaseURL,
			Schema:     st.Schema,
			Items:      st.Items,
		})
		return exportDoneMsg{id: id, err: err}
	}
}

func cmdInitWorkspaceHere(deps Deps) tea.Cmd {
	return func() tea.Msg {
		root, err := os.Getwd()
		if err != nil {
			return initWorkspaceDoneMsg{err: err}
		}
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err = deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}
