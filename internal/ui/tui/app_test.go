package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"
)

type fakeAPI struct {
	mu      sync.Mutex
	schemas []domain.ModelSchema
	items   map[string][]domain.ContentItem
	fetched []string
}

func (f *fakeAPI) ListSchemas(context.Context) ([]domain.ModelSchema, error) {
	return f.schemas, nil
}

func (f *fakeAPI) GetSchema(_ context.Context, c string) (domain.ModelSchema, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, c)
	f.mu.Unlock()
	for _, s := range f.schemas {
		if s.Collection == c {
			return s, nil
		}
	}
	return domain.ModelSchema{}, errors.New("no schema " + c)
}

func (f *fakeAPI) ListContent(_ context.Context, c string) ([]domain.ContentItem, error) {
	return f.items[c], nil
}

func newTestModel(t *testing.T, api *fakeAPI) (model, *browse.CollectionList, *browse.CollectionDetail) {
	t.Helper()
	ctx := context.Background()
	collections := browse.NewCollectionList(api)
	sel := browse.NewSelection()
	detail := browse.NewCollectionDetail(ctx, api, sel)
	t.Cleanup(detail.Close)

	m := newModel(ctx, Deps{API: api, BaseURL: "http://test/api"}, collections, sel, detail, newStateStream())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return next.(model), collections, detail
}

func sampleAPI() *fakeAPI {
	return &fakeAPI{
		schemas: []domain.ModelSchema{
			{Collection: "offer", DisplayName: "Offer", Fields: map[string]domain.FieldDefinition{
				"name": {Type: domain.FieldString},
			}},
			{Collection: "skin", Fields: map[string]domain.FieldDefinition{}},
		},
		items: map[string][]domain.ContentItem{
			"offer": {{"_id": "o1", "name": "First"}},
		},
	}
}

func TestModel_ListStatePopulatesMenu(t *testing.T) {
	m, collections, _ := newTestModel(t, sampleAPI())
	collections.Fetch(context.Background())

	next, cmd := m.Update(listStateMsg{state: collections.State()})
	if cmd == nil {
		t.Fatalf("expected listener to be re-armed")
	}
	mm := next.(model)
	if got := len(mm.menu.Items()); got != 2 {
		t.Fatalf("expected 2 menu items, got %d", got)
	}
	if !strings.Contains(mm.View(), "Offer") {
		t.Fatalf("expected collection title in view:\n%s", mm.View())
	}
}

func TestModel_EnterSelectsCollection(t *testing.T) {
	api := sampleAPI()
	m, collections, detail := newTestModel(t, api)
	collections.Fetch(context.Background())

	next, _ := m.Update(listStateMsg{state: collections.State()})
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(model)

	if id, ok := mm.selection.Get(); !ok || id != "offer" {
		t.Fatalf("expected offer selected, got %q ok=%v", id, ok)
	}
	if mm.focus != focusDetail {
		t.Fatalf("expected detail focus")
	}

	detail.Wait()
	next, _ = mm.Update(detailStateMsg{state: detail.State()})
	view := next.(model).View()
	for _, want := range []string{"Items (1)", "o1", "name"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_ListErrorShown(t *testing.T) {
	m, _, _ := newTestModel(t, sampleAPI())

	next, _ := m.Update(listStateMsg{state: browse.CollectionListState{Error: "Network Error"}})
	if view := next.(model).View(); !strings.Contains(view, "Error: Network Error") {
		t.Fatalf("expected error in view:\n%s", view)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, sampleAPI())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModel_ExportWithoutWorkspace(t *testing.T) {
	m, _, _ := newTestModel(t, sampleAPI())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	msg, ok := cmd().(exportDoneMsg)
	if !ok || msg.err == nil {
		t.Fatalf("expected export error without a store, got %#v", msg)
	}

	next, _ := m.Update(msg)
	if !strings.Contains(next.(model).toast, "Export failed") {
		t.Fatalf("unexpected toast %q", next.(model).toast)
	}
}

func TestStateStream_ForwardsLoaderSnapshots(t *testing.T) {
	api := sampleAPI()
	collections := browse.NewCollectionList(api)
	sel := browse.NewSelection()
	detail := browse.NewCollectionDetail(context.Background(), api, sel)
	defer detail.Close()

	s := newStateStream()
	unbind := s.bind(collections, detail)
	defer unbind()

	collections.Fetch(context.Background())

	listen := s.listen()
	first, ok := listen().(listStateMsg)
	if !ok || !first.state.Loading {
		t.Fatalf("expected loading snapshot first, got %#v", first)
	}
	withData, ok := listen().(listStateMsg)
	if !ok || len(withData.state.Collections) != 2 {
		t.Fatalf("expected collections snapshot, got %#v", withData)
	}
	settled, ok := listen().(listStateMsg)
	if !ok || settled.state.Loading {
		t.Fatalf("expected settled snapshot, got %#v", settled)
	}

	s.close()
	if _, ok := listen().(streamClosedMsg); !ok {
		t.Fatalf("expected streamClosedMsg after close")
	}
}

func TestSafeModel_RecoversFromPanic(t *testing.T) {
	m, collections, _ := newTestModel(t, sampleAPI())
	collections.Fetch(context.Background())
	next, _ := m.Update(listStateMsg{state: collections.State()})
	mm := next.(model)
	mm.selection = nil

	s := wrapSafe(mm, nil)
	out, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected the state listener to be re-armed")
	}
	if got := out.(safeModel).m.toast; got != "Unexpected error (see logs)" {
		t.Fatalf("unexpected toast %q", got)
	}
}
