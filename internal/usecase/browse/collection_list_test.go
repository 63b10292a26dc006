package browse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/apiclient"
)

func TestCollectionList_InitialState(t *testing.T) {
	l := NewCollectionList(newFakeAPI())
	st := l.State()
	if st.Collections == nil || len(st.Collections) != 0 {
		t.Fatalf("expected empty non-nil collections, got %#v", st.Collections)
	}
	if st.Loading || st.Error != "" {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestCollectionList_FetchSuccess(t *testing.T) {
	api := newFakeAPI()
	api.list = []domain.ModelSchema{
		{Collection: "skin", DisplayName: "Skin"},
		{Collection: "offer"},
	}
	l := NewCollectionList(api)

	l.Fetch(context.Background())

	st := l.State()
	if st.Loading {
		t.Fatalf("expected loading=false after fetch")
	}
	if st.Error != "" {
		t.Fatalf("unexpected error %q", st.Error)
	}
	if len(st.Collections) != 2 || st.Collections[0].Collection != "skin" {
		t.Fatalf("unexpected collections: %+v", st.Collections)
	}
	if calls := api.Calls(); len(calls) != 1 || calls[0] != "/schema" {
		t.Fatalf("expected one GET /schema, got %v", calls)
	}
}

func TestCollectionList_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	client, err := apiclient.New(base)
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	l := NewCollectionList(client)

	l.Fetch(context.Background())

	st := l.State()
	if len(st.Collections) != 0 {
		t.Fatalf("expected no collections, got %+v", st.Collections)
	}
	if st.Error != "Network Error" {
		t.Fatalf("expected Network Error, got %q", st.Error)
	}
	if st.Loading {
		t.Fatalf("expected loading=false")
	}
}

func TestCollectionList_StatusErrorKeepsPreviousCollections(t *testing.T) {
	api := newFakeAPI()
	api.list = []domain.ModelSchema{{Collection: "skin"}}
	l := NewCollectionList(api)
	l.Fetch(context.Background())

	api.listErr = statusErr(503)
	l.Fetch(context.Background())

	st := l.State()
	if st.Error != "Request failed with status code 503" {
		t.Fatalf("unexpected error %q", st.Error)
	}
	if len(st.Collections) != 1 {
		t.Fatalf("expected previous collections kept, got %+v", st.Collections)
	}
}

func TestCollectionList_RefetchClearsError(t *testing.T) {
	api := newFakeAPI()
	api.listErr = statusErr(500)
	l := NewCollectionList(api)
	l.Fetch(context.Background())
	if l.State().Error == "" {
		t.Fatalf("expected error after failed fetch")
	}

	api.listErr = nil
	l.Fetch(context.Background())
	if got := l.State().Error; got != "" {
		t.Fatalf("expected error cleared, got %q", got)
	}
}

func TestCollectionList_LoadingBracketsFetch(t *testing.T) {
	api := newFakeAPI()
	gate := make(chan struct{})
	api.gates["/schema"] = gate
	l := NewCollectionList(api)

	var (
		mu   sync.Mutex
		seen []bool
	)
	unsub := l.Subscribe(func(st CollectionListState) {
		mu.Lock()
		seen = append(seen, st.Loading)
		mu.Unlock()
	})
	defer unsub()

	l.Activate(context.Background())
	if !l.State().Loading {
		t.Fatalf("expected loading=true while request is pending")
	}

	close(gate)
	l.Wait()

	if l.State().Loading {
		t.Fatalf("expected loading=false after settle")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) < 2 || !seen[0] || seen[len(seen)-1] {
		t.Fatalf("expected loading true first and false last, got %v", seen)
	}
}

func TestCollectionList_ActivateRunsOnce(t *testing.T) {
	api := newFakeAPI()
	l := NewCollectionList(api)

	l.Activate(context.Background())
	l.Activate(context.Background())
	l.Wait()

	if n := len(api.Calls()); n != 1 {
		t.Fatalf("expected a single request, got %d", n)
	}
}

func TestCollectionList_StaleGuardDropsSupersededResponse(t *testing.T) {
	api := newFakeAPI()
	gate := make(chan struct{})
	api.gates["/schema"] = gate
	api.listByCall = [][]domain.ModelSchema{
		{{Collection: "old"}},
		{{Collection: "new"}},
	}
	l := NewCollectionList(api, WithStaleGuard())

	l.Activate(context.Background())
	eventually(t, "first request", func() bool { return len(api.Calls()) == 1 })

	api.mu.Lock()
	delete(api.gates, "/schema")
	api.mu.Unlock()
	l.Fetch(context.Background())

	close(gate)
	l.Wait()

	st := l.State()
	if len(st.Collections) != 1 || st.Collections[0].Collection != "new" {
		t.Fatalf("expected newest response kept, got %+v", st.Collections)
	}
	if st.Loading {
		t.Fatalf("expected loading=false")
	}
}
