package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// fakeAPI serves canned schemas and items. A collection with a gate blocks
// both of its requests until the gate is closed.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	list       []domain.ModelSchema
	listByCall [][]domain.ModelSchema
	listErr    error
	schemas    map[string]domain.ModelSchema
	items      map[string][]domain.ContentItem
	schemaErr  map[string]error
	contentErr map[string]error
	gates      map[string]chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		schemas:    map[string]domain.ModelSchema{},
		items:      map[string][]domain.ContentItem{},
		schemaErr:  map[string]error{},
		contentErr: map[string]error{},
		gates:      map[string]chan struct{}{},
	}
}

// record logs call and returns how many times it was seen before.
func (f *fakeAPI) record(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	f.calls = append(f.calls, call)
	return n
}

func (f *fakeAPI) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gates[key]
}

func (f *fakeAPI) wait(ctx context.Context, key string) error {
	g := f.gate(key)
	if g == nil {
		return nil
	}
	select {
	case <-g:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListSchemas(ctx context.Context) ([]domain.ModelSchema, error) {
	n := f.record("/schema")
	if err := f.wait(ctx, "/schema"); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	if n < len(f.listByCall) {
		return f.listByCall[n], nil
	}
	return f.list, nil
}

func (f *fakeAPI) GetSchema(ctx context.Context, collection string) (domain.ModelSchema, error) {
	f.record("/schema/" + collection)
	if err := f.wait(ctx, collection); err != nil {
		return domain.ModelSchema{}, err
	}
	if err := f.schemaErr[collection]; err != nil {
		return domain.ModelSchema{}, err
	}
	return f.schemas[collection], nil
}

func (f *fakeAPI) ListContent(ctx context.Context, collection string) ([]domain.ContentItem, error) {
	f.record("/content/" + collection)
	if err := f.wait(ctx, collection); err != nil {
		return nil, err
	}
	if err := f.contentErr[collection]; err != nil {
		return nil, err
	}
	return f.items[collection], nil
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func statusErr(code int) error {
	return &domain.OpError{
		Op:   "apiclient.get",
		Kind: domain.KindHTTPStatus,
		Err:  &domain.HTTPStatusError{Method: "GET", Status: code},
	}
}
