package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

type recorded struct {
	method string
	uri    string
	body   string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) last(t *testing.T) recorded {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		t.Fatalf("expected at least one request")
	}
	return r.calls[len(r.calls)-1]
}

// newBackend serves fixed bodies per "METHOD path" and records every call.
func newBackend(t *testing.T, routes map[string]string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, recorded{method: r.Method, uri: r.URL.RequestURI(), body: string(b)})
		rec.mu.Unlock()

		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New("localhost/api")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	c := newClient(t, "")
	if c.BaseURL() != domain.DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", c.BaseURL())
	}
}

func TestGet_JoinsBasePath(t *testing.T) {
	srv, rec := newBackend(t, map[string]string{"GET /api/schema": `[]`})
	c := newClient(t, srv.URL+"/api/")

	resp, err := c.Get(context.Background(), "/schema")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if got := rec.last(t).uri; got != "/api/schema" {
		t.Fatalf("expected /api/schema, got %s", got)
	}
}

func TestGet_NonSuccessStatusIsError(t *testing.T) {
	srv, _ := newBackend(t, nil)
	c := newClient(t, srv.URL+"/api")

	resp, err := c.Get(context.Background(), "/schema/missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindHTTPStatus) {
		t.Fatalf("expected http_status kind, got %v", err)
	}
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound")
	}
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected response status to be kept, got %d", resp.Status)
	}
	if got := domain.Message(err); got != "Request failed with status code 404" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestGet_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	c := newClient(t, base)
	_, err := c.Get(context.Background(), "/schema")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindTransport) {
		t.Fatalf("expected transport kind, got %v", err)
	}
	if got := domain.Message(err); got != "Network Error" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTypedCollectionCalls(t *testing.T) {
	srv, rec := newBackend(t, map[string]string{
		"GET /api/schema":        `[{"collection":"offer","fields":{}},{"collection":"skin","fields":{}}]`,
		"GET /api/schema/offer":  `{"collection":"offer","fields":{"name":{"type":"String"}}}`,
		"GET /api/content/offer": `[{"_id":"1","name":"Demo Offer 1"}]`,
	})
	c := newClient(t, srv.URL+"/api")
	ctx := context.Background()

	list, err := c.ListSchemas(ctx)
	if err != nil {
		t.Fatalf("ListSchemas error: %v", err)
	}
	if len(list) != 2 || list[1].Collection != "skin" {
		t.Fatalf("unexpected schemas: %+v", list)
	}

	s, err := c.GetSchema(ctx, "offer")
	if err != nil {
		t.Fatalf("GetSchema error: %v", err)
	}
	if s.Fields["name"].Type != domain.FieldString {
		t.Fatalf("unexpected schema: %+v", s)
	}

	items, err := c.ListContent(ctx, "offer")
	if err != nil {
		t.Fatalf("ListContent error: %v", err)
	}
	if len(items) != 1 || items[0]["name"] != "Demo Offer 1" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if got := rec.last(t).uri; got != "/api/content/offer" {
		t.Fatalf("unexpected uri %s", got)
	}
}

func TestGetSchema_EscapesCollection(t *testing.T) {
	srv, rec := newBackend(t, nil)
	c := newClient(t, srv.URL+"/api")

	_, _ = c.GetSchema(context.Background(), "a/b c")
	if got := rec.last(t).uri; got != "/api/schema/a%2Fb%20c" {
		t.Fatalf("expected escaped path, got %s", got)
	}
}

func TestListContent_DecodeError(t *testing.T) {
	srv, _ := newBackend(t, map[string]string{"GET /api/content/offer": `{"not":"a list"}`})
	c := newClient(t, srv.URL+"/api")

	_, err := c.ListContent(context.Background(), "offer")
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !domain.IsKind(err, domain.KindDecode) {
		t.Fatalf("expected decode kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "/content/offer") {
		t.Fatalf("expected path in error, got %v", err)
	}
}
