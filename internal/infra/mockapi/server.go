// Package mockapi is an in-memory stand-in for the content backend. It serves
// the schema, content and seeding endpoints under /api so the CLI and TUI can
// be exercised without a database.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// APIPrefix is the path every route lives under.
const APIPrefix = "/api"

type Server struct {
	router *mux.Router
	gen    *Generator
	log    *slog.Logger
	delay  time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	classes   map[string]Class
	available []string
	enums     map[string][]string
	seeded    map[string][]domain.ContentItem
	content   map[string][]domain.ContentItem
}

type Option func(*Server)

func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

func WithGenerator(g *Generator) Option {
	return func(s *Server) { s.gen = g }
}

// WithLatency delays every response, which makes loading states visible.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// WithClasses replaces the built-in models.
func WithClasses(classes []Class, available []string) Option {
	return func(s *Server) {
		s.classes = map[string]Class{}
		for _, c := range classes {
			s.classes[c.Name] = c
		}
		s.available = append([]string(nil), available...)
	}
}

// WithContent preloads the items of a collection.
func WithContent(collection string, items []domain.ContentItem) Option {
	return func(s *Server) { s.content[collection] = items }
}

func New(opts ...Option) *Server {
	s := &Server{
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:     time.Now,
		classes: map[string]Class{},
		enums:   DefaultEnums(),
		seeded:  map[string][]domain.ContentItem{},
		content: map[string][]domain.ContentItem{},
	}
	for _, c := range DefaultClasses() {
		s.classes[c.Name] = c
	}
	s.available = DefaultAvailableClasses()

	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewGenerator(WithEnums(s.enums))
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests, s.allowAnyOrigin)
	if s.delay > 0 {
		r.Use(s.slowDown)
	}

	api := r.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/schema", s.listSchemas).Methods(http.MethodGet)
	api.HandleFunc("/schema/enums", s.listEnums).Methods(http.MethodGet)
	api.HandleFunc("/schema/{collection}", s.getSchema).Methods(http.MethodGet)

	api.HandleFunc("/content/{collection}", s.listContent).Methods(http.MethodGet)
	api.HandleFunc("/content/{collection}/{id}", s.getContent).Methods(http.MethodGet)

	seed := api.PathPrefix("/seeding").Subrouter()
	seed.HandleFunc("/available-classes", s.availableClasses).Methods(http.MethodGet)
	seed.HandleFunc("/seed/bulk", s.seedBulk).Methods(http.MethodPost)
	seed.HandleFunc("/seed/all", s.seedAll).Methods(http.MethodPost)
	seed.HandleFunc("/seed/{className}", s.seedClass).Methods(http.MethodPost)
	seed.HandleFunc("/data", s.allSeededData).Methods(http.MethodGet)
	seed.HandleFunc("/data", s.clearAll).Methods(http.MethodDelete)
	seed.HandleFunc("/data/{className}", s.seededData).Methods(http.MethodGet)
	seed.HandleFunc("/data/{className}", s.clearClass).Methods(http.MethodDelete)
	seed.HandleFunc("/statistics", s.statistics).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusNotFound, "Not Found", "no route for "+req.URL.Path)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &domain.OpError{Op: "mockapi.listen", Kind: domain.KindInvalidConfig, Path: addr, Err: err}
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("mockapi.listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// --- middleware ---

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("mockapi.request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) slowDown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- schema ---

func (s *Server) listSchemas(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make([]domain.ModelSchema, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c.Schema)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Collection < out[j].Collection })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	schema, ok := s.schemaFor(collection)
	if !ok {
		// Like the real backend: 404 with no body.
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) listEnums(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.enums)
}

func (s *Server) schemaFor(collection string) (domain.ModelSchema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.classes {
		if c.Schema.Collection == collection {
			return c.Schema, true
		}
	}
	return domain.ModelSchema{}, false
}

// --- content ---

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	s.mu.RLock()
	items := append([]domain.ContentItem{}, s.content[collection]...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.content[vars["collection"]] {
		if id, _ := it["_id"].(string); id == vars["id"] {
			writeJSON(w, http.StatusOK, it)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// --- seeding ---

func (s *Server) availableClasses(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.available)
}

func (s *Server) seedClass(w http.ResponseWriter, r *http.Request) {
	className := mux.Vars(r)["className"]
	count, err := intParam(r, "count", domain.DefaultSeedCount)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	res, err := s.seed(className, count)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Reflection Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) seedBulk(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "countPerClass", domain.DefaultSeedCountPerClass)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Bad Request", "request body must be a JSON array of class names")
		return
	}
	writeJSON(w, http.StatusOK, s.seedMany(names, count))
}

func (s *Server) seedAll(w http.ResponseWriter, r *http.Request) {
	count, err := intParam(r, "countPerClass", domain.DefaultSeedCountPerClass)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	s.mu.RLock()
	names := append([]string(nil), s.available...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, s.seedMany(names, count))
}

func (s *Server) seedMany(names []string, count int) domain.BulkSeedResult {
	out := domain.BulkSeedResult{
		TotalClasses:    len(names),
		RecordsPerClass: count,
		Results:         make([]domain.SeedResult, 0, len(names)),
		Message:         fmt.Sprintf("Bulk seeding completed for %d classes", len(names)),
	}
	for _, name := range names {
		res, err := s.seed(name, count)
		if err != nil {
			s.log.Warn("mockapi.seed.failed", "class", name, "err", err)
			out.Results = append(out.Results, domain.SeedResult{ClassName: name, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out
}

// seed replaces the seeded records of className. The records are also
// served as the content of the class's collection.
func (s *Server) seed(className string, count int) (domain.SeedResult, error) {
	s.mu.RLock()
	class, ok := s.classes[className]
	s.mu.RUnlock()
	if !ok {
		return domain.SeedResult{}, fmt.Errorf("Class not found: %s", className)
	}

	data := s.gen.Records(class.Schema, count)

	s.mu.Lock()
	s.seeded[className] = data
	s.content[class.Schema.Collection] = data
	s.mu.Unlock()

	return domain.SeedResult{
		ClassName: className,
		Count:     count,
		Data:      data,
		Message:   fmt.Sprintf("Successfully generated %d sample records for %s", count, className),
	}, nil
}

func (s *Server) seededData(w http.ResponseWriter, r *http.Request) {
	className := mux.Vars(r)["className"]

	s.mu.RLock()
	data := append([]domain.ContentItem{}, s.seeded[className]...)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, data)
}

func (s *Server) allSeededData(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make(map[string][]domain.ContentItem, len(s.seeded))
	for k, v := range s.seeded {
		out[k] = v
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) clearClass(w http.ResponseWriter, r *http.Request) {
	className := mux.Vars(r)["className"]

	s.mu.Lock()
	delete(s.seeded, className)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.StatusMessage{Message: "Seeded data cleared for class: " + className})
}

func (s *Server) clearAll(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.seeded = map[string][]domain.ContentItem{}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.StatusMessage{Message: "All seeded data cleared"})
}

func (s *Server) statistics(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.SeedStatistics{
		TotalClasses:      len(s.available),
		SeededClasses:     len(s.seeded),
		AvailableClasses:  append([]string{}, s.available...),
		SeededClassesList: make([]string, 0, len(s.seeded)),
		RecordsPerClass:   make(map[string]int, len(s.seeded)),
	}
	for name, data := range s.seeded {
		stats.SeededClassesList = append(stats.SeededClassesList, name)
		stats.RecordsPerClass[name] = len(data)
		stats.TotalRecords += len(data)
	}
	sort.Strings(stats.SeededClassesList)

	writeJSON(w, http.StatusOK, stats)
}

// --- helpers ---

type errorBody struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, title, msg string) {
	writeJSON(w, status, errorBody{
		Status:    status,
		Error:     title,
		Message:   msg,
		Path:      r.URL.Path,
		Timestamp: s.now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
