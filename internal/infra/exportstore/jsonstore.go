package exportstore

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

const defaultExportsDir = "exports"
const maskValue = "********"

// JSONStore writes one pretty-printed JSON file per export.
type JSONStore struct {
	rootDir        string
	exportsDirName string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a JSONL index: exports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ExportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultExportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		exportsDirName: dir,
		maskingEnabled: cfg.Masking.Enabled,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ExportStore = (*JSONStore)(nil)

// Dir returns the directory exports are written to.
func (s *JSONStore) Dir() string {
	return filepath.Join(s.rootDir, s.exportsDirName)
}

func (s *JSONStore) SaveExport(export domain.ExportArtifact) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "exportstore.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	ts := export.FetchedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	slug := slugify(export.Collection)
	if slug == "" {
		slug = "export"
	}
	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	toSave := export
	toSave.ID = id
	toSave.FetchedAt = ts
	if toSave.Items == nil {
		toSave.Items = []domain.ContentItem{}
	}
	if s.maskingEnabled {
		toSave = maskExport(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "exportstore.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	// tmp then rename, so readers never see a half-written file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{Op: "exportstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{Op: "exportstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, filename, toSave)
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir, filename string, export domain.ExportArtifact) error {
	type idx struct {
		ID         string    `json:"id"`
		File       string    `json:"file"`
		Collection string    `json:"collection"`
		BaseURL    string    `json:"base_url"`
		Items      int       `json:"items"`
		FetchedAt  time.Time `json:"fetched_at"`
	}
	line, err := json.Marshal(idx{
		ID:         export.ID,
		File:       filename,
		Collection: export.Collection,
		BaseURL:    export.BaseURL,
		Items:      len(export.Items),
		FetchedAt:  export.FetchedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "index.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// maskExport returns a masked copy (does NOT mutate the input).
func maskExport(in domain.ExportArtifact) domain.ExportArtifact {
	out := in
	out.BaseURL = maskURL(in.BaseURL)
	out.Items = make([]domain.ContentItem, 0, len(in.Items))
	for _, it := range in.Items {
		out.Items = append(out.Items, domain.ContentItem(maskMap(it)))
	}
	return out
}

func maskMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			out[k] = maskValue
			continue
		}
		out[k] = maskAny(v)
	}
	return out
}

func maskAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return maskMap(t)
	case domain.ContentItem:
		return domain.ContentItem(maskMap(t))
	case []any:
		cp := make([]any, len(t))
		for i := range t {
			cp[i] = maskAny(t[i])
		}
		return cp
	default:
		return v
	}
}

func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), maskValue)
	}
	return u.String()
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(k)
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password") ||
		strings.Contains(kk, "apikey") ||
		strings.Contains(kk, "api_key")
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
