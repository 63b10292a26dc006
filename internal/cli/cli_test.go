package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/mockapi"
)

func newMockBackend(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(mockapi.WithGenerator(mockapi.NewGenerator(mockapi.WithSeed(7)))))
	t.Cleanup(srv.Close)
	return srv.URL + mockapi.APIPrefix
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"dev", false},
		{"dev.yaml", false},
		{"./dev.yaml", true},
		{"env/dev.yaml", true},
		{"/abs/path/dev.yaml", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestHasYAMLExt(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"dev.yaml", true},
		{"dev.yml", true},
		{"DEV.YAML", true},
		{"dev.json", false},
		{"dev", false},
		{"", false},
	}
	for _, c := range cases {
		if got := hasYAMLExt(c.input); got != c.want {
			t.Errorf("hasYAMLExt(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- render ---

func TestRender_Formats(t *testing.T) {
	v := map[string]int{"a": 1}

	var buf bytes.Buffer
	if err := render(&buf, "json", v, nil); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || got["a"] != 1 {
		t.Fatalf("bad json output %q: %v", buf.String(), err)
	}

	buf.Reset()
	if err := render(&buf, "yaml", v, nil); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "a: 1" {
		t.Fatalf("bad yaml output %q", buf.String())
	}

	buf.Reset()
	called := false
	if err := render(&buf, "", v, func(io.Writer) error { called = true; return nil }); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !called {
		t.Fatalf("expected pretty printer for empty format")
	}

	if err := render(&buf, "xml", v, nil); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

// --- resolveBootstrapTarget ---

func TestResolveBootstrapTarget_Precedence(t *testing.T) {
	cfg := domain.DefaultConfig()
	env := domain.Environment{Vars: domain.Vars{domain.VarMongoURI: "mongodb://env:27017"}}

	got := resolveBootstrapTarget("", "", env, cfg)
	if got.URI != "mongodb://env:27017" || got.Database != domain.DefaultBootstrapDatabase {
		t.Fatalf("unexpected target %+v", got)
	}

	got = resolveBootstrapTarget("mongodb://flag:1", "other", env, cfg)
	if got.URI != "mongodb://flag:1" || got.Database != "other" {
		t.Fatalf("flags must win, got %+v", got)
	}

	got = resolveBootstrapTarget("", "", domain.Environment{}, cfg)
	if got.URI != cfg.Bootstrap.URI {
		t.Fatalf("expected config fallback, got %+v", got)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[strings.Fields(sub.Use)[0]] = true
	}
	for _, expected := range []string{"init", "version", "collections", "seed", "bootstrap", "mock", "envs"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
	for _, flag := range []string{"base-url", "env", "workspace", "debug", "format"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s flag", flag)
		}
	}
}

func TestCollectionsCmd_Subcommands(t *testing.T) {
	cmd := collectionsCmd(&globalFlags{})
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"list", "show", "export", "validate"} {
		if !names[expected] {
			t.Errorf("expected %q under collections", expected)
		}
	}
}

func TestSeedCmd_Subcommands(t *testing.T) {
	cmd := seedCmd(&globalFlags{})
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"classes", "class", "bulk", "all", "data", "stats", "clear"} {
		if !names[expected] {
			t.Errorf("expected %q under seed", expected)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag on init command")
	}
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

// --- end to end against the mock backend ---

func TestCollectionsList_JSON(t *testing.T) {
	base := newMockBackend(t)
	ws := t.TempDir()

	out, err := runCLI(t, "--workspace", ws, "--base-url", base, "--format", "json", "collections", "list")
	if err != nil {
		t.Fatalf("collections list: %v\n%s", err, out)
	}

	var got []domain.ModelSchema
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(got) != 3 || got[0].Collection != "cascade" {
		t.Fatalf("unexpected collections: %+v", got)
	}
}

func TestCollectionsList_NetworkError(t *testing.T) {
	srv := httptest.NewServer(mockapi.New())
	base := srv.URL + mockapi.APIPrefix
	srv.Close()

	_, err := runCLI(t, "--workspace", t.TempDir(), "--base-url", base, "collections", "list")
	if err == nil || !strings.Contains(err.Error(), "Network Error") {
		t.Fatalf("expected Network Error, got %v", err)
	}
}

func TestSeedThenShow(t *testing.T) {
	base := newMockBackend(t)
	ws := t.TempDir()

	out, err := runCLI(t, "--workspace", ws, "--base-url", base, "seed", "class", "PurchaseProduct", "--count", "2")
	if err != nil {
		t.Fatalf("seed class: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[OK] PurchaseProduct: 2 record(s)") {
		t.Fatalf("unexpected seed output:\n%s", out)
	}

	out, err = runCLI(t, "--workspace", ws, "--base-url", base, "--format", "yaml", "collections", "show", "purchaseproduct")
	if err != nil {
		t.Fatalf("collections show: %v\n%s", err, out)
	}
	var detail struct {
		Collection string               `yaml:"collection"`
		Schema     *domain.ModelSchema  `yaml:"schema"`
		Items      []domain.ContentItem `yaml:"items"`
	}
	if err := yaml.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if detail.Collection != "purchaseproduct" || detail.Schema == nil || len(detail.Items) != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	out, err = runCLI(t, "--workspace", ws, "--base-url", base, "collections", "show", "purchaseproduct", "--select", "name=$.name")
	if err != nil {
		t.Fatalf("collections show --select: %v\n%s", err, out)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 || !strings.Contains(lines[0], "name") {
		t.Fatalf("expected header plus 2 rows, got:\n%s", out)
	}
}

func TestSeedClass_UnknownClassFails(t *testing.T) {
	base := newMockBackend(t)

	_, err := runCLI(t, "--workspace", t.TempDir(), "--base-url", base, "seed", "class", "Nope")
	if err == nil || domain.StatusCode(err) != 400 {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestCollectionsShow_MissingCollection(t *testing.T) {
	base := newMockBackend(t)

	_, err := runCLI(t, "--workspace", t.TempDir(), "--base-url", base, "collections", "show", "skin")
	if err == nil || !strings.Contains(err.Error(), "Request failed with status code 404") {
		t.Fatalf("expected 404 message, got %v", err)
	}
}

func TestInitThenExport(t *testing.T) {
	base := newMockBackend(t)
	ws := t.TempDir()

	if out, err := runCLI(t, "init", "--path", ws); err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	out, err := runCLI(t, "--workspace", ws, "--base-url", base, "seed", "all", "-n", "1")
	if err == nil || !strings.Contains(err.Error(), "seeding failed for 1 class(es)") {
		t.Fatalf("expected Skin to fail the bulk seed, got %v", err)
	}
	if !strings.Contains(out, "[OK] Offer: 1 record(s)") || !strings.Contains(out, "[FAIL] Skin") {
		t.Fatalf("unexpected seed all output:\n%s", out)
	}

	out, err = runCLI(t, "--workspace", ws, "--base-url", base, "collections", "export", "offer")
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved export:") {
		t.Fatalf("unexpected export output:\n%s", out)
	}

	files, err := filepath.Glob(filepath.Join(ws, "exports", "*_offer.json"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one export file, got %v (err=%v)", files, err)
	}
	if _, err := os.Stat(filepath.Join(ws, "exports", "index.jsonl")); err != nil {
		t.Fatalf("expected export index: %v", err)
	}
}

func TestEnvsList(t *testing.T) {
	ws := t.TempDir()
	if _, err := runCLI(t, "init", "--path", ws); err != nil {
		t.Fatalf("init: %v", err)
	}

	out, err := runCLI(t, "--workspace", ws, "envs", "list")
	if err != nil {
		t.Fatalf("envs list: %v", err)
	}
	for _, want := range []string{"- dev", "- mock", "Default:   dev"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secrets") {
		t.Fatalf("secrets file must not be listed:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--workspace", t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "acectl ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestCollectionsValidate_SeededDataIsValid(t *testing.T) {
	base := newMockBackend(t)
	ws := t.TempDir()

	if _, err := runCLI(t, "--workspace", ws, "--base-url", base, "seed", "class", "Cascade", "-n", "3"); err != nil {
		t.Fatalf("seed class: %v", err)
	}

	out, err := runCLI(t, "--workspace", ws, "--base-url", base, "collections", "validate", "cascade")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "cascade (3 items)") || !strings.Contains(out, "OK") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}
}
