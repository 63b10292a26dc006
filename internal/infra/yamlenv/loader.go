package yamlenv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// Loader reads environment profiles from <root>/<envDir>/<name>.yaml. An
// optional secrets file next to the profiles overrides their vars, which
// keeps credentials such as mongo_uri out of version control.
type Loader struct {
	rootDir     string
	envDir      string
	secretsFile string
}

type Option func(*Loader)

func WithEnvDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.envDir = dir
		}
	}
}

func WithSecretsFile(name string) Option {
	return func(l *Loader) { l.secretsFile = name }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     root,
		envDir:      "env",
		secretsFile: "secrets.local.yaml",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ ports.EnvironmentLoader  = (*Loader)(nil)
	_ ports.EnvironmentCatalog = (*Loader)(nil)
)

// LoadEnvironment accepts either an env name (e.g., "dev") or a path to a YAML file.
func (l *Loader) LoadEnvironment(nameOrPath string) (domain.Environment, error) {
	envPath, envName := l.resolve(nameOrPath)

	base, err := readVars(envPath)
	if err != nil {
		return domain.Environment{}, err
	}

	secrets, err := readVarsOptional(filepath.Join(filepath.Dir(envPath), l.secretsFile))
	if err != nil {
		return domain.Environment{}, err
	}

	return domain.Environment{
		Name: envName,
		Vars: domain.Merge(base, secrets),
	}, nil
}

// ListEnvironments returns every profile under the env directory of root,
// sorted by name. The secrets file is not a profile.
func (l *Loader) ListEnvironments(root string) ([]domain.EnvironmentRef, error) {
	if root == "" {
		root = l.rootDir
	}
	dir := filepath.Join(root, l.envDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.EnvironmentRef{}, nil
		}
		return nil, &domain.OpError{Op: "yamlenv.list", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	refs := []domain.EnvironmentRef{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == l.secretsFile || !isYAML(name) {
			continue
		}
		refs = append(refs, domain.EnvironmentRef{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (l *Loader) resolve(nameOrPath string) (path, name string) {
	if isYAML(nameOrPath) || strings.ContainsRune(nameOrPath, filepath.Separator) {
		path = filepath.Clean(nameOrPath)
		return path, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	base := filepath.Join(l.rootDir, l.envDir, nameOrPath)
	for _, ext := range []string{".yaml", ".yml"} {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, nameOrPath
		}
	}
	return base + ".yaml", nameOrPath
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

type yamlEnv struct {
	Vars map[string]string `yaml:"vars"`
}

func readVars(path string) (domain.Vars, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlenv.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlEnv
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlenv.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Vars == nil {
		y.Vars = map[string]string{}
	}
	return domain.Vars(y.Vars), nil
}

func readVarsOptional(path string) (domain.Vars, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return domain.Vars{}, nil
		}
		return nil, &domain.OpError{
			Op:   "yamlenv.secrets",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	v, err := readVars(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return v, nil
}
