package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/apiclient"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/logger"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/workspacefinder"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/yamlenv"
)

var errNoWorkspace = errors.New("workspace not found (tip: run `acectl init`)")

// session is everything a command needs to talk to the backend. root is
// empty when no workspace was found; config and env then fall back to
// defaults.
type session struct {
	root string
	cfg  domain.Config
	env  domain.Environment
	envs *yamlenv.Loader
	api  *apiclient.Client
}

func openSession(g *globalFlags) (*session, error) {
	s := &session{cfg: domain.DefaultConfig()}

	root, err := resolveWorkspaceRoot(g.workspace)
	switch {
	case err == nil:
		s.root = root
	case strings.TrimSpace(g.workspace) != "":
		return nil, err
	}

	if s.root != "" {
		cfg, err := workspacefinder.LoadConfig(s.root)
		if err != nil && !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		s.cfg = cfg

		s.envs = yamlenv.NewLoader(s.root, yamlenv.WithEnvDir(s.cfg.Paths.EnvironmentsDir))
		env, err := s.loadEnvironment(g.env)
		if err != nil {
			return nil, err
		}
		s.env = env
	} else if strings.TrimSpace(g.env) != "" {
		return nil, fmt.Errorf("--env %q needs a workspace: %w", g.env, errNoWorkspace)
	}

	base := domain.ResolveBaseURL(g.baseURL, s.env, s.cfg)
	api, err := apiclient.New(base, apiclient.WithLogger(logger.L()))
	if err != nil {
		return nil, err
	}
	s.api = api

	logger.L().Debug("session.open", "workspace", s.root, "env", s.env.Name, "base_url", api.BaseURL())
	return s, nil
}

// loadEnvironment loads the requested profile. A missing default profile is
// not an error; a missing explicit one is.
func (s *session) loadEnvironment(arg string) (domain.Environment, error) {
	name := strings.TrimSpace(arg)
	explicit := name != ""
	if !explicit {
		name = s.cfg.Defaults.Environment
	}
	if name == "" {
		return domain.Environment{}, nil
	}

	switch {
	case looksLikePath(name):
		if !filepath.IsAbs(name) {
			name = filepath.Join(s.root, name)
		}
	case hasYAMLExt(name):
		name = filepath.Join(s.root, s.cfg.Paths.EnvironmentsDir, name)
	}

	env, err := s.envs.LoadEnvironment(name)
	if err != nil {
		if !explicit && domain.IsKind(err, domain.KindNotFound) {
			return domain.Environment{}, nil
		}
		return domain.Environment{}, err
	}
	return env, nil
}

func (s *session) requireWorkspace() error {
	if s.root == "" {
		return errNoWorkspace
	}
	return nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNoWorkspace, err)
	}
	return root, nil
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}
