package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindTransport, domain.KindHTTPStatus:
			return domain.Message(err)

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "yamlenv") {
				return "Environment not found"
			}
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindExecution:
			if oe.Path != "" {
				return "Could not write " + filepath.Base(oe.Path)
			}
			return "Unexpected error (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if errors.Is(err, domain.ErrNoSelection) {
		return "Select a collection first"
	}
	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" && len(msg) <= 80 {
		return msg
	}
	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
