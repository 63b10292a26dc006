// Package extract projects collection items onto JSONPath columns, as used by
// `collections show --select`.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// Rules maps an output column to a JSONPath expression evaluated per item.
type Rules map[string]string

// Result reports how one rule fared on one item.
type Result struct {
	Name    string
	Success bool
	Message string
}

// Row is the projection of a single item. Values only holds the columns
// that produced a value.
type Row struct {
	Index   int
	Values  map[string]string
	Results []Result
}

// Failed reports whether any rule missed on this row.
func (r Row) Failed() bool {
	for _, res := range r.Results {
		if !res.Success {
			return true
		}
	}
	return false
}

// ParseRules turns --select arguments into Rules. Each argument is either
// "column=$.expr" or a bare "$.expr", which is also used as the column name.
func ParseRules(args []string) (Rules, error) {
	rules := Rules{}
	for _, raw := range args {
		arg := strings.TrimSpace(raw)
		if arg == "" {
			continue
		}

		name, expr := arg, arg
		if i := strings.Index(arg, "="); i > 0 && !strings.HasPrefix(arg, "$") {
			name = strings.TrimSpace(arg[:i])
			expr = strings.TrimSpace(arg[i+1:])
		}
		if expr == "" {
			return nil, &domain.OpError{
				Op:   "extract.parse",
				Kind: domain.KindInvalidConfig,
				Path: raw,
				Err:  fmt.Errorf("%w: empty jsonpath expression", domain.ErrInvalidConfig),
			}
		}
		if _, dup := rules[name]; dup {
			return nil, &domain.OpError{
				Op:   "extract.parse",
				Kind: domain.KindInvalidConfig,
				Path: raw,
				Err:  fmt.Errorf("%w: duplicate column %q", domain.ErrInvalidConfig, name),
			}
		}
		rules[name] = expr
	}
	return rules, nil
}

// Columns returns the rule names in output order.
func (r Rules) Columns() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Project evaluates rules against every item. A rule that fails on one item
// is reported on that row; other rules and items still run.
func Project(items []domain.ContentItem, rules Rules) ([]Row, error) {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		doc, err := normalize(item)
		if err != nil {
			return nil, &domain.OpError{Op: "extract.project", Kind: domain.KindDecode, Err: err}
		}
		values, results := Apply(doc, rules)
		rows = append(rows, Row{Index: i, Values: values, Results: results})
	}
	return rows, nil
}

// Apply evaluates rules against one decoded JSON document.
func Apply(doc any, rules Rules) (map[string]string, []Result) {
	values := map[string]string{}
	results := make([]Result, 0, len(rules))

	for _, name := range rules.Columns() {
		expr := strings.TrimSpace(rules[name])
		if expr == "" {
			results = append(results, Result{
				Name:    name,
				Message: fmt.Sprintf("select %q: empty jsonpath expression", name),
			})
			continue
		}

		val, err := jsonpath.Get(expr, doc)
		if err != nil {
			results = append(results, Result{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): jsonpath error: %v", name, expr, err),
			})
			continue
		}
		if isEmptyValue(val) {
			results = append(results, Result{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): no value found", name, expr),
			})
			continue
		}

		s, err := toString(val)
		if err != nil {
			results = append(results, Result{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): cannot convert value to string: %v", name, expr, err),
			})
			continue
		}

		values[name] = s
		results = append(results, Result{Name: name, Success: true})
	}

	return values, results
}

// normalize converts an item into the plain JSON shapes jsonpath walks.
func normalize(item domain.ContentItem) (any, error) {
	b, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// Wildcards and index access return slices; a single match is unwrapped.
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
