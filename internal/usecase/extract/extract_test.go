package extract

import (
	"errors"
	"testing"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

func sampleItems() []domain.ContentItem {
	return []domain.ContentItem{
		{
			"_id":   "p1",
			"name":  "Demo Product 4",
			"price": 9.99,
			"requirements": []any{
				map[string]any{"requirement": "minLevel", "value": 10},
			},
		},
		{
			"_id":  "p2",
			"name": "Mock Skin 12",
		},
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"title=$.name", "$.price", "  "})
	if err != nil {
		t.Fatalf("ParseRules error: %v", err)
	}
	if rules["title"] != "$.name" {
		t.Fatalf("expected title=$.name, got %q", rules["title"])
	}
	if rules["$.price"] != "$.price" {
		t.Fatalf("expected bare expression as column, got %v", rules)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
}

func TestParseRules_FilterExpressionKeepsEquals(t *testing.T) {
	rules, err := ParseRules([]string{`$.requirements[?(@.requirement=="minLevel")].value`})
	if err != nil {
		t.Fatalf("ParseRules error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %v", rules)
	}
}

func TestParseRules_Errors(t *testing.T) {
	if _, err := ParseRules([]string{"title="}); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for empty expr, got %v", err)
	}
	if _, err := ParseRules([]string{"a=$.x", "a=$.y"}); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for duplicate column, got %v", err)
	}
}

func TestProject_ValuesPerItem(t *testing.T) {
	rows, err := Project(sampleItems(), Rules{
		"id":    "$._id",
		"price": "$.price",
		"level": "$.requirements[0].value",
	})
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Values["id"] != "p1" || first.Values["price"] != "9.99" || first.Values["level"] != "10" {
		t.Fatalf("unexpected first row: %+v", first.Values)
	}
	if first.Failed() {
		t.Fatalf("expected first row to succeed: %+v", first.Results)
	}

	second := rows[1]
	if second.Values["id"] != "p2" {
		t.Fatalf("unexpected second row: %+v", second.Values)
	}
	if _, ok := second.Values["price"]; ok {
		t.Fatalf("expected no price on second row")
	}
	if !second.Failed() {
		t.Fatalf("expected second row to report misses")
	}
}

func TestApply_ResultsInColumnOrder(t *testing.T) {
	doc := map[string]any{"name": "alice"}
	_, results := Apply(doc, Rules{"bbb": "", "aaa": "$.name"})
	if len(results) != 2 || results[0].Name != "aaa" || results[1].Name != "bbb" {
		t.Fatalf("unexpected results order: %+v", results)
	}
	if !results[0].Success || results[1].Success {
		t.Fatalf("unexpected outcomes: %+v", results)
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	values, results := Apply(map[string]any{"token": "abc"}, Rules{"t": "$.token["})
	if len(values) != 0 {
		t.Fatalf("expected no values, got %v", values)
	}
	if len(results) != 1 || results[0].Success {
		t.Fatalf("expected failure, got %+v", results)
	}
}

func TestApply_NullIsMissing(t *testing.T) {
	_, results := Apply(map[string]any{"name": nil}, Rules{"name": "$.name"})
	if results[0].Success {
		t.Fatalf("expected null to count as missing")
	}
}

func TestApply_ObjectAndWildcard(t *testing.T) {
	doc := map[string]any{
		"meta": map[string]any{"k": "v"},
		"tags": []any{"a", "b"},
	}
	values, _ := Apply(doc, Rules{"meta": "$.meta", "tags": "$.tags[*]"})
	if values["meta"] != `{"k":"v"}` {
		t.Fatalf("unexpected meta %q", values["meta"])
	}
	if values["tags"] != `["a","b"]` {
		t.Fatalf("unexpected tags %q", values["tags"])
	}
}
