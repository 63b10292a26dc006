package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// ValidateContent checks the items of a collection against the collection's
// schema without changing anything on the backend. Null and missing values
// are accepted; fields absent from the schema are ignored.
type ValidateContent struct {
	api ports.CollectionsAPI
}

func NewValidateContent(api ports.CollectionsAPI) *ValidateContent {
	return &ValidateContent{api: api}
}

func (uc *ValidateContent) Execute(ctx context.Context, collection string) (domain.ValidationReport, error) {
	if collection == "" {
		return domain.ValidationReport{}, domain.ErrNoSelection
	}

	schema, err := uc.api.GetSchema(ctx, collection)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	items, err := uc.api.ListContent(ctx, collection)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	report := domain.ValidationReport{
		Collection: collection,
		Items:      len(items),
		Issues:     []domain.ContentIssue{},
	}
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Issues = append(report.Issues, checkFields(i, "", schema.Fields, map[string]any(it))...)
	}
	return report, nil
}

func checkFields(item int, prefix string, fields map[string]domain.FieldDefinition, obj map[string]any) []domain.ContentIssue {
	var out []domain.ContentIssue
	for _, name := range domain.SortedFieldNames(fields) {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		out = append(out, checkValue(item, path, fields[name], obj[name])...)
	}
	return out
}

func checkValue(item int, path string, f domain.FieldDefinition, v any) []domain.ContentIssue {
	if v == nil {
		return nil
	}

	mismatch := func() []domain.ContentIssue {
		return []domain.ContentIssue{{Item: item, Path: path, Expected: f.Describe(), Got: jsonKind(v)}}
	}

	switch f.Type.Normalize() {
	case domain.FieldString, domain.FieldEnum:
		if _, ok := v.(string); !ok {
			return mismatch()
		}
	case domain.FieldNumber:
		if !isNumber(v) {
			return mismatch()
		}
	case domain.FieldBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch()
		}
	case domain.FieldDate:
		// Epoch milliseconds or an ISO string.
		if _, ok := v.(string); !ok && !isNumber(v) {
			return mismatch()
		}
	case domain.FieldObject:
		obj, ok := asObject(v)
		if !ok {
			return mismatch()
		}
		return checkFields(item, path, f.Fields, obj)
	case domain.FieldArray:
		arr, ok := v.([]any)
		if !ok {
			return mismatch()
		}
		if f.Items == nil {
			return nil
		}
		var out []domain.ContentIssue
		for i, el := range arr {
			out = append(out, checkValue(item, fmt.Sprintf("%s[%d]", path, i), *f.Items, el)...)
		}
		return out
	}
	return nil
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case domain.ContentItem:
		return map[string]any(t), true
	}
	return nil, false
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return true
	}
	return false
}

func jsonKind(v any) string {
	if isNumber(v) {
		return "number"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	}
	if _, ok := asObject(v); ok {
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
