package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// renderDetail prints the schema tree followed by one compact line per item.
func renderDetail(st browse.CollectionDetailState, theme Theme, width int) string {
	var b strings.Builder

	b.WriteString("Schema\n")
	b.WriteString(renderSchema(st.Schema, theme))

	if st.Schema != nil {
		if refs := st.Schema.References(); len(refs) > 0 {
			b.WriteString("References: " + strings.Join(refs, ", ") + "\n")
		}
	}

	b.WriteString(fmt.Sprintf("\nItems (%d)\n", len(st.Items)))
	if len(st.Items) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, it := range st.Items {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, clampString(itemSummary(it), width-6)))
	}
	return b.String()
}

func renderSchema(schema *domain.ModelSchema, theme Theme) string {
	if schema == nil || len(schema.Fields) == 0 {
		return "  (no fields)\n"
	}

	var b strings.Builder
	_ = schema.Walk(func(path string, depth int, f domain.FieldDefinition) error {
		name := path
		if i := strings.LastIndex(path, "."); i >= 0 {
			name = path[i+1:]
		}
		b.WriteString("  " + strings.Repeat("  ", depth))
		b.WriteString(theme.Field.Render(name))
		b.WriteString(": " + f.Describe() + "\n")
		return nil
	})
	return b.String()
}

// itemSummary renders an item as compact JSON with _id first when present.
func itemSummary(it domain.ContentItem) string {
	rest := make(map[string]any, len(it))
	for k, v := range it {
		if k != "_id" {
			rest[k] = v
		}
	}
	body, err := json.Marshal(rest)
	if err != nil {
		body = []byte(fmt.Sprintf("%v", rest))
	}

	if id, ok := it["_id"]; ok {
		return fmt.Sprintf("%v %s", id, body)
	}
	return string(body)
}

// scrollLines returns at most height lines of s starting at offset.
func scrollLines(s string, offset, height int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if offset > len(lines)-1 {
		offset = max(len(lines)-1, 0)
	}
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}
