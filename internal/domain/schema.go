package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the `type` tag of a field definition as sent by the backend.
type FieldType string

const (
	FieldString  FieldType = "String"
	FieldNumber  FieldType = "Number"
	FieldBoolean FieldType = "Boolean"
	FieldEnum    FieldType = "Enum"
	FieldDate    FieldType = "Date"
	FieldObject  FieldType = "Object"
	FieldArray   FieldType = "Array"
)

var fieldTypes = []FieldType{
	FieldString, FieldNumber, FieldBoolean, FieldEnum, FieldDate, FieldObject, FieldArray,
}

// Normalize maps a tag onto its canonical spelling. The backend emits both
// "String" and "string"; unknown tags are returned unchanged.
func (t FieldType) Normalize() FieldType {
	s := strings.TrimSpace(string(t))
	for _, ft := range fieldTypes {
		if strings.EqualFold(s, string(ft)) {
			return ft
		}
	}
	return FieldType(s)
}

// Known reports whether the tag is one of the seven supported types.
func (t FieldType) Known() bool {
	n := t.Normalize()
	for _, ft := range fieldTypes {
		if n == ft {
			return true
		}
	}
	return false
}

// FieldKind classifies a FieldDefinition into its structural variant.
type FieldKind int

const (
	FieldKindUnknown FieldKind = iota
	FieldKindScalar
	FieldKindEnum
	FieldKindObject
	FieldKindArray
	FieldKindReference
)

func (k FieldKind) String() string {
	switch k {
	case FieldKindScalar:
		return "scalar"
	case FieldKindEnum:
		return "enum"
	case FieldKindObject:
		return "object"
	case FieldKindArray:
		return "array"
	case FieldKindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// FieldDefinition describes one field of a collection schema.
// Object fields nest through Fields, Array fields through Items.
type FieldDefinition struct {
	Type      FieldType                  `json:"type" yaml:"type"`
	EnumName  string                     `json:"enumName,omitempty" yaml:"enumName,omitempty"`
	Fields    map[string]FieldDefinition `json:"fields,omitempty" yaml:"fields,omitempty"`
	Items     *FieldDefinition           `json:"items,omitempty" yaml:"items,omitempty"`
	Reference string                     `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Kind returns the structural variant. A non-empty Reference wins over the
// type tag: a reference field is a pointer into another collection whatever
// its wire type is.
func (f FieldDefinition) Kind() FieldKind {
	if strings.TrimSpace(f.Reference) != "" {
		return FieldKindReference
	}
	switch f.Type.Normalize() {
	case FieldString, FieldNumber, FieldBoolean, FieldDate:
		return FieldKindScalar
	case FieldEnum:
		return FieldKindEnum
	case FieldObject:
		return FieldKindObject
	case FieldArray:
		return FieldKindArray
	default:
		return FieldKindUnknown
	}
}

// Describe renders a one-line summary such as "Array<Object>" or "Enum(Requirement)".
func (f FieldDefinition) Describe() string {
	t := string(f.Type.Normalize())
	if t == "" {
		t = "?"
	}
	switch f.Type.Normalize() {
	case FieldEnum:
		if f.EnumName != "" {
			t = fmt.Sprintf("%s(%s)", t, f.EnumName)
		}
	case FieldArray:
		if f.Items != nil {
			t = fmt.Sprintf("%s<%s>", t, f.Items.Describe())
		}
	}
	if f.Reference != "" {
		t += " -> " + f.Reference
	}
	return t
}

// ModelSchema is the schema of one collection (GET /schema/{collection}).
type ModelSchema struct {
	Collection  string                     `json:"collection" yaml:"collection"`
	DisplayName string                     `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Fields      map[string]FieldDefinition `json:"fields" yaml:"fields"`
}

// Title returns the display name, falling back to the collection name.
func (s ModelSchema) Title() string {
	if strings.TrimSpace(s.DisplayName) != "" {
		return s.DisplayName
	}
	return s.Collection
}

// WalkFunc is called for every field reached by Walk. Returning an error stops the walk.
type WalkFunc func(path string, depth int, f FieldDefinition) error

// Walk visits every field depth-first in name order. Nested object fields get
// dotted paths ("rewards.amount"); array items get a "[]" suffix ("steps[]").
func (s ModelSchema) Walk(fn WalkFunc) error {
	return walkFields(s.Fields, "", 0, fn)
}

func walkFields(fields map[string]FieldDefinition, prefix string, depth int, fn WalkFunc) error {
	for _, name := range SortedFieldNames(fields) {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if err := walkField(path, depth, fields[name], fn); err != nil {
			return err
		}
	}
	return nil
}

func walkField(path string, depth int, f FieldDefinition, fn WalkFunc) error {
	if err := fn(path, depth, f); err != nil {
		return err
	}
	if len(f.Fields) > 0 {
		if err := walkFields(f.Fields, path, depth+1, fn); err != nil {
			return err
		}
	}
	if f.Items != nil {
		if err := walkField(path+"[]", depth+1, *f.Items, fn); err != nil {
			return err
		}
	}
	return nil
}

// References lists the distinct collections referenced anywhere in the schema, sorted.
func (s ModelSchema) References() []string {
	seen := map[string]bool{}
	_ = s.Walk(func(_ string, _ int, f FieldDefinition) error {
		if r := strings.TrimSpace(f.Reference); r != "" {
			seen[r] = true
		}
		return nil
	})

	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// SortedFieldNames returns the keys of fields in ascending order.
func SortedFieldNames(fields map[string]FieldDefinition) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ContentItem is one record of a collection. The client does not enforce a shape.
type ContentItem map[string]any
