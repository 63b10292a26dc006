package domain

import "fmt"

// ContentIssue is one value that does not match its field definition.
type ContentIssue struct {
	Item     int    `json:"item" yaml:"item"`
	Path     string `json:"path" yaml:"path"`
	Expected string `json:"expected" yaml:"expected"`
	Got      string `json:"got" yaml:"got"`
}

func (i ContentIssue) String() string {
	return fmt.Sprintf("items[%d].%s: expected %s, got %s", i.Item, i.Path, i.Expected, i.Got)
}

// ValidationReport is the result of checking a collection's items against its schema.
type ValidationReport struct {
	Collection string         `json:"collection" yaml:"collection"`
	Items      int            `json:"items" yaml:"items"`
	Issues     []ContentIssue `json:"issues" yaml:"issues"`
}

// OK reports whether every item matched the schema.
func (r ValidationReport) OK() bool { return len(r.Issues) == 0 }
