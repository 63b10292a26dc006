package domain

// Default record counts used by the seeding endpoints when the caller passes
// a non-positive count.
const (
	DefaultSeedCount         = 5
	DefaultSeedCountPerClass = 3
)

// SeedResult is the outcome of seeding one class.
// Error is set (and Data empty) when the backend could not seed the class
// as part of a bulk request.
type SeedResult struct {
	ClassName string        `json:"className" yaml:"className"`
	Count     int           `json:"count,omitempty" yaml:"count,omitempty"`
	Data      []ContentItem `json:"data,omitempty" yaml:"data,omitempty"`
	Message   string        `json:"message,omitempty" yaml:"message,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the backend rejected this class.
func (r SeedResult) Failed() bool { return r.Error != "" }

// BulkSeedResult is returned by the bulk and seed-all endpoints.
type BulkSeedResult struct {
	TotalClasses    int          `json:"totalClasses" yaml:"totalClasses"`
	RecordsPerClass int          `json:"recordsPerClass" yaml:"recordsPerClass"`
	Results         []SeedResult `json:"results" yaml:"results"`
	Message         string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// Failures returns the per-class results that carry an error.
func (b BulkSeedResult) Failures() []SeedResult {
	var out []SeedResult
	for _, r := range b.Results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// SeedStatistics summarizes what the backend currently holds in its seed store.
type SeedStatistics struct {
	TotalClasses      int            `json:"totalClasses" yaml:"totalClasses"`
	SeededClasses     int            `json:"seededClasses" yaml:"seededClasses"`
	AvailableClasses  []string       `json:"availableClasses" yaml:"availableClasses"`
	SeededClassesList []string       `json:"seededClassesList" yaml:"seededClassesList"`
	TotalRecords      int            `json:"totalRecords" yaml:"totalRecords"`
	RecordsPerClass   map[string]int `json:"recordsPerClass" yaml:"recordsPerClass"`
}

// StatusMessage is the body of the clear endpoints.
type StatusMessage struct {
	Message string `json:"message" yaml:"message"`
}
