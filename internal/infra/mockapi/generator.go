package mockapi

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

var (
	namePrefixes = []string{"Sample", "Test", "Demo", "Example", "Mock"}
	nameSuffixes = []string{"Item", "Product", "Offer", "Cascade", "Skin", "Tile"}
	currencies   = []string{"USD", "EUR", "TRY", "GBP", "JPY"}
)

const dateSpread = 30 * 24 * time.Hour

// Generator produces sample records from a schema. Field names drive the
// value first (ids, dates, names, prices, currencies); the type tag decides
// the rest.
type Generator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	now   func() time.Time
	newID func() string
	enums map[string][]string
}

type GeneratorOption func(*Generator)

// WithSeed makes the generated values reproducible.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) { g.rnd = rand.New(rand.NewSource(seed)) }
}

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

func WithIDFunc(fn func() string) GeneratorOption {
	return func(g *Generator) { g.newID = fn }
}

func WithEnums(enums map[string][]string) GeneratorOption {
	return func(g *Generator) { g.enums = enums }
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		newID: uuid.NewString,
		enums: DefaultEnums(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Record generates one item for schema.
func (g *Generator) Record(schema domain.ModelSchema) domain.ContentItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.object(schema.Fields)
}

// Records generates count items for schema.
func (g *Generator) Records(schema domain.ModelSchema, count int) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.Record(schema))
	}
	return out
}

func (g *Generator) object(fields map[string]domain.FieldDefinition) domain.ContentItem {
	item := domain.ContentItem{}
	for _, name := range domain.SortedFieldNames(fields) {
		item[name] = g.field(name, fields[name])
	}
	return item
}

func (g *Generator) field(name string, f domain.FieldDefinition) any {
	lower := strings.ToLower(name)
	t := f.Type.Normalize()

	switch {
	case lower == "_id" || lower == "id":
		return g.newID()
	case strings.Contains(lower, "date") || strings.Contains(lower, "time"):
		return g.date()
	case strings.Contains(lower, "name"):
		return g.name()
	case strings.Contains(lower, "price"):
		return g.price()
	case strings.Contains(lower, "currency"):
		return currencies[g.rnd.Intn(len(currencies))]
	}

	switch t {
	case domain.FieldString:
		if strings.Contains(lower, "id") {
			return fmt.Sprintf("id_%d", g.rnd.Intn(1000))
		}
		return fmt.Sprintf("sample_%s_%d", lower, g.rnd.Intn(1000))
	case domain.FieldNumber:
		if strings.Contains(lower, "id") {
			return 1 + g.rnd.Intn(999)
		}
		return 1 + g.rnd.Intn(99)
	case domain.FieldBoolean:
		return g.rnd.Intn(2) == 1
	case domain.FieldDate:
		return g.date()
	case domain.FieldEnum:
		return g.enum(f.EnumName)
	case domain.FieldObject:
		return g.object(f.Fields)
	case domain.FieldArray:
		return g.array(f.Items)
	}
	return nil
}

func (g *Generator) array(items *domain.FieldDefinition) []any {
	out := []any{}
	if items == nil {
		return out
	}
	n := 1 + g.rnd.Intn(3)
	for i := 0; i < n; i++ {
		out = append(out, g.element(*items))
	}
	return out
}

// element generates an array item. Item definitions carry no field name, so
// only the type tag applies.
func (g *Generator) element(f domain.FieldDefinition) any {
	switch f.Type.Normalize() {
	case domain.FieldString:
		return fmt.Sprintf("sample_%d", g.rnd.Intn(1000))
	case domain.FieldNumber:
		return 1 + g.rnd.Intn(99)
	case domain.FieldBoolean:
		return g.rnd.Intn(2) == 1
	case domain.FieldDate:
		return g.date()
	case domain.FieldEnum:
		return g.enum(f.EnumName)
	case domain.FieldObject:
		return g.object(f.Fields)
	case domain.FieldArray:
		return g.array(f.Items)
	}
	return nil
}

// date returns epoch milliseconds within ±30 days of now.
func (g *Generator) date() int64 {
	offset := time.Duration(g.rnd.Int63n(int64(2*dateSpread))) - dateSpread
	return g.now().Add(offset).UnixMilli()
}

func (g *Generator) name() string {
	return fmt.Sprintf("%s %s %d",
		namePrefixes[g.rnd.Intn(len(namePrefixes))],
		nameSuffixes[g.rnd.Intn(len(nameSuffixes))],
		1+g.rnd.Intn(100),
	)
}

// price is in [1, 100) rounded to cents.
func (g *Generator) price() float64 {
	p := 1 + g.rnd.Float64()*99
	return math.Round(p*100) / 100
}

func (g *Generator) enum(name string) any {
	values := g.enums[name]
	if len(values) == 0 {
		return nil
	}
	return values[g.rnd.Intn(len(values))]
}
