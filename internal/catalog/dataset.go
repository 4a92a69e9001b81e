package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/gorewood/ismism/internal/code"
)

// ErrNotFound is returned when no record has the requested code or name.
var ErrNotFound = errors.New("ism not found")

// DefaultRelatedLimit is the number of related records returned when no
// positive limit is given.
const DefaultRelatedLimit = 4

// Dataset is an ordered, immutable set of records with unique codes.
// All methods are safe for concurrent use.
type Dataset struct {
	isms   []*Ism
	byCode map[string]int
	byName map[string]int
}

// New builds a Dataset from records in the given order.
// Every record must validate and codes must be unique.
// The slice is copied; records themselves are shared and must not be
// modified afterwards.
func New(isms []*Ism) (*Dataset, error) {
	ds := &Dataset{
		isms:   slices.Clone(isms),
		byCode: make(map[string]int, len(isms)),
		byName: make(map[string]int, len(isms)),
	}

	var duplicates []string
	for idx, ism := range ds.isms {
		if ism == nil {
			return nil, &ValidationError{Message: fmt.Sprintf("record %d is null", idx)}
		}
		if err := ism.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", idx, ism.Code, err)
		}
		if _, exists := ds.byCode[ism.Code]; exists {
			duplicates = append(duplicates, ism.Code)
			continue
		}
		ds.byCode[ism.Code] = idx
		ds.indexName(ism.Name, idx)
		for _, alias := range ism.Aliases {
			ds.indexName(alias, idx)
		}
	}

	if len(duplicates) > 0 {
		return nil, &ValidationError{
			Fields:  duplicates,
			Message: "duplicate codes",
		}
	}
	return ds, nil
}

// MustNew is New for fixtures known to be valid. It panics otherwise.
func MustNew(isms []*Ism) *Dataset {
	ds, err := New(isms)
	if err != nil {
		panic(err)
	}
	return ds
}

// indexName records the first record carrying a name or alias.
func (d *Dataset) indexName(name string, idx int) {
	key := nameKey(name)
	if key == "" {
		return
	}
	if _, taken := d.byName[key]; !taken {
		d.byName[key] = idx
	}
}

// nameKey normalizes a name for lookup: NFKC folds full-width forms typed by
// CJK input methods, case folding covers latin aliases.
func nameKey(name string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(name)))
}

// Len returns the number of records. A nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.isms)
}

// All returns the records in dataset order. The returned slice is a copy.
func (d *Dataset) All() []*Ism {
	return slices.Clone(d.isms)
}

// Get returns the record with exactly this code.
func (d *Dataset) Get(c string) (*Ism, bool) {
	idx, ok := d.byCode[c]
	if !ok {
		return nil, false
	}
	return d.isms[idx], true
}

// Lookup finds a record by exact code, then by name or alias.
// Names are compared after Unicode normalization and case folding.
func (d *Dataset) Lookup(term string) (*Ism, error) {
	term = strings.TrimSpace(term)
	if ism, ok := d.Get(term); ok {
		return ism, nil
	}
	if idx, ok := d.byName[nameKey(term)]; ok {
		return d.isms[idx], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, term)
}

// Search returns every record whose code matches query, in dataset order.
// A malformed query returns no records.
func (d *Dataset) Search(query string) []*Ism {
	return code.Filter(query, d.isms, codeOf)
}

// Related returns records sharing the first two segments of c, excluding c
// itself, in dataset order. At most limit records are returned;
// DefaultRelatedLimit applies when limit <= 0. c need not be in the dataset.
func (d *Dataset) Related(c string, limit int) []*Ism {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	parts := strings.SplitN(c, code.Delimiter, 3)
	if len(parts) < 2 {
		return nil
	}
	prefix := parts[0] + code.Delimiter + parts[1] + code.Delimiter

	var result []*Ism
	for _, ism := range d.isms {
		if ism.Code == c || !strings.HasPrefix(ism.Code, prefix) {
			continue
		}
		result = append(result, ism)
		if len(result) == limit {
			break
		}
	}
	return result
}

func codeOf(ism *Ism) string {
	return ism.Code
}
