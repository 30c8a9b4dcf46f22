package catalogs

import (
	"github.com/harborline/mariner/internal/validation"
	"github.com/harborline/mariner/pkg/errors"
)

// Store is an immutable, ordered collection of records that all belong to
// one taxonomy. Stores are safe for concurrent use because nothing mutates
// them after NewStore returns.
type Store struct {
	name     string
	taxonomy *Taxonomy
	records  []Record
	index    map[string]int
}

// NewStore checks the authoring contract and builds a store. Every record
// needs a unique id, a title and a category from the taxonomy.
func NewStore(name string, taxonomy *Taxonomy, records []Record) (*Store, error) {
	if taxonomy == nil {
		return nil, errors.NewValidationError("taxonomy", nil, "is required")
	}
	if err := taxonomy.Validate(); err != nil {
		return nil, err
	}

	v := validation.New()
	s := &Store{
		name:     name,
		taxonomy: taxonomy,
		records:  make([]Record, 0, len(records)),
		index:    make(map[string]int, len(records)),
	}

	for _, r := range records {
		if err := v.Validate(r); err != nil {
			return nil, err
		}
		if !taxonomy.Contains(r.Category) {
			return nil, errors.NewUnknownCategoryError(taxonomy.Name(), string(r.Category))
		}
		if _, dup := s.index[r.ID]; dup {
			return nil, &errors.DuplicateIDError{Store: name, ID: r.ID}
		}
		s.index[r.ID] = len(s.records)
		s.records = append(s.records, r.Clone())
	}

	return s, nil
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// Taxonomy returns the category enumeration of the store.
func (s *Store) Taxonomy() *Taxonomy {
	return s.taxonomy
}

// All returns every record in authoring order. Each call returns a fresh
// copy with identical contents.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Each calls fn for every record in order without copying, stopping when
// fn returns false. fn must not retain or modify the record.
func (s *Store) Each(fn func(i int, r *Record) bool) {
	for i := range s.records {
		if !fn(i, &s.records[i]) {
			return
		}
	}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	i, ok := s.index[id]
	if !ok {
		return Record{}, errors.NewNotFoundError(s.name+" record", id)
	}
	return s.records[i].Clone(), nil
}

// IndexOf returns the position of id in authoring order, or -1.
func (s *Store) IndexOf(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// CategoryMeta returns the display metadata of c.
func (s *Store) CategoryMeta(c Category) (Meta, error) {
	return s.taxonomy.Meta(c)
}

// CountByCategory returns the number of records per category. Every member
// of the taxonomy is present, with zero when it has no records.
func (s *Store) CountByCategory() map[Category]int {
	counts := make(map[Category]int, s.taxonomy.Len())
	for _, c := range s.taxonomy.Categories() {
		counts[c] = 0
	}
	for _, r := range s.records {
		counts[r.Category]++
	}
	return counts
}
