package catalogs

import "slices"

// Record is one catalog entry: a form, a ship class or a local spot.
type Record struct {
	ID          string    `json:"id" yaml:"id" validate:"required,excludesall=/?#"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Category    Category  `json:"category" yaml:"category" validate:"required"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty" validate:"dive,required"`
	Asset       string    `json:"asset,omitempty" yaml:"asset,omitempty"`
	Location    *Location `json:"location,omitempty" yaml:"location,omitempty"`
}

// Location places a record on a map.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"longitude"`
	Address   string  `json:"address,omitempty" yaml:"address,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.Tags = slices.Clone(r.Tags)
	if r.Location != nil {
		loc := *r.Location
		r.Location = &loc
	}
	return r
}

// HasLocation reports whether the record can be placed on a map.
func (r Record) HasLocation() bool {
	return r.Location != nil
}
