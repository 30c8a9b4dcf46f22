package catalogs

// Port is a port guide: static facts about a port plus its local spots.
type Port struct {
	Slug      string  `json:"slug" yaml:"slug" validate:"required,excludesall=/?#"`
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Country   string  `json:"country" yaml:"country" validate:"required"`
	Summary   string  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"longitude"`
	TimeZone  string  `json:"time_zone" yaml:"time_zone" validate:"required,timezone"`
	Currency  string  `json:"currency" yaml:"currency" validate:"required,iso4217"`
	Spots     *Store  `json:"-" yaml:"-" validate:"-"`
}

// portFile is the on-disk layout of ports/<slug>.yaml.
type portFile struct {
	Port  `yaml:",inline"`
	Spots []Record `yaml:"spots"`
}
