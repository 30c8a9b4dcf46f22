// Package conditions fetches live port conditions (weather, exchange
// rates, local time) and keeps the latest snapshot per port fresh.
package conditions

import (
	"context"
	"time"

	"github.com/harborline/mariner/pkg/catalogs"
)

// Target identifies what to fetch conditions for.
type Target struct {
	Slug      string  `json:"slug"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  string  `json:"time_zone"`
	Currency  string  `json:"currency"`
}

// TargetFor builds the target of a port guide.
func TargetFor(p *catalogs.Port) Target {
	return Target{
		Slug:      p.Slug,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		TimeZone:  p.TimeZone,
		Currency:  p.Currency,
	}
}

// Weather is the current weather at a port.
type Weather struct {
	TemperatureC  float64 `json:"temperature_c" yaml:"temperature_c"`
	WindSpeedKmh  float64 `json:"wind_speed_kmh" yaml:"wind_speed_kmh"`
	WindDirection float64 `json:"wind_direction" yaml:"wind_direction"`
	Code          int     `json:"code" yaml:"code"`
	Summary       string  `json:"summary" yaml:"summary"`
	ObservedAt    string  `json:"observed_at,omitempty" yaml:"observed_at,omitempty"`
}

// Rates holds exchange rates quoted against Base.
type Rates struct {
	Base      string             `json:"base" yaml:"base"`
	Quotes    map[string]float64 `json:"quotes" yaml:"quotes"`
	UpdatedAt time.Time          `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

// Snapshot is one port's conditions at a point in time. Weather and Rates
// are nil when that part has never been fetched successfully.
type Snapshot struct {
	Port       string    `json:"port" yaml:"port"`
	Weather    *Weather  `json:"weather,omitempty" yaml:"weather,omitempty"`
	Rates      *Rates    `json:"rates,omitempty" yaml:"rates,omitempty"`
	LocalTime  time.Time `json:"local_time,omitzero" yaml:"local_time,omitempty"`
	FetchedAt  time.Time `json:"fetched_at,omitzero" yaml:"fetched_at,omitempty"`
	Generation uint64    `json:"generation" yaml:"generation"`
	Errors     []string  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Empty reports whether the snapshot carries no fetched data.
func (s Snapshot) Empty() bool {
	return s.Weather == nil && s.Rates == nil && s.LocalTime.IsZero()
}

// merge fills parts missing from s with those of prev.
func (s Snapshot) merge(prev Snapshot) Snapshot {
	if s.Weather == nil {
		s.Weather = prev.Weather
	}
	if s.Rates == nil {
		s.Rates = prev.Rates
	}
	if s.LocalTime.IsZero() {
		s.LocalTime = prev.LocalTime
	}
	return s
}

// Source fetches conditions for a target. A source may fill only part of
// the snapshot.
type Source interface {
	Fetch(ctx context.Context, target Target) (Snapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, target Target) (Snapshot, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context, target Target) (Snapshot, error) {
	return f(ctx, target)
}
