package conditions

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harborline/mariner/internal/transport"
	"github.com/harborline/mariner/pkg/errors"
)

// Default upstream endpoints.
const (
	DefaultWeatherURL = "https://api.open-meteo.com/v1/forecast"
	DefaultRatesURL   = "https://open.er-api.com/v6/latest"
	DefaultRatesBase  = "USD"
)

// WeatherSource reads current weather from an Open-Meteo compatible API.
type WeatherSource struct {
	Client  *transport.Client
	BaseURL string
}

// NewWeatherSource creates a weather source, defaulting the endpoint.
func NewWeatherSource(baseURL string, client *transport.Client) *WeatherSource {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	if client == nil {
		client = transport.New("weather")
	}
	return &WeatherSource{Client: client, BaseURL: baseURL}
}

type weatherResponse struct {
	CurrentWeather *struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
}

// Fetch implements Source.
func (s *WeatherSource) Fetch(ctx context.Context, target Target) (Snapshot, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", target.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", target.Longitude))
	q.Set("current_weather", "true")

	var resp weatherResponse
	if err := s.Client.GetJSON(ctx, s.BaseURL+"?"+q.Encode(), &resp); err != nil {
		return Snapshot{}, err
	}
	if resp.CurrentWeather == nil {
		return Snapshot{}, errors.NewAPIError(s.Client.Source(), 0, "response has no current_weather")
	}

	cw := resp.CurrentWeather
	return Snapshot{
		Port: target.Slug,
		Weather: &Weather{
			TemperatureC:  cw.Temperature,
			WindSpeedKmh:  cw.WindSpeed,
			WindDirection: cw.WindDirection,
			Code:          cw.WeatherCode,
			Summary:       WeatherSummary(cw.WeatherCode),
			ObservedAt:    cw.Time,
		},
	}, nil
}

// WeatherSummary describes a WMO weather interpretation code.
func WeatherSummary(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

// RatesSource reads exchange rates from an open.er-api compatible API and
// quotes the port currency against Base.
type RatesSource struct {
	Client  *transport.Client
	BaseURL string
	Base    string
}

// NewRatesSource creates a rates source, defaulting endpoint and base.
func NewRatesSource(baseURL, base string, client *transport.Client) *RatesSource {
	if baseURL == "" {
		baseURL = DefaultRatesURL
	}
	if base == "" {
		base = DefaultRatesBase
	}
	if client == nil {
		client = transport.New("rates")
	}
	return &RatesSource{Client: client, BaseURL: baseURL, Base: strings.ToUpper(base)}
}

type ratesResponse struct {
	Result             string             `json:"result"`
	BaseCode           string             `json:"base_code"`
	Rates              map[string]float64 `json:"rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
}

// Fetch implements Source.
func (s *RatesSource) Fetch(ctx context.Context, target Target) (Snapshot, error) {
	currency := strings.ToUpper(target.Currency)
	if currency == s.Base {
		return Snapshot{
			Port:  target.Slug,
			Rates: &Rates{Base: s.Base, Quotes: map[string]float64{currency: 1}},
		}, nil
	}

	var resp ratesResponse
	if err := s.Client.GetJSON(ctx, strings.TrimSuffix(s.BaseURL, "/")+"/"+url.PathEscape(s.Base), &resp); err != nil {
		return Snapshot{}, err
	}
	if resp.Result != "" && resp.Result != "success" {
		return Snapshot{}, errors.NewAPIError(s.Client.Source(), 0, "result "+resp.Result)
	}
	rate, ok := resp.Rates[currency]
	if !ok {
		return Snapshot{}, errors.NewAPIError(s.Client.Source(), 0, "no rate for "+currency)
	}

	rates := &Rates{Base: s.Base, Quotes: map[string]float64{currency: rate}}
	if resp.TimeLastUpdateUnix > 0 {
		rates.UpdatedAt = time.Unix(resp.TimeLastUpdateUnix, 0).UTC()
	}
	return Snapshot{Port: target.Slug, Rates: rates}, nil
}

// Composite queries several sources concurrently and merges what they
// return. It also stamps the port's local time and the fetch time.
type Composite struct {
	Sources []Source
	Now     func() time.Time
}

// NewComposite creates a composite over sources using the wall clock.
func NewComposite(sources ...Source) *Composite {
	return &Composite{Sources: sources, Now: time.Now}
}

// Fetch implements Source. The returned snapshot holds every part that
// succeeded. The error joins every source failure, so a non-nil error
// with a non-empty snapshot means partial success.
func (c *Composite) Fetch(ctx context.Context, target Target) (Snapshot, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	// A failing source must not cancel its siblings: workers report
	// through failures and the group is not derived from ctx.
	var g errgroup.Group
	parts := make([]Snapshot, len(c.Sources))
	failures := make([]error, len(c.Sources))
	for i, src := range c.Sources {
		g.Go(func() error {
			parts[i], failures[i] = src.Fetch(ctx, target)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}

	snap := Snapshot{Port: target.Slug, FetchedAt: now().UTC()}
	for i, part := range parts {
		if failures[i] != nil {
			continue
		}
		if part.Weather != nil {
			snap.Weather = part.Weather
		}
		if part.Rates != nil {
			snap.Rates = part.Rates
		}
	}
	if target.TimeZone != "" {
		if loc, err := time.LoadLocation(target.TimeZone); err == nil {
			snap.LocalTime = now().In(loc)
		} else {
			errs = append(errs, errors.NewValidationError("time_zone", target.TimeZone, err.Error()))
		}
	}
	for _, err := range errs {
		snap.Errors = append(snap.Errors, err.Error())
	}

	return snap, errors.Join(errs...)
}
