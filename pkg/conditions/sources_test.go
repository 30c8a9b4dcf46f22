package conditions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/internal/transport"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
)

var rotterdam = Target{Slug: "rotterdam", Latitude: 51.9225, Longitude: 4.47917, TimeZone: "Europe/Amsterdam", Currency: "EUR"}

func TestTargetFor(t *testing.T) {
	p := &catalogs.Port{Slug: "houston", Latitude: 29.7, Longitude: -95.2, TimeZone: "America/Chicago", Currency: "USD"}
	assert.Equal(t, Target{Slug: "houston", Latitude: 29.7, Longitude: -95.2, TimeZone: "America/Chicago", Currency: "USD"}, TargetFor(p))
}

func TestWeatherSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "51.9225", r.URL.Query().Get("latitude"))
		assert.Equal(t, "4.4792", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":12.5,"windspeed":20.1,"winddirection":250,"weathercode":61,"time":"2026-10-16T09:00"}}`))
	}))
	defer srv.Close()

	src := NewWeatherSource(srv.URL, transport.New("weather", transport.WithHTTPClient(srv.Client())))
	snap, err := src.Fetch(context.Background(), rotterdam)
	require.NoError(t, err)
	require.NotNil(t, snap.Weather)
	assert.InDelta(t, 12.5, snap.Weather.TemperatureC, 1e-9)
	assert.Equal(t, "Rain", snap.Weather.Summary)
	assert.Equal(t, "2026-10-16T09:00", snap.Weather.ObservedAt)
	assert.Nil(t, snap.Rates)
}

func TestWeatherSource_MissingPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewWeatherSource(srv.URL, nil).Fetch(context.Background(), rotterdam)
	assert.True(t, errors.IsUpstreamUnavailable(err))
}

func TestWeatherSummary(t *testing.T) {
	tests := map[int]string{0: "Clear sky", 2: "Partly cloudy", 45: "Fog", 53: "Drizzle", 75: "Snow", 81: "Rain showers", 86: "Snow showers", 95: "Thunderstorm", 42: "Unknown"}
	for code, want := range tests {
		assert.Equal(t, want, WeatherSummary(code), "code %d", code)
	}
}

func TestRatesSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","time_last_update_unix":1760572800,"rates":{"USD":1,"EUR":0.92,"SGD":1.35}}`))
	}))
	defer srv.Close()

	src := NewRatesSource(srv.URL+"/", "usd", nil)
	snap, err := src.Fetch(context.Background(), rotterdam)
	require.NoError(t, err)
	require.NotNil(t, snap.Rates)
	assert.Equal(t, "USD", snap.Rates.Base)
	assert.Equal(t, map[string]float64{"EUR": 0.92}, snap.Rates.Quotes)
	assert.Equal(t, time.Unix(1760572800, 0).UTC(), snap.Rates.UpdatedAt)

	_, err = src.Fetch(context.Background(), Target{Slug: "x", Currency: "XAF"})
	assert.True(t, errors.IsUpstreamUnavailable(err))
}

func TestComposite_ErrorsOmitRatesKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := transport.New("rates", transport.WithAuth(transport.ParseAuth("query:apikey"), "SUPERSECRET"))
	c := &Composite{Sources: []Source{NewRatesSource(addr+"/v6/latest/", "USD", client)}, Now: fixedClock}

	snap, err := c.Fetch(context.Background(), rotterdam)
	require.Error(t, err)
	assert.False(t, snap.Empty())
	require.Len(t, snap.Errors, 1)
	assert.NotContains(t, snap.Errors[0], "SUPERSECRET")
	assert.Contains(t, snap.Errors[0], "rates")
	assert.NotContains(t, err.Error(), "SUPERSECRET")
}

func TestRatesSource_SameCurrencyNeedsNoRequest(t *testing.T) {
	src := NewRatesSource("http://127.0.0.1:1", "", nil)
	snap, err := src.Fetch(context.Background(), Target{Slug: "houston", Currency: "usd"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 1}, snap.Rates.Quotes)
}

func TestRatesSource_ErrorResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	}))
	defer srv.Close()

	_, err := NewRatesSource(srv.URL, "USD", nil).Fetch(context.Background(), rotterdam)
	assert.True(t, errors.IsUpstreamUnavailable(err))
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
}

func TestComposite_MergesParts(t *testing.T) {
	weather := SourceFunc(func(context.Context, Target) (Snapshot, error) {
		return Snapshot{Weather: &Weather{Code: 0, Summary: "Clear sky"}}, nil
	})
	rates := SourceFunc(func(context.Context, Target) (Snapshot, error) {
		return Snapshot{Rates: &Rates{Base: "USD", Quotes: map[string]float64{"EUR": 0.9}}}, nil
	})

	c := &Composite{Sources: []Source{weather, rates}, Now: fixedClock}
	snap, err := c.Fetch(context.Background(), rotterdam)
	require.NoError(t, err)

	assert.Equal(t, "rotterdam", snap.Port)
	assert.Equal(t, "Clear sky", snap.Weather.Summary)
	assert.InDelta(t, 0.9, snap.Rates.Quotes["EUR"], 1e-9)
	assert.Equal(t, fixedClock(), snap.FetchedAt)
	assert.Equal(t, 14, snap.LocalTime.Hour())
	assert.Equal(t, "Europe/Amsterdam", snap.LocalTime.Location().String())
	assert.Empty(t, snap.Errors)
}

func TestComposite_PartialFailure(t *testing.T) {
	weather := SourceFunc(func(context.Context, Target) (Snapshot, error) {
		return Snapshot{}, errors.NewAPIError("weather", http.StatusServiceUnavailable, "down")
	})
	rates := SourceFunc(func(context.Context, Target) (Snapshot, error) {
		return Snapshot{Rates: &Rates{Base: "USD"}}, nil
	})

	snap, err := (&Composite{Sources: []Source{weather, rates}, Now: fixedClock}).Fetch(context.Background(), rotterdam)
	require.Error(t, err)
	assert.True(t, errors.IsUpstreamUnavailable(err))
	assert.False(t, snap.Empty())
	assert.Nil(t, snap.Weather)
	assert.NotNil(t, snap.Rates)
	require.Len(t, snap.Errors, 1)
	assert.Contains(t, snap.Errors[0], "weather")
}

func TestComposite_FailureDoesNotCancelSiblings(t *testing.T) {
	weather := SourceFunc(func(context.Context, Target) (Snapshot, error) {
		return Snapshot{}, errors.NewAPIError("weather", http.StatusBadGateway, "down")
	})
	rates := SourceFunc(func(ctx context.Context, _ Target) (Snapshot, error) {
		time.Sleep(20 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Rates: &Rates{Base: "USD"}}, errors.NewAPIError("rates", http.StatusTooManyRequests, "slow down")
	})

	snap, err := (&Composite{Sources: []Source{weather, rates}, Now: fixedClock}).Fetch(context.Background(), rotterdam)
	require.Error(t, err)
	assert.Nil(t, snap.Rates, "a failed source contributes no parts")
	require.Len(t, snap.Errors, 2)
	assert.Contains(t, snap.Errors[0], "weather")
	assert.Contains(t, snap.Errors[1], "rates")
}

func TestComposite_BadTimeZone(t *testing.T) {
	snap, err := NewComposite().Fetch(context.Background(), Target{Slug: "x", TimeZone: "Mars/Olympus"})
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, snap.LocalTime.IsZero())
}
