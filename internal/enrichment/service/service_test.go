package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"leadreach_backend/internal/enrichment/client"
	"leadreach_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stubConfig struct {
	apiKey         string
	openWeatherURL string
	dataUSAURL     string
	cacheTTL       time.Duration
}

func (c stubConfig) GetOpenWeatherAPIKey() string          { return c.apiKey }
func (c stubConfig) GetOpenWeatherBaseURL() string         { return c.openWeatherURL }
func (c stubConfig) GetDataUSABaseURL() string             { return c.dataUSAURL }
func (c stubConfig) GetEnrichmentCacheTTL() time.Duration  { return c.cacheTTL }
func (c stubConfig) IsEnrichmentEnabled() bool             { return c.apiKey != "" }

const weatherBody = `{
	"weather": [{"description": "clear sky"}],
	"main": {"temp": 70.6, "humidity": 55},
	"wind": {"speed": 8.5}
}`

const placeBody = `{
	"data": [
		{"Place": "Portland, OR", "ID Place": "16000US4159000", "Population": 650000},
		{"Place": "Austin, TX", "ID Place": "16000US4805000", "Population": 950000}
	]
}`

const stateBody = `{
	"data": [
		{"State": "Texas", "Population": 29145505}
	]
}`

func newTestService(t *testing.T, weatherURL, dataUSAURL string, rdb *redis.Client) *Service {
	t.Helper()
	log := logger.New("development")
	cfg := stubConfig{
		apiKey:         "test-key",
		openWeatherURL: weatherURL,
		dataUSAURL:     dataUSAURL,
		cacheTTL:       time.Minute,
	}
	cli := client.New(cfg, log)
	cache := NewCache(rdb, cfg.cacheTTL, log)
	return New(cli, cache, log)
}

func newDataUSAServer(t *testing.T, placeBody, stateBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("drilldowns") {
		case "Place":
			_, _ = w.Write([]byte(placeBody))
		case "State":
			_, _ = w.Write([]byte(stateBody))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func TestEnrichUsesLiveData(t *testing.T) {
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("units") != "imperial" {
			t.Errorf("expected imperial units, got %q", r.URL.Query().Get("units"))
		}
		_, _ = w.Write([]byte(weatherBody))
	}))
	defer weatherSrv.Close()

	dataSrv := newDataUSAServer(t, placeBody, stateBody)
	defer dataSrv.Close()

	svc := newTestService(t, weatherSrv.URL, dataSrv.URL, nil)
	signal := svc.Enrich(context.Background(), Location{City: "Austin", State: "TX", Country: "USA"})

	if signal.Temperature != 71 {
		t.Errorf("Temperature = %v, want 71 (rounded)", signal.Temperature)
	}
	if signal.WeatherDescription != "Clear Sky" {
		t.Errorf("WeatherDescription = %q, want %q", signal.WeatherDescription, "Clear Sky")
	}
	if signal.Humidity != 55 {
		t.Errorf("Humidity = %d, want 55", signal.Humidity)
	}
	if signal.Population != 950000 {
		t.Errorf("Population = %d, want 950000", signal.Population)
	}
	if signal.MedianIncome != 60000 {
		t.Errorf("MedianIncome = %v, want 60000", signal.MedianIncome)
	}
	if signal.PercentRenters != 45 {
		t.Errorf("PercentRenters = %v, want 45", signal.PercentRenters)
	}
	if signal.WeatherSource != WeatherSourceLive {
		t.Errorf("WeatherSource = %q, want %q", signal.WeatherSource, WeatherSourceLive)
	}
	if signal.DemographicsLevel != client.LevelPlace {
		t.Errorf("DemographicsLevel = %q, want %q", signal.DemographicsLevel, client.LevelPlace)
	}
	if signal.FetchedAt.IsZero() {
		t.Error("FetchedAt should be set")
	}
}

func TestEnrichFallsBackToStateLevel(t *testing.T) {
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(weatherBody))
	}))
	defer weatherSrv.Close()

	// Place query returns rows that do not match the requested city.
	dataSrv := newDataUSAServer(t, `{"data": [{"Place": "Portland, OR", "Population": 650000}]}`, stateBody)
	defer dataSrv.Close()

	svc := newTestService(t, weatherSrv.URL, dataSrv.URL, nil)
	signal := svc.Enrich(context.Background(), Location{City: "Lubbock", State: "Texas", Country: "USA"})

	if signal.DemographicsLevel != client.LevelState {
		t.Fatalf("DemographicsLevel = %q, want %q", signal.DemographicsLevel, client.LevelState)
	}
	if signal.Population != 29145505 {
		t.Errorf("Population = %d, want state-level 29145505", signal.Population)
	}
	if signal.PercentRenters != 35 {
		t.Errorf("PercentRenters = %v, want state default 35", signal.PercentRenters)
	}
}

func TestEnrichFallsBackToEstimates(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	svc := newTestService(t, failing.URL, failing.URL, nil)
	signal := svc.Enrich(context.Background(), Location{City: "Austin", State: "TX", Country: "USA"})

	if signal.WeatherSource != WeatherSourceEstimate {
		t.Errorf("WeatherSource = %q, want %q", signal.WeatherSource, WeatherSourceEstimate)
	}
	if signal.Temperature != 75 {
		t.Errorf("Temperature = %v, want Austin estimate 75", signal.Temperature)
	}
	if signal.WeatherDescription != "warm and sunny" {
		t.Errorf("WeatherDescription = %q, want %q", signal.WeatherDescription, "warm and sunny")
	}
	if signal.DemographicsLevel != client.LevelEstimate {
		t.Errorf("DemographicsLevel = %q, want %q", signal.DemographicsLevel, client.LevelEstimate)
	}
	if signal.Population != 29000000 {
		t.Errorf("Population = %d, want Texas estimate 29000000", signal.Population)
	}
}

func TestEnrichServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	var hits atomic.Int64
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(weatherBody))
	}))
	defer weatherSrv.Close()

	dataSrv := newDataUSAServer(t, placeBody, stateBody)
	defer dataSrv.Close()

	svc := newTestService(t, weatherSrv.URL, dataSrv.URL, rdb)
	loc := Location{City: "Austin", State: "TX", Country: "USA"}

	first := svc.Enrich(context.Background(), loc)
	second := svc.Enrich(context.Background(), loc)

	if got := hits.Load(); got != 1 {
		t.Fatalf("weather API hits = %d, want 1 (second call cached)", got)
	}
	if first.Temperature != second.Temperature || first.Population != second.Population {
		t.Error("cached signal should match the original")
	}
}

func TestEnrichBatchAlignsWithInput(t *testing.T) {
	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(weatherBody))
	}))
	defer weatherSrv.Close()

	dataSrv := newDataUSAServer(t, placeBody, stateBody)
	defer dataSrv.Close()

	svc := newTestService(t, weatherSrv.URL, dataSrv.URL, nil)
	locations := []Location{
		{City: "Austin", State: "TX", Country: "USA"},
		{City: "Portland", State: "OR", Country: "USA"},
		{City: "Miami", State: "FL", Country: "USA"},
	}

	signals := svc.EnrichBatch(context.Background(), locations)

	if len(signals) != len(locations) {
		t.Fatalf("got %d signals, want %d", len(signals), len(locations))
	}
	for i, signal := range signals {
		if signal == nil {
			t.Fatalf("signal %d is nil", i)
		}
	}
	if signals[0].Population != 950000 {
		t.Errorf("Austin population = %d, want 950000", signals[0].Population)
	}
	if signals[1].Population != 650000 {
		t.Errorf("Portland population = %d, want 650000", signals[1].Population)
	}
}

func TestCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	log := logger.New("development")
	cache := NewCache(rdb, time.Minute, log)

	signal := &Signal{Temperature: 70, WeatherDescription: "Clear Sky", FetchedAt: time.Now().UTC()}
	cache.Set(context.Background(), "Austin", "TX", "USA", signal)

	if got := cache.Get(context.Background(), "austin", "tx", "usa"); got == nil {
		t.Fatal("expected cache hit with case-insensitive key")
	}

	mr.FastForward(2 * time.Minute)

	if got := cache.Get(context.Background(), "Austin", "TX", "USA"); got != nil {
		t.Fatal("expected cache miss after TTL")
	}
}
