// Package service orchestrates lead enrichment across external providers
// with a Redis cache in front.
package service

import (
	"context"
	"time"

	"leadreach_backend/internal/enrichment/client"
	"leadreach_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// Location identifies the place a lead should be enriched for.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Signal holds the enrichment values for a location. Weather and
// demographics are fetched independently so either side may come from a
// live lookup or a static estimate.
type Signal struct {
	Temperature        float64   `json:"temperature"`
	WeatherDescription string    `json:"weather_description"`
	Humidity           int       `json:"humidity"`
	WindSpeed          float64   `json:"wind_speed"`
	Population         int64     `json:"population"`
	MedianIncome       float64   `json:"median_income"`
	PercentRenters     float64   `json:"percent_renters"`
	WeatherSource      string    `json:"weather_source"`
	DemographicsLevel  string    `json:"demographics_level"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// Weather sources recorded on a signal.
const (
	WeatherSourceLive     = "openweather"
	WeatherSourceEstimate = "estimate"
)

// Service handles enrichment lookups with caching and fallback.
type Service struct {
	client *client.Client
	cache  *Cache
	log    *logger.Logger
}

// New creates a new enrichment service.
func New(client *client.Client, cache *Cache, log *logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// Enrich returns the enrichment signal for a location. The weather and
// demographics lookups run concurrently and each falls back to static
// estimates on failure, so a signal is always produced.
func (s *Service) Enrich(ctx context.Context, loc Location) *Signal {
	if cached := s.cache.Get(ctx, loc.City, loc.State, loc.Country); cached != nil {
		return cached
	}

	var (
		weather       *client.WeatherObservation
		weatherSource string
		demographics  *client.DemographicProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weather, weatherSource = s.lookupWeather(gctx, loc)
		return nil
	})
	g.Go(func() error {
		demographics = s.client.Demographics(gctx, loc.City, loc.State)
		return nil
	})
	_ = g.Wait()

	signal := &Signal{
		Temperature:        weather.Temperature,
		WeatherDescription: weather.Description,
		Humidity:           weather.Humidity,
		WindSpeed:          weather.WindSpeed,
		Population:         demographics.Population,
		MedianIncome:       demographics.MedianIncome,
		PercentRenters:     demographics.PercentRenters,
		WeatherSource:      weatherSource,
		DemographicsLevel:  demographics.Level,
		FetchedAt:          time.Now().UTC(),
	}

	s.cache.Set(ctx, loc.City, loc.State, loc.Country, signal)
	return signal
}

// EnrichBatch enriches a set of locations with bounded concurrency.
// The returned slice is index-aligned with the input.
func (s *Service) EnrichBatch(ctx context.Context, locations []Location) []*Signal {
	signals := make([]*Signal, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, loc := range locations {
		g.Go(func() error {
			signals[i] = s.Enrich(gctx, loc)
			return nil
		})
	}
	_ = g.Wait()

	return signals
}

func (s *Service) lookupWeather(ctx context.Context, loc Location) (*client.WeatherObservation, string) {
	weather, err := s.client.CurrentWeather(ctx, loc.City, loc.State, loc.Country)
	if err != nil {
		s.log.Debug("weather lookup failed, using estimate",
			"city", loc.City, "state", loc.State, "error", err)
		return client.EstimateWeather(loc.City, loc.State), WeatherSourceEstimate
	}
	return weather, WeatherSourceLive
}
