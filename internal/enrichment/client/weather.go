package client

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WeatherObservation holds the current conditions for a location.
type WeatherObservation struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"weather_description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     FlexNumber `json:"temp"`
		Humidity FlexNumber `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed FlexNumber `json:"speed"`
	} `json:"wind"`
}

var titleCaser = cases.Title(language.AmericanEnglish)

// CurrentWeather fetches current conditions from OpenWeather in imperial
// units, so temperatures come back in Fahrenheit.
func (c *Client) CurrentWeather(ctx context.Context, city, state, country string) (*WeatherObservation, error) {
	apiKey := c.cfg.GetOpenWeatherAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("openweather api key not configured")
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s,%s,%s", city, state, country))
	params.Set("appid", apiKey)
	params.Set("units", "imperial")

	endpoint := c.cfg.GetOpenWeatherBaseURL() + "/weather"

	var payload openWeatherResponse
	if err := c.getJSON(ctx, "openweather", endpoint, params, &payload); err != nil {
		return nil, err
	}

	if len(payload.Weather) == 0 || payload.Main.Temp.Value == nil {
		return nil, fmt.Errorf("openweather response missing conditions for %s", city)
	}

	return &WeatherObservation{
		Temperature: math.Round(*payload.Main.Temp.Value),
		Description: titleCaser.String(payload.Weather[0].Description),
		Humidity:    int(payload.Main.Humidity.ToFloat64(0)),
		WindSpeed:   payload.Wind.Speed.ToFloat64(0),
	}, nil
}

// EstimateWeather returns typical conditions for a location, used when the
// weather API is unavailable.
func EstimateWeather(city, state string) *WeatherObservation {
	if est, ok := cityWeatherEstimates[strings.ToLower(city)]; ok {
		return estimateObservation(est)
	}
	if est, ok := stateWeatherEstimates[strings.ToUpper(state)]; ok {
		return estimateObservation(est)
	}
	return estimateObservation(weatherEstimate{65, "mild"})
}

func estimateObservation(est weatherEstimate) *WeatherObservation {
	return &WeatherObservation{
		Temperature: est.temperature,
		Description: est.description,
		Humidity:    50,
		WindSpeed:   10,
	}
}

type weatherEstimate struct {
	temperature float64
	description string
}

// Typical climate figures for major cities, with state fallbacks below.
var cityWeatherEstimates = map[string]weatherEstimate{
	"miami":         {80, "warm and humid"},
	"phoenix":       {85, "hot and sunny"},
	"seattle":       {55, "cool and cloudy"},
	"denver":        {60, "mild and sunny"},
	"chicago":       {50, "cool and windy"},
	"austin":        {75, "warm and sunny"},
	"san francisco": {65, "cool and foggy"},
	"new york":      {60, "mild and variable"},
	"los angeles":   {70, "warm and sunny"},
	"boston":        {55, "cool and variable"},
}

var stateWeatherEstimates = map[string]weatherEstimate{
	"CA": {70, "mild and sunny"},
	"TX": {75, "warm and sunny"},
	"FL": {80, "warm and humid"},
	"NY": {60, "mild and variable"},
	"WA": {55, "cool and cloudy"},
	"CO": {60, "mild and sunny"},
	"IL": {50, "cool and variable"},
	"AZ": {85, "hot and sunny"},
}
