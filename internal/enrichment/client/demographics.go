package client

import (
	"context"
	"net/url"
	"strings"
)

// Demographic levels, most precise first.
const (
	LevelPlace    = "place"
	LevelState    = "state"
	LevelEstimate = "estimate"
)

const (
	defaultPopulation     = 5_000_000
	defaultMedianIncome   = 55_000
	defaultPercentRenters = 40.0
	statePercentRenters   = 35.0
)

// DemographicProfile holds population, income and rental figures for a
// location, plus the level of data that produced them.
type DemographicProfile struct {
	Population     int64   `json:"population"`
	MedianIncome   float64 `json:"median_income"`
	PercentRenters float64 `json:"percent_renters"`
	Level          string  `json:"level"`
}

type dataUSAResponse struct {
	Data []dataUSARow `json:"data"`
}

type dataUSARow struct {
	Place      string     `json:"Place"`
	State      string     `json:"State"`
	PlaceID    string     `json:"ID Place"`
	Population FlexNumber `json:"Population"`
}

// Demographics fetches population, income and rental figures for a city.
// It tries place-level data first and degrades to state-level figures,
// then to static estimates. It never returns an error to the caller since
// an estimate is always available.
func (c *Client) Demographics(ctx context.Context, city, state string) *DemographicProfile {
	params := url.Values{}
	params.Set("drilldowns", "Place")
	params.Set("measures", "Population")
	params.Set("year", "latest")

	endpoint := c.cfg.GetDataUSABaseURL() + "/data"

	var payload dataUSAResponse
	if err := c.getJSON(ctx, "datausa", endpoint, params, &payload); err != nil {
		return c.stateDemographics(ctx, state)
	}

	row := findPlace(payload.Data, city, state)
	if row == nil {
		return c.stateDemographics(ctx, state)
	}

	return &DemographicProfile{
		Population:     row.Population.ToInt64(0),
		MedianIncome:   stateMedianIncome(state),
		PercentRenters: cityPercentRenters(city, state),
		Level:          LevelPlace,
	}
}

// stateDemographics fetches state-level population and fills income and
// rental figures from reference tables.
func (c *Client) stateDemographics(ctx context.Context, state string) *DemographicProfile {
	params := url.Values{}
	params.Set("drilldowns", "State")
	params.Set("measures", "Population")
	params.Set("year", "2022")

	endpoint := c.cfg.GetDataUSABaseURL() + "/data"

	var payload dataUSAResponse
	if err := c.getJSON(ctx, "datausa", endpoint, params, &payload); err != nil {
		return EstimateDemographics(state)
	}

	stateLower := strings.ToLower(state)
	for _, row := range payload.Data {
		if strings.Contains(strings.ToLower(row.State), stateLower) {
			return &DemographicProfile{
				Population:     row.Population.ToInt64(0),
				MedianIncome:   stateMedianIncome(state),
				PercentRenters: statePercentRenters,
				Level:          LevelState,
			}
		}
	}

	return EstimateDemographics(state)
}

// EstimateDemographics returns static state-level figures for use when the
// demographics API is unavailable.
func EstimateDemographics(state string) *DemographicProfile {
	if est, ok := stateEstimates[strings.ToUpper(state)]; ok {
		return &DemographicProfile{
			Population:     est.population,
			MedianIncome:   est.medianIncome,
			PercentRenters: est.percentRenters,
			Level:          LevelEstimate,
		}
	}
	return &DemographicProfile{
		Population:     defaultPopulation,
		MedianIncome:   defaultMedianIncome,
		PercentRenters: defaultPercentRenters,
		Level:          LevelEstimate,
	}
}

func findPlace(rows []dataUSARow, city, state string) *dataUSARow {
	cityLower := strings.ToLower(city)
	stateLower := strings.ToLower(state)
	for i := range rows {
		placeName := strings.ToLower(rows[i].Place)
		if strings.Contains(placeName, cityLower) && strings.Contains(placeName, stateLower) {
			return &rows[i]
		}
	}
	return nil
}

func stateMedianIncome(state string) float64 {
	if income, ok := stateIncomes[strings.ToUpper(state)]; ok {
		return income
	}
	return defaultMedianIncome
}

func cityPercentRenters(city, state string) float64 {
	if renters, ok := cityRenterRates[strings.ToLower(city)]; ok {
		return renters
	}
	if renters, ok := stateRenterRates[strings.ToUpper(state)]; ok {
		return renters
	}
	return defaultPercentRenters
}

type stateEstimate struct {
	population     int64
	medianIncome   float64
	percentRenters float64
}

// Census-derived state figures used when live lookups fail.
var stateEstimates = map[string]stateEstimate{
	"CA": {39_500_000, 75_000, 50}, "TX": {29_000_000, 60_000, 40},
	"FL": {21_500_000, 55_000, 45}, "NY": {20_000_000, 70_000, 55},
	"PA": {13_000_000, 60_000, 45}, "IL": {12_800_000, 65_000, 45},
	"OH": {11_700_000, 55_000, 40}, "GA": {10_600_000, 58_000, 40},
	"NC": {10_400_000, 55_000, 40}, "MI": {10_000_000, 55_000, 45},
	"NJ": {9_200_000, 80_000, 50}, "VA": {8_600_000, 70_000, 40},
	"WA": {7_700_000, 75_000, 50}, "AZ": {7_200_000, 55_000, 40},
	"MA": {7_000_000, 80_000, 50}, "TN": {6_900_000, 52_000, 40},
	"IN": {6_800_000, 55_000, 40}, "MO": {6_100_000, 55_000, 40},
	"MD": {6_100_000, 80_000, 45}, "WI": {5_900_000, 60_000, 40},
	"CO": {5_800_000, 70_000, 40}, "MN": {5_700_000, 70_000, 40},
	"SC": {5_100_000, 52_000, 40}, "AL": {5_000_000, 50_000, 35},
	"LA": {4_700_000, 50_000, 40}, "KY": {4_500_000, 52_000, 40},
	"OR": {4_200_000, 65_000, 45}, "OK": {4_000_000, 52_000, 40},
	"CT": {3_600_000, 75_000, 45}, "UT": {3_200_000, 65_000, 40},
	"IA": {3_200_000, 60_000, 40}, "NV": {3_100_000, 60_000, 45},
	"AR": {3_000_000, 48_000, 40}, "MS": {3_000_000, 45_000, 40},
	"KS": {2_900_000, 58_000, 40}, "NM": {2_100_000, 50_000, 40},
	"NE": {1_900_000, 60_000, 40}, "WV": {1_800_000, 48_000, 40},
	"ID": {1_800_000, 55_000, 40}, "HI": {1_400_000, 80_000, 50},
	"NH": {1_400_000, 70_000, 40}, "ME": {1_300_000, 58_000, 40},
	"RI": {1_100_000, 65_000, 45}, "MT": {1_100_000, 55_000, 40},
	"DE": {1_000_000, 65_000, 40}, "SD": {900_000, 58_000, 40},
	"ND": {800_000, 65_000, 40}, "AK": {700_000, 75_000, 40},
	"VT": {600_000, 60_000, 40}, "WY": {600_000, 65_000, 40},
}

var stateIncomes = map[string]float64{
	"CA": 75_000, "NY": 70_000, "TX": 60_000, "FL": 55_000, "IL": 65_000,
	"PA": 60_000, "OH": 55_000, "GA": 58_000, "NC": 55_000, "MI": 55_000,
	"NJ": 80_000, "VA": 70_000, "WA": 75_000, "AZ": 55_000, "MA": 80_000,
	"TN": 52_000, "IN": 55_000, "MO": 55_000, "MD": 80_000, "WI": 60_000,
	"CO": 70_000, "MN": 70_000, "SC": 52_000, "AL": 50_000, "LA": 50_000,
	"KY": 52_000, "OR": 65_000, "OK": 52_000, "CT": 75_000, "UT": 65_000,
	"IA": 60_000, "NV": 60_000, "AR": 48_000, "MS": 45_000, "KS": 58_000,
	"NM": 50_000, "NE": 60_000, "WV": 48_000, "ID": 55_000, "HI": 80_000,
	"NH": 70_000, "ME": 58_000, "RI": 65_000, "MT": 55_000, "DE": 65_000,
	"SD": 58_000, "ND": 65_000, "AK": 75_000, "VT": 60_000, "WY": 65_000,
}

// Renter shares for the largest US cities, with state fallbacks below.
var cityRenterRates = map[string]float64{
	"new york": 65, "san francisco": 55, "los angeles": 55, "chicago": 50,
	"houston": 45, "phoenix": 40, "philadelphia": 50, "san antonio": 40,
	"san diego": 50, "dallas": 45, "austin": 45, "jacksonville": 40,
	"fort worth": 40, "columbus": 45, "charlotte": 40, "seattle": 50,
	"denver": 40, "washington": 60, "boston": 60, "el paso": 40,
	"nashville": 40, "detroit": 50, "oklahoma city": 35, "portland": 45,
	"las vegas": 45, "memphis": 45, "louisville": 40, "baltimore": 50,
	"milwaukee": 45, "albuquerque": 40, "tucson": 40, "fresno": 40,
	"sacramento": 45, "mesa": 35, "kansas city": 40, "atlanta": 45,
	"long beach": 50, "colorado springs": 35, "raleigh": 40, "miami": 60,
	"virginia beach": 35, "omaha": 35, "oakland": 55, "minneapolis": 45,
	"tulsa": 40, "arlington": 40, "tampa": 45, "new orleans": 50,
}

var stateRenterRates = map[string]float64{
	"CA": 50, "NY": 55, "TX": 40, "FL": 45, "IL": 45,
	"PA": 45, "OH": 40, "GA": 40, "NC": 40, "MI": 45,
}
