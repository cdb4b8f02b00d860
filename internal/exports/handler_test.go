package exports

import (
	"encoding/csv"
	"strings"
	"testing"

	"leadreach_backend/internal/leads/repository"
)

func TestGenerateAPIKey(t *testing.T) {
	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}

	if !strings.HasPrefix(plaintext, apiKeyPrefix) {
		t.Errorf("plaintext %q missing prefix %q", plaintext, apiKeyPrefix)
	}
	if prefix != plaintext[:12] {
		t.Errorf("prefix = %q", prefix)
	}
	if HashKey(plaintext) != hash {
		t.Error("HashKey does not reproduce the generated hash")
	}

	other, _, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	if other == plaintext {
		t.Error("expected distinct keys from consecutive generations")
	}
}

func TestRenderLeadsCSV(t *testing.T) {
	phone := "+15125550100"
	temp := 72.4
	income := 65000.0
	population := int64(950000)
	renters := 45.5
	score := 85
	category := "High"
	insights := "high rental market, middle income area, temperate climate"

	leads := []repository.Lead{
		{
			Name:           "Jane Doe",
			Email:          "jane@acme.test",
			Phone:          &phone,
			Company:        "Acme Property Group",
			City:           "Austin",
			State:          "TX",
			Country:        "USA",
			Temperature:    &temp,
			MedianIncome:   &income,
			Population:     &population,
			PercentRenters: &renters,
			Score:          &score,
			ScoreCategory:  &category,
			Insights:       &insights,
		},
		{
			Name:    "John Smith",
			Email:   "john@smith.test",
			Company: "Smith Rentals",
			City:    "Boise",
			State:   "ID",
			Country: "USA",
		},
	}

	data, err := renderLeadsCSV(leads)
	if err != nil {
		t.Fatalf("renderLeadsCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}

	if records[0][0] != "Name" || records[0][13] != "Lead Score" {
		t.Errorf("unexpected header row: %v", records[0])
	}

	enriched := records[1]
	if enriched[0] != "Jane Doe" || enriched[8] != "72.4" || enriched[13] != "85" || enriched[14] != "High" {
		t.Errorf("unexpected enriched row: %v", enriched)
	}

	unenriched := records[2]
	if unenriched[0] != "John Smith" || unenriched[8] != "" || unenriched[13] != "" {
		t.Errorf("unexpected unenriched row: %v", unenriched)
	}
}
