package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadreach_backend/platform/logger"
)

func TestLoadMappings(t *testing.T) {
	mappings, err := loadMappings()
	if err != nil {
		t.Fatalf("loadMappings: %v", err)
	}

	hubspot, ok := mappings["hubspot"]
	if !ok {
		t.Fatal("expected hubspot mapping")
	}
	if got := hubspot.Contact["first_name"]; got != "firstname" {
		t.Errorf("hubspot first_name mapped to %q", got)
	}
	if got := hubspot.Enrichment["score"]; got != "enrichment_lead_score" {
		t.Errorf("hubspot score mapped to %q", got)
	}

	salesforce, ok := mappings["salesforce"]
	if !ok {
		t.Fatal("expected salesforce mapping")
	}
	if got := salesforce.Contact["first_name"]; got != "FirstName" {
		t.Errorf("salesforce first_name mapped to %q", got)
	}
	if got := salesforce.Enrichment["score"]; got != "Enrichment_Lead_Score__c" {
		t.Errorf("salesforce score mapped to %q", got)
	}
}

func TestRecordAttributesOmitsMissingEnrichment(t *testing.T) {
	record := Record{
		Email:     "jane@acme.test",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Acme",
		City:      "Austin",
		State:     "TX",
		Country:   "USA",
	}

	attrs := record.attributes()
	if _, ok := attrs["score"]; ok {
		t.Error("expected score to be omitted for unenriched record")
	}
	if _, ok := attrs["status"]; ok {
		t.Error("expected status to be omitted for unenriched record")
	}

	score := 85
	now := time.Now().UTC()
	record.Score = &score
	record.EnrichedAt = &now

	attrs = record.attributes()
	if attrs["score"] != 85 {
		t.Errorf("score = %v", attrs["score"])
	}
	if attrs["status"] != "Success" {
		t.Errorf("status = %v", attrs["status"])
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		full, first, last string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Mary Jane Watson", "Mary", "Jane Watson"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := splitName(tc.full)
		if first != tc.first || last != tc.last {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tc.full, first, last, tc.first, tc.last)
		}
	}
}

func TestHubSpotUpsertCreatesWhenNoMatch(t *testing.T) {
	var createdProperties map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/crm/v3/objects/contacts/search":
			json.NewEncoder(w).Encode(hubspotSearchResponse{Total: 0})
		case r.Method == http.MethodPost && r.URL.Path == "/crm/v3/objects/contacts":
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization = %q", got)
			}
			var payload struct {
				Properties map[string]string `json:"properties"`
			}
			json.NewDecoder(r.Body).Decode(&payload)
			createdProperties = payload.Properties
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(hubspotObject{ID: "hs-101"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	mappings, err := loadMappings()
	if err != nil {
		t.Fatalf("loadMappings: %v", err)
	}
	adapter := NewHubSpotAdapter("test-key", mappings["hubspot"], logger.New("development"))
	adapter.baseURL = srv.URL

	score := 85
	category := "High"
	record := Record{
		Email:         "jane@acme.test",
		FirstName:     "Jane",
		LastName:      "Doe",
		Company:       "Acme",
		City:          "Austin",
		State:         "TX",
		Country:       "USA",
		Score:         &score,
		ScoreCategory: &category,
	}

	remoteID, err := adapter.UpsertLead(context.Background(), record, "")
	if err != nil {
		t.Fatalf("UpsertLead: %v", err)
	}
	if remoteID != "hs-101" {
		t.Errorf("remoteID = %q", remoteID)
	}
	if createdProperties["email"] != "jane@acme.test" {
		t.Errorf("email property = %q", createdProperties["email"])
	}
	if createdProperties["firstname"] != "Jane" {
		t.Errorf("firstname property = %q", createdProperties["firstname"])
	}
	if createdProperties["enrichment_lead_score"] != "85" {
		t.Errorf("enrichment_lead_score property = %q", createdProperties["enrichment_lead_score"])
	}
}

func TestHubSpotUpsertPatchesExistingRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/crm/v3/objects/contacts/hs-7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(hubspotObject{ID: "hs-7"})
	}))
	defer srv.Close()

	mappings, _ := loadMappings()
	adapter := NewHubSpotAdapter("test-key", mappings["hubspot"], logger.New("development"))
	adapter.baseURL = srv.URL

	remoteID, err := adapter.UpsertLead(context.Background(), Record{Email: "jane@acme.test"}, "hs-7")
	if err != nil {
		t.Fatalf("UpsertLead: %v", err)
	}
	if remoteID != "hs-7" {
		t.Errorf("remoteID = %q", remoteID)
	}
}

func TestSalesforceUpsertFindsAndUpdates(t *testing.T) {
	var patched map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/services/data/"+salesforceAPIVersion+"/query":
			if q := r.URL.Query().Get("q"); q != "SELECT Id FROM Lead WHERE Email = 'jane@acme.test' LIMIT 1" {
				t.Errorf("soql = %q", q)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"totalSize": 1,
				"records":   []map[string]string{{"Id": "sf-001"}},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/services/data/"+salesforceAPIVersion+"/sobjects/Lead/sf-001":
			json.NewDecoder(r.Body).Decode(&patched)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	mappings, _ := loadMappings()
	adapter := NewSalesforceAdapter(srv.URL, "test-token", mappings["salesforce"], logger.New("development"))

	score := 72
	insights := "high rental market, middle income area, temperate climate"
	record := Record{
		Email:     "jane@acme.test",
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   "Acme",
		Score:     &score,
		Insights:  &insights,
	}

	remoteID, err := adapter.UpsertLead(context.Background(), record, "")
	if err != nil {
		t.Fatalf("UpsertLead: %v", err)
	}
	if remoteID != "sf-001" {
		t.Errorf("remoteID = %q", remoteID)
	}
	if patched["Email"] != "jane@acme.test" {
		t.Errorf("Email field = %v", patched["Email"])
	}
	if patched["Enrichment_Lead_Score__c"] != float64(72) {
		t.Errorf("Enrichment_Lead_Score__c field = %v", patched["Enrichment_Lead_Score__c"])
	}
	if patched["Enrichment_Insights__c"] != insights {
		t.Errorf("Enrichment_Insights__c field = %v", patched["Enrichment_Insights__c"])
	}
}

func TestEscapeSOQL(t *testing.T) {
	if got := escapeSOQL(`o'brien@acme.test`); got != `o\'brien@acme.test` {
		t.Errorf("escapeSOQL = %q", got)
	}
}
