package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadreach_backend/platform/apperr"
	"leadreach_backend/platform/logger"
)

const hubspotBaseURL = "https://api.hubapi.com"

// HubSpotAdapter syncs leads into HubSpot contacts over the v3 CRM API.
type HubSpotAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	mapping    FieldMapping
	log        *logger.Logger
}

func NewHubSpotAdapter(apiKey string, mapping FieldMapping, log *logger.Logger) *HubSpotAdapter {
	return &HubSpotAdapter{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    hubspotBaseURL,
		apiKey:     apiKey,
		mapping:    mapping,
		log:        log,
	}
}

func (a *HubSpotAdapter) Name() string { return "hubspot" }

func (a *HubSpotAdapter) UpsertLead(ctx context.Context, record Record, remoteID string) (string, error) {
	if remoteID == "" {
		found, err := a.findByEmail(ctx, record.Email)
		if err != nil {
			return "", err
		}
		remoteID = found
	}

	// HubSpot property values are always transmitted as strings.
	properties := make(map[string]string)
	for key, value := range mapFields(a.mapping, record.attributes()) {
		properties[key] = fmt.Sprint(value)
	}
	payload := map[string]any{"properties": properties}

	if remoteID != "" {
		var updated hubspotObject
		err := a.doJSON(ctx, http.MethodPatch, "/crm/v3/objects/contacts/"+remoteID, payload, &updated)
		if err != nil {
			return "", err
		}
		return updated.ID, nil
	}

	var created hubspotObject
	if err := a.doJSON(ctx, http.MethodPost, "/crm/v3/objects/contacts", payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

type hubspotObject struct {
	ID string `json:"id"`
}

type hubspotSearchResponse struct {
	Total   int             `json:"total"`
	Results []hubspotObject `json:"results"`
}

func (a *HubSpotAdapter) findByEmail(ctx context.Context, email string) (string, error) {
	payload := map[string]any{
		"filterGroups": []map[string]any{
			{
				"filters": []map[string]any{
					{"propertyName": "email", "operator": "EQ", "value": email},
				},
			},
		},
		"limit": 1,
	}

	var resp hubspotSearchResponse
	if err := a.doJSON(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return resp.Results[0].ID, nil
}

func (a *HubSpotAdapter) doJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode hubspot request", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build hubspot request", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.log.ExternalAPIError("hubspot", method+" "+path, err)
		return apperr.Wrap(apperr.KindExternal, "hubspot request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("hubspot returned status %d: %s", resp.StatusCode, string(data))
		a.log.ExternalAPIError("hubspot", method+" "+path, err)
		return apperr.Wrap(apperr.KindExternal, "hubspot request failed", err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindExternal, "failed to decode hubspot response", err)
	}
	return nil
}
