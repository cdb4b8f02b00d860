package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadreach_backend/platform/apperr"
	"leadreach_backend/platform/logger"
)

const salesforceAPIVersion = "v59.0"

// SalesforceAdapter syncs leads into Salesforce Lead objects using the
// REST API with a pre-issued access token.
type SalesforceAdapter struct {
	httpClient  *http.Client
	instanceURL string
	accessToken string
	mapping     FieldMapping
	log         *logger.Logger
}

func NewSalesforceAdapter(instanceURL, accessToken string, mapping FieldMapping, log *logger.Logger) *SalesforceAdapter {
	return &SalesforceAdapter{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		instanceURL: strings.TrimRight(instanceURL, "/"),
		accessToken: accessToken,
		mapping:     mapping,
		log:         log,
	}
}

func (a *SalesforceAdapter) Name() string { return "salesforce" }

func (a *SalesforceAdapter) UpsertLead(ctx context.Context, record Record, remoteID string) (string, error) {
	if remoteID == "" {
		found, err := a.findByEmail(ctx, record.Email)
		if err != nil {
			return "", err
		}
		remoteID = found
	}

	fields := mapFields(a.mapping, record.attributes())

	if remoteID != "" {
		// Salesforce PATCH on an existing sobject returns 204 with no body.
		path := fmt.Sprintf("/services/data/%s/sobjects/Lead/%s", salesforceAPIVersion, remoteID)
		if err := a.doJSON(ctx, http.MethodPatch, path, fields, nil); err != nil {
			return "", err
		}
		return remoteID, nil
	}

	var created salesforceCreateResponse
	path := fmt.Sprintf("/services/data/%s/sobjects/Lead", salesforceAPIVersion)
	if err := a.doJSON(ctx, http.MethodPost, path, fields, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

type salesforceCreateResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type salesforceQueryResponse struct {
	TotalSize int `json:"totalSize"`
	Records   []struct {
		ID string `json:"Id"`
	} `json:"records"`
}

func (a *SalesforceAdapter) findByEmail(ctx context.Context, email string) (string, error) {
	soql := fmt.Sprintf("SELECT Id FROM Lead WHERE Email = '%s' LIMIT 1", escapeSOQL(email))
	path := fmt.Sprintf("/services/data/%s/query?q=%s", salesforceAPIVersion, url.QueryEscape(soql))

	var resp salesforceQueryResponse
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Records) == 0 {
		return "", nil
	}
	return resp.Records[0].ID, nil
}

func (a *SalesforceAdapter) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "failed to encode salesforce request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.instanceURL+path, body)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build salesforce request", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.log.ExternalAPIError("salesforce", method+" "+path, err)
		return apperr.Wrap(apperr.KindExternal, "salesforce request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("salesforce returned status %d: %s", resp.StatusCode, string(data))
		a.log.ExternalAPIError("salesforce", method+" "+path, err)
		return apperr.Wrap(apperr.KindExternal, "salesforce request failed", err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindExternal, "failed to decode salesforce response", err)
	}
	return nil
}

func escapeSOQL(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}
