package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/platform/httpkit"
	"leadreach_backend/platform/logger"
	"leadreach_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const archiveTimeout = 30 * time.Second

// LeadLister supplies the leads included in export files.
type LeadLister interface {
	List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error)
}

// Handler handles export requests and API key management.
type Handler struct {
	repo     *Repository
	leads    LeadLister
	val      *validator.Validator
	log      *logger.Logger
	archiver *Archiver
	wg       sync.WaitGroup
}

// NewHandler creates a new export handler.
func NewHandler(repo *Repository, leads LeadLister, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{repo: repo, leads: leads, val: val, log: log}
}

// SetArchiver enables object storage archiving of generated exports.
func (h *Handler) SetArchiver(archiver *Archiver) {
	h.archiver = archiver
}

// Wait blocks until pending archive uploads have completed.
func (h *Handler) Wait() { h.wg.Wait() }

// ---- API Key Management (JWT authenticated) ----

type CreateAPIKeyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type APIKeyResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  string     `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
}

type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func (h *Handler) HandleCreateAPIKey(c *gin.Context) {
	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	plaintext, hash, prefix, err := GenerateAPIKey()
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to generate API key", nil)
		return
	}

	key, err := h.repo.CreateAPIKey(c.Request.Context(), req.Name, hash, prefix)
	if httpkit.HandleError(c, err) {
		return
	}

	// The plaintext key is only shown once, at creation time.
	c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKeyResponse: toAPIKeyResponse(key),
		Key:            plaintext,
	})
}

func (h *Handler) HandleListAPIKeys(c *gin.Context) {
	keys, err := h.repo.ListAPIKeys(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]APIKeyResponse, len(keys))
	for i, k := range keys {
		result[i] = toAPIKeyResponse(k)
	}
	httpkit.OK(c, result)
}

func (h *Handler) HandleRevokeAPIKey(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("keyId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid key id", nil)
		return
	}

	if err := h.repo.RevokeAPIKey(c.Request.Context(), keyID); err != nil {
		if err == ErrAPIKeyNotFound {
			httpkit.Error(c, http.StatusNotFound, "api key not found", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"message": "api key revoked"})
}

// ---- Lead CSV Export (API key authenticated) ----

func (h *Handler) ExportLeadsCSV(c *gin.Context) {
	if keyID, ok := getExportKeyID(c); ok {
		h.repo.TouchAPIKey(c.Request.Context(), keyID)
	}

	params := repository.ListParams{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("minScore")); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid minScore", nil)
			return
		}
		params.MinScore = &minScore
	}

	leads, err := h.leads.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	data, err := renderLeadsCSV(leads)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render export", nil)
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)

	h.archive(filename, data)
}

// archive uploads a snapshot of the export in the background so the
// response is never blocked on object storage.
func (h *Handler) archive(filename string, data []byte) {
	if h.archiver == nil {
		return
	}

	objectName := fmt.Sprintf("%s/%s", time.Now().UTC().Format("2006/01"), filename)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := h.archiver.Store(ctx, objectName, data, "text/csv"); err != nil {
			h.log.Error("failed to archive export", "object", objectName, "error", err)
		}
	}()
}

var csvHeaders = []string{
	"Name", "Email", "Phone", "Company", "Property Address", "City", "State", "Country",
	"Temperature", "Weather Description", "Median Income", "Population", "Percent Renters",
	"Lead Score", "Score Category", "Insights", "Outreach Subject", "Outreach Message",
}

func renderLeadsCSV(leads []repository.Lead) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, lead := range leads {
		if err := writer.Write(leadCSVRow(lead)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func leadCSVRow(lead repository.Lead) []string {
	return []string{
		lead.Name,
		lead.Email,
		strValue(lead.Phone),
		lead.Company,
		strValue(lead.PropertyAddress),
		lead.City,
		lead.State,
		lead.Country,
		floatValue(lead.Temperature),
		strValue(lead.WeatherDescription),
		floatValue(lead.MedianIncome),
		intValue(lead.Population),
		floatValue(lead.PercentRenters),
		scoreValue(lead.Score),
		strValue(lead.ScoreCategory),
		strValue(lead.Insights),
		strValue(lead.OutreachSubject),
		strValue(lead.OutreachMessage),
	}
}

func getExportKeyID(c *gin.Context) (uuid.UUID, bool) {
	keyIDVal, _ := c.Get("exportKeyID")
	keyID, ok := keyIDVal.(uuid.UUID)
	return keyID, ok
}

func toAPIKeyResponse(key APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         key.ID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
		IsActive:   key.IsActive,
		CreatedAt:  key.CreatedAt.Format(time.RFC3339),
		LastUsedAt: key.LastUsedAt,
	}
}

func strValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func intValue(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func scoreValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
