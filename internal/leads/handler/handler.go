package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/internal/leads/service"
	"leadreach_backend/internal/leads/transport"
	"leadreach_backend/internal/outreach"
	"leadreach_backend/platform/httpkit"
	"leadreach_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// OutreachDeliverer sends a composed outreach message to a recipient.
type OutreachDeliverer interface {
	SendOutreach(ctx context.Context, to, toName, subject, body string) error
	ComposeLinks(to, subject, body string) map[string]string
}

// BulkOutreachScheduler enqueues a bulk outreach campaign for async delivery.
type BulkOutreachScheduler interface {
	ScheduleBulkOutreach(ctx context.Context) error
}

type Handler struct {
	svc       *service.Service
	val       *validator.Validator
	deliverer OutreachDeliverer
	bulk      BulkOutreachScheduler
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetDeliverer wires the email delivery dependency. Nil keeps the send
// endpoints disabled.
func (h *Handler) SetDeliverer(deliverer OutreachDeliverer) {
	h.deliverer = deliverer
}

// SetBulkScheduler wires the async campaign scheduler.
func (h *Handler) SetBulkScheduler(bulk BulkOutreachScheduler) {
	h.bulk = bulk
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.DELETE("", h.DeleteAll)
	rg.GET("/stats", h.Stats)
	rg.GET("/scoring/weights", h.Weights)
	rg.POST("/outreach/bulk-send", h.BulkSend)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/enrich", h.Enrich)
	rg.GET("/:id/score", h.ScoreBreakdown)
	rg.POST("/:id/outreach", h.ComposeOutreach)
	rg.GET("/:id/outreach/alternatives", h.Alternatives)
	rg.GET("/:id/outreach/links", h.OutreachLinks)
	rg.POST("/:id/outreach/send", h.SendOutreach)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToLeadResponse(lead))
}

func (h *Handler) List(c *gin.Context) {
	params := repository.ListParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}
	if raw := c.Query("minScore"); raw != "" {
		if min, err := strconv.Atoi(raw); err == nil {
			params.MinScore = &min
		}
	}

	leads, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, transport.ToLeadResponses(leads))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.leadError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAll(c *gin.Context) {
	deleted, err := h.svc.DeleteAll(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"deleted": deleted})
}

func (h *Handler) Enrich(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.svc.Enrich(c.Request.Context(), id)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) ScoreBreakdown(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	breakdown, err := h.svc.ScoreBreakdown(c.Request.Context(), id)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, breakdown)
}

func (h *Handler) Weights(c *gin.Context) {
	httpkit.OK(c, h.svc.Weights())
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, transport.ToStatsResponse(stats))
}

func (h *Handler) ComposeOutreach(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	req := transport.ComposeOutreachRequest{}
	// Body is optional; an empty body means AI with template fallback.
	_ = c.ShouldBindJSON(&req)

	useAI := true
	if req.UseAI != nil {
		useAI = *req.UseAI
	}

	lead, err := h.svc.ComposeOutreach(c.Request.Context(), id, useAI)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Alternatives(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	count := queryInt(c, "count")
	alternatives, err := h.svc.Alternatives(c.Request.Context(), id, count)
	if err != nil {
		h.leadError(c, err)
		return
	}

	httpkit.OK(c, alternatives)
}

func (h *Handler) OutreachLinks(c *gin.Context) {
	if h.deliverer == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "email delivery not configured", nil)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.leadError(c, err)
		return
	}
	if lead.OutreachMessage == nil {
		httpkit.Error(c, http.StatusConflict, "lead has no outreach message", nil)
		return
	}

	subject := outreach.Subject(lead.Company, lead.City)
	if lead.OutreachSubject != nil {
		subject = *lead.OutreachSubject
	}

	httpkit.OK(c, h.deliverer.ComposeLinks(lead.Email, subject, *lead.OutreachMessage))
}

func (h *Handler) SendOutreach(c *gin.Context) {
	if h.deliverer == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "email delivery not configured", nil)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	req := transport.SendOutreachRequest{}
	_ = c.ShouldBindJSON(&req)
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.leadError(c, err)
		return
	}
	if lead.OutreachMessage == nil || lead.OutreachSubject == nil {
		httpkit.Error(c, http.StatusConflict, "lead has no outreach message", nil)
		return
	}

	recipient := lead.Email
	if req.Recipient != "" {
		recipient = req.Recipient
	}

	ctx := c.Request.Context()
	if err := h.deliverer.SendOutreach(ctx, recipient, lead.Name, *lead.OutreachSubject, *lead.OutreachMessage); err != nil {
		httpkit.Error(c, http.StatusBadGateway, "failed to send outreach email", nil)
		return
	}

	source := "template"
	if lead.OutreachSource != nil {
		source = *lead.OutreachSource
	}
	if err := h.svc.RecordOutreachEmail(ctx, lead.ID, recipient, *lead.OutreachSubject, *lead.OutreachMessage, source); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"sent": true, "recipient": recipient})
}

func (h *Handler) BulkSend(c *gin.Context) {
	if h.bulk == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "bulk outreach not configured", nil)
		return
	}

	if err := h.bulk.ScheduleBulkOutreach(c.Request.Context()); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to schedule bulk outreach", nil)
		return
	}

	httpkit.JSON(c, http.StatusAccepted, gin.H{"scheduled": true})
}

func (h *Handler) leadError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrLeadNotFound) {
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
