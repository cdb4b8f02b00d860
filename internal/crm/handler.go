package crm

import (
	"errors"
	"net/http"

	"leadreach_backend/internal/leads/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/providers", h.Providers)
	group.POST("/:provider/sync", h.SyncAll)
	group.POST("/:provider/leads/:id/sync", h.SyncLead)
}

func (h *Handler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.svc.Providers()})
}

func (h *Handler) SyncAll(c *gin.Context) {
	summary, err := h.svc.SyncAll(c.Request.Context(), c.Param("provider"))
	if err != nil {
		h.syncError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) SyncLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}

	result, err := h.svc.SyncLead(c.Request.Context(), c.Param("provider"), id)
	if err != nil {
		h.syncError(c, err)
		return
	}
	if result.Status != "Success" {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) syncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownProvider):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown crm provider"})
	case errors.Is(err, service.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "crm sync failed"})
	}
}
