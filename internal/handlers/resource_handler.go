package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

// ResourceHandler serves the SIM/FTTH stock ledger
type ResourceHandler struct {
	ledger *services.LedgerService
	logger *logrus.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(ledger *services.LedgerService, logger *logrus.Logger) *ResourceHandler {
	return &ResourceHandler{ledger: ledger, logger: logger}
}

// GetAll handles GET /api/v1/resources?circle=
func (h *ResourceHandler) GetAll(c *gin.Context) {
	resources, err := h.ledger.GetAll(c.Query("circle"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// GetSummary handles GET /api/v1/resources/summary
func (h *ResourceHandler) GetSummary(c *gin.Context) {
	summary, err := h.ledger.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// UpdateStock handles PUT /api/v1/resources/:circle/:type
func (h *ResourceHandler) UpdateStock(c *gin.Context) {
	var req models.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	resource, err := h.ledger.UpdateStock(c.Request.Context(), middleware.MustGetSession(c),
		c.Param("circle"), c.Param("type"), *req.NewTotal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}
