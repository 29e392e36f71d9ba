package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/services"
)

// SalesHandler serves recorded sales and finance collections
type SalesHandler struct {
	sales  *services.SalesService
	logger *logrus.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(sales *services.SalesService, logger *logrus.Logger) *SalesHandler {
	return &SalesHandler{sales: sales, logger: logger}
}

func salesQuery(c *gin.Context) services.SalesQuery {
	return services.SalesQuery{
		Circle: c.Query("circle"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
}

// GetAll handles GET /api/v1/sales?circle=&from=&to=
func (h *SalesHandler) GetAll(c *gin.Context) {
	records, err := h.sales.List(salesQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": records})
}

// GetByType handles GET /api/v1/sales/type/:type
func (h *SalesHandler) GetByType(c *gin.Context) {
	records, err := h.sales.ListByType(c.Param("type"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": records})
}

// GetFinanceCollections handles GET /api/v1/sales/finance/collections
func (h *SalesHandler) GetFinanceCollections(c *gin.Context) {
	collections, err := h.sales.ListCollections(salesQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetFinanceSummary handles GET /api/v1/sales/finance/summary?circle=
func (h *SalesHandler) GetFinanceSummary(c *gin.Context) {
	summary, err := h.sales.FinanceSummary(c.Request.Context(), c.Query("circle"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
