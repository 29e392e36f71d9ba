package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

// SalesReportHandler handles the sales report approval workflow
type SalesReportHandler struct {
	approvals *services.ApprovalService
	logger    *logrus.Logger
}

// NewSalesReportHandler creates a new sales report handler
func NewSalesReportHandler(approvals *services.ApprovalService, logger *logrus.Logger) *SalesReportHandler {
	return &SalesReportHandler{approvals: approvals, logger: logger}
}

// Create handles POST /api/v1/sales-reports
func (h *SalesReportHandler) Create(c *gin.Context) {
	var req models.CreateSalesReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.approvals.Create(middleware.MustGetSession(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetAll handles GET /api/v1/sales-reports?status=
func (h *SalesReportHandler) GetAll(c *gin.Context) {
	reports, err := h.approvals.List(middleware.MustGetSession(c), models.SalesReportStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Approve handles POST /api/v1/sales-reports/:id/approve
func (h *SalesReportHandler) Approve(c *gin.Context) {
	h.review(c, h.approvals.Approve)
}

// Reject handles POST /api/v1/sales-reports/:id/reject
func (h *SalesReportHandler) Reject(c *gin.Context) {
	h.review(c, h.approvals.Reject)
}

type reviewFunc func(sess authz.Session, id uuid.UUID, remarks *string) (*models.SalesReport, error)

func (h *SalesReportHandler) review(c *gin.Context, fn reviewFunc) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	// the body is optional
	var req models.ReviewSalesReportRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	report, err := fn(middleware.MustGetSession(c), id, req.Remarks)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
