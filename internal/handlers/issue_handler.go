package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

// IssueHandler handles field issue escalation
type IssueHandler struct {
	issues *services.IssueService
	logger *logrus.Logger
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issues *services.IssueService, logger *logrus.Logger) *IssueHandler {
	return &IssueHandler{issues: issues, logger: logger}
}

// Create handles POST /api/v1/issues
func (h *IssueHandler) Create(c *gin.Context) {
	var req models.CreateIssueRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issues.Create(middleware.MustGetSession(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// GetAll handles GET /api/v1/issues?status=
func (h *IssueHandler) GetAll(c *gin.Context) {
	issues, err := h.issues.List(middleware.MustGetSession(c), models.IssueStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// UpdateStatus handles PATCH /api/v1/issues/:id/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateIssueStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	issue, err := h.issues.UpdateStatus(middleware.MustGetSession(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}
