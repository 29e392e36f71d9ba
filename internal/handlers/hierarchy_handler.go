package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/services"
)

// HierarchyHandler answers reporting-line lookups
type HierarchyHandler struct {
	hierarchy *services.HierarchyService
	logger    *logrus.Logger
}

// NewHierarchyHandler creates a new hierarchy handler
func NewHierarchyHandler(hierarchy *services.HierarchyService, logger *logrus.Logger) *HierarchyHandler {
	return &HierarchyHandler{hierarchy: hierarchy, logger: logger}
}

// Resolve handles GET /api/v1/hierarchy/:persNo
func (h *HierarchyHandler) Resolve(c *gin.Context) {
	view, err := h.hierarchy.Resolve(c.Param("persNo"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Team handles GET /api/v1/hierarchy/:persNo/team?depth=
func (h *HierarchyHandler) Team(c *gin.Context) {
	depth, err := strconv.Atoi(c.DefaultQuery("depth", "1"))
	if err != nil {
		badRequest(c, "depth must be a number")
		return
	}

	view, err := h.hierarchy.Team(c.Param("persNo"), depth)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Chain handles GET /api/v1/hierarchy/:persNo/chain
func (h *HierarchyHandler) Chain(c *gin.Context) {
	chain, err := h.hierarchy.Chain(c.Param("persNo"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, chain)
}
