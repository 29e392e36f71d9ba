package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

// EventHandler handles events, team assignment, field sales and subtasks
type EventHandler struct {
	events *services.EventService
	logger *logrus.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.Create(c.Request.Context(), middleware.MustGetSession(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetAll handles GET /api/v1/events?circle=&status=
func (h *EventHandler) GetAll(c *gin.Context) {
	events, err := h.events.List(c.Query("circle"), models.EventStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetDetails handles GET /api/v1/events/:id
func (h *EventHandler) GetDetails(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.events.GetDetails(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// MyTasks handles GET /api/v1/events/my-tasks
func (h *EventHandler) MyTasks(c *gin.Context) {
	tasks, err := h.events.MyTasks(middleware.MustGetSession(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// AssignTeam handles POST /api/v1/events/:id/team
func (h *EventHandler) AssignTeam(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.AssignTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.events.AssignTeam(middleware.MustGetSession(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatus handles PATCH /api/v1/events/:id/status
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateEventStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.events.UpdateStatus(c.Request.Context(), middleware.MustGetSession(c), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// SubmitSales handles POST /api/v1/events/:id/sales
func (h *EventHandler) SubmitSales(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.SubmitEventSalesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.events.SubmitSales(c.Request.Context(), middleware.MustGetSession(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// CreateSubtask handles POST /api/v1/events/:id/subtasks
func (h *EventHandler) CreateSubtask(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.CreateSubtaskRequest
	if !bindJSON(c, &req) {
		return
	}

	subtask, err := h.events.CreateSubtask(middleware.MustGetSession(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, subtask)
}

// UpdateSubtaskStatus handles PATCH /api/v1/subtasks/:id/status
func (h *EventHandler) UpdateSubtaskStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateSubtaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	subtask, err := h.events.UpdateSubtaskStatus(middleware.MustGetSession(c), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, subtask)
}
