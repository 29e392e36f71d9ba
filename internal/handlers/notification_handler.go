package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
	"github.com/circleops/salesops-backend/internal/utils"
)

// NotificationHandler serves the caller's inbox, push tokens and preferences
type NotificationHandler struct {
	notifications *services.NotificationService
	logger        *logrus.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// GetAll handles GET /api/v1/notifications?unread_only=true
func (h *NotificationHandler) GetAll(c *gin.Context) {
	list, err := h.notifications.List(middleware.MustGetSession(c), c.Query("unread_only") == "true")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkAsRead handles PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkAsRead(middleware.MustGetSession(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as read"})
}

// MarkAllAsRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	n, err := h.notifications.MarkAllAsRead(middleware.MustGetSession(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// RegisterPushToken handles POST /api/v1/notifications/push-tokens
func (h *NotificationHandler) RegisterPushToken(c *gin.Context) {
	var req models.RegisterPushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.notifications.RegisterPushToken(middleware.MustGetSession(c), req, utils.GetUserAgent(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// GetPreferences handles GET /api/v1/notifications/preferences
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.notifications.GetPreferences(middleware.MustGetSession(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreference handles PUT /api/v1/notifications/preferences/:category
func (h *NotificationHandler) UpdatePreference(c *gin.Context) {
	var req models.UpdatePreferenceRequest
	if !bindJSON(c, &req) {
		return
	}

	category := models.NotificationCategory(c.Param("category"))
	if err := h.notifications.UpdatePreference(middleware.MustGetSession(c), category, *req.Enabled); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.NotificationPreference{Category: category, Enabled: *req.Enabled})
}
