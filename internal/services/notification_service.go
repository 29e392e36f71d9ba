package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/utils"
)

const notificationPageSize = 100

// NotificationService manages the in-app inbox, device tokens and preferences.
// Delivery to a push provider happens elsewhere.
type NotificationService struct {
	repo   *database.NotificationRepository
	logger *logrus.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *database.NotificationRepository, logger *logrus.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify stores an inbox item unless the employee disabled the category.
// It reports whether a notification was created.
func (s *NotificationService) Notify(employeeID uuid.UUID, category models.NotificationCategory, title, message string, data models.JSONMap) (bool, error) {
	enabled, err := s.repo.IsEnabled(employeeID, category)
	if err != nil {
		return false, errInternal("failed to read notification preference", err)
	}
	if !enabled {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"category":    category,
		}).Debug("notification suppressed by preference")
		return false, nil
	}

	n := &models.Notification{
		EmployeeID: employeeID,
		Category:   category,
		Title:      title,
		Message:    message,
		Data:       data,
	}
	if err := s.repo.Create(n); err != nil {
		return false, errInternal("failed to create notification", err)
	}
	return true, nil
}

// notifyQuietly is Notify for side effects of other operations; failures are logged only
func (s *NotificationService) notifyQuietly(employeeID uuid.UUID, category models.NotificationCategory, title, message string, data models.JSONMap) {
	if _, err := s.Notify(employeeID, category, title, message, data); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id": employeeID,
			"category":    category,
		}).Warn("failed to deliver notification")
	}
}

// List returns the caller's notifications with the unread count
func (s *NotificationService) List(sess authz.Session, unreadOnly bool) (*models.NotificationList, error) {
	list, err := s.repo.List(sess.EmployeeID, unreadOnly, notificationPageSize)
	if err != nil {
		return nil, errInternal("failed to list notifications", err)
	}
	unread, err := s.repo.CountUnread(sess.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to count notifications", err)
	}
	return &models.NotificationList{Notifications: list, UnreadCount: unread}, nil
}

// MarkAsRead marks one of the caller's notifications as read
func (s *NotificationService) MarkAsRead(sess authz.Session, id uuid.UUID) error {
	ok, err := s.repo.MarkRead(id, sess.EmployeeID)
	if err != nil {
		return errInternal("failed to mark notification read", err)
	}
	if !ok {
		return errNotFound("notification")
	}
	return nil
}

// MarkAllAsRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllAsRead(sess authz.Session) (int64, error) {
	n, err := s.repo.MarkAllRead(sess.EmployeeID)
	if err != nil {
		return 0, errInternal("failed to mark notifications read", err)
	}
	return n, nil
}

// RegisterPushToken upserts a device token. Without an explicit platform it is
// derived from the User-Agent.
func (s *NotificationService) RegisterPushToken(sess authz.Session, req models.RegisterPushTokenRequest, userAgent string) (*models.PushToken, error) {
	device := utils.ParseUserAgent(userAgent)
	platform := req.Platform
	if platform == "" {
		platform = device.Platform
	}

	token := &models.PushToken{
		EmployeeID: sess.EmployeeID,
		Token:      req.Token,
		Platform:   platform,
		DeviceInfo: models.NewNullString(device.String()),
	}
	if err := s.repo.UpsertPushToken(token); err != nil {
		return nil, errInternal("failed to register push token", err)
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": sess.EmployeeID,
		"platform":    platform,
	}).Info("push token registered")
	return token, nil
}

// GetPreferences returns every known category with its enabled flag
func (s *NotificationService) GetPreferences(sess authz.Session) ([]models.NotificationPreference, error) {
	stored, err := s.repo.ListPreferences(sess.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to load notification preferences", err)
	}
	byCategory := make(map[models.NotificationCategory]bool, len(stored))
	for _, p := range stored {
		byCategory[p.Category] = p.Enabled
	}

	prefs := make([]models.NotificationPreference, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		enabled, ok := byCategory[c]
		if !ok {
			enabled = true
		}
		prefs = append(prefs, models.NotificationPreference{EmployeeID: sess.EmployeeID, Category: c, Enabled: enabled})
	}
	return prefs, nil
}

// UpdatePreference toggles one category for the caller
func (s *NotificationService) UpdatePreference(sess authz.Session, category models.NotificationCategory, enabled bool) error {
	if !category.IsValid() {
		return errBadRequest("unknown notification category %q", category)
	}
	if err := s.repo.SetPreference(sess.EmployeeID, category, enabled); err != nil {
		return errInternal("failed to update notification preference", err)
	}
	return nil
}
