package database

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

const notificationColumns = `id, employee_id, category, title, message, data, is_read, read_at, created_at`

// NotificationRepository handles the in-app inbox, push tokens and preferences
type NotificationRepository struct {
	db DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts an inbox item
func (r *NotificationRepository) Create(n *models.Notification) error {
	err := r.db.QueryRowx(`
		INSERT INTO notifications (employee_id, category, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at`,
		n.EmployeeID, n.Category, n.Title, n.Message, n.Data,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns an employee's notifications newest first
func (r *NotificationRepository) List(employeeID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE employee_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	list := []models.Notification{}
	if err := r.db.Select(&list, query, employeeID, limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// CountUnread counts an employee's unread notifications
func (r *NotificationRepository) CountUnread(employeeID uuid.UUID) (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM notifications WHERE employee_id = $1 AND is_read = FALSE`, employeeID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of the employee's notifications as read. It reports
// false when the notification does not belong to the employee.
func (r *NotificationRepository) MarkRead(id, employeeID uuid.UUID) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// MarkAllRead marks every unread notification of an employee and returns how many changed
func (r *NotificationRepository) MarkAllRead(employeeID uuid.UUID) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE employee_id = $1 AND is_read = FALSE`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// UpsertPushToken registers a device token, moving it to employeeID if it was
// registered by someone else
func (r *NotificationRepository) UpsertPushToken(t *models.PushToken) error {
	err := r.db.QueryRowx(`
		INSERT INTO push_tokens (employee_id, token, platform, device_info)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			platform = EXCLUDED.platform,
			device_info = EXCLUDED.device_info,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		t.EmployeeID, t.Token, t.Platform, t.DeviceInfo,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to register push token: %w", err)
	}
	return nil
}

// ListPreferences returns the stored preference rows of an employee
func (r *NotificationRepository) ListPreferences(employeeID uuid.UUID) ([]models.NotificationPreference, error) {
	prefs := []models.NotificationPreference{}
	err := r.db.Select(&prefs, `
		SELECT employee_id, category, enabled FROM notification_preferences
		WHERE employee_id = $1`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification preferences: %w", err)
	}
	return prefs, nil
}

// SetPreference upserts one category toggle
func (r *NotificationRepository) SetPreference(employeeID uuid.UUID, category models.NotificationCategory, enabled bool) error {
	_, err := r.db.Exec(`
		INSERT INTO notification_preferences (employee_id, category, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, category) DO UPDATE SET enabled = EXCLUDED.enabled`,
		employeeID, category, enabled)
	if err != nil {
		return fmt.Errorf("failed to update notification preference: %w", err)
	}
	return nil
}

// IsEnabled reports whether a category is enabled; a missing row means enabled
func (r *NotificationRepository) IsEnabled(employeeID uuid.UUID, category models.NotificationCategory) (bool, error) {
	var enabled bool
	found, err := getOptional(r.db, &enabled, `
		SELECT enabled FROM notification_preferences
		WHERE employee_id = $1 AND category = $2`, employeeID, category)
	if err != nil {
		return false, fmt.Errorf("failed to read notification preference: %w", err)
	}
	if !found {
		return true, nil
	}
	return enabled, nil
}
