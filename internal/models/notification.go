package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCategory groups notifications for preference toggles
type NotificationCategory string

const (
	CategoryAssignment NotificationCategory = "assignment"
	CategoryIssue      NotificationCategory = "issue"
	CategoryApproval   NotificationCategory = "approval"
	CategoryEvent      NotificationCategory = "event"
	CategorySystem     NotificationCategory = "system"
)

// AllCategories lists every notification category
var AllCategories = []NotificationCategory{
	CategoryAssignment,
	CategoryIssue,
	CategoryApproval,
	CategoryEvent,
	CategorySystem,
}

// IsValid reports whether c is a known category
func (c NotificationCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Notification is an in-app inbox item
type Notification struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	EmployeeID uuid.UUID            `db:"employee_id" json:"employee_id"`
	Category   NotificationCategory `db:"category" json:"category"`
	Title      string               `db:"title" json:"title"`
	Message    string               `db:"message" json:"message"`
	Data       JSONMap              `db:"data" json:"data"`
	IsRead     bool                 `db:"is_read" json:"is_read"`
	ReadAt     *time.Time           `db:"read_at" json:"read_at,omitempty"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

// PushToken is a device registration for push delivery
type PushToken struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	EmployeeID uuid.UUID  `db:"employee_id" json:"employee_id"`
	Token      string     `db:"token" json:"token"`
	Platform   string     `db:"platform" json:"platform"`
	DeviceInfo NullString `db:"device_info" json:"device_info,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// NotificationPreference toggles one category for an employee
type NotificationPreference struct {
	EmployeeID uuid.UUID            `db:"employee_id" json:"-"`
	Category   NotificationCategory `db:"category" json:"category"`
	Enabled    bool                 `db:"enabled" json:"enabled"`
}

// RegisterPushTokenRequest is the body of notifications.registerPushToken
type RegisterPushTokenRequest struct {
	Token    string `json:"token" binding:"required,max=512"`
	Platform string `json:"platform" binding:"omitempty,oneof=android ios web"`
}

// UpdatePreferenceRequest is the body of notifications.updatePreference
type UpdatePreferenceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// NotificationList is the response of notifications.getAll
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
