package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/models"
)

// Session is the authenticated caller of a request
type Session struct {
	EmployeeID uuid.UUID
	PersNo     string
	Role       models.Role
	Circle     string
}

// Can reports whether the session's role may perform action
func (s Session) Can(action Action) bool {
	return Can(s.Role, action)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
