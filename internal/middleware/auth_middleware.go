package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/circleops/salesops-backend/internal/authz"
)

// EmployeeHeader carries the caller's employee ID for the legacy mobile client
const EmployeeHeader = "x-employee-id"

// SessionResolver turns credentials into a session
type SessionResolver interface {
	ValidateAccessToken(token string) (authz.Session, error)
	IsTokenExpired(token string) bool
	SessionForEmployee(id uuid.UUID) (authz.Session, error)
}

// abortWithError writes the same body as handlers.ErrorResponse
func abortWithError(c *gin.Context, status int, errKey, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   errKey,
		"message": message,
		"code":    code,
	})
}

// AuthMiddleware resolves the caller from a bearer token. With trustHeader set,
// a request without Authorization may identify itself by x-employee-id.
func AuthMiddleware(resolver SessionResolver, trustHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if trustHeader && c.GetHeader(EmployeeHeader) != "" {
				sessionFromHeader(c, resolver)
				return
			}
			abortWithError(c, http.StatusUnauthorized, "missing_auth_header", "UNAUTHORIZED", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortWithError(c, http.StatusUnauthorized, "invalid_auth_format", "UNAUTHORIZED", "Authorization header must be 'Bearer <token>'")
			return
		}

		token := strings.TrimSpace(parts[1])
		sess, err := resolver.ValidateAccessToken(token)
		if err != nil {
			// a well-formed token past its exp is reported separately so clients refresh
			if resolver.IsTokenExpired(token) {
				abortWithError(c, http.StatusUnauthorized, "token_expired", "UNAUTHORIZED", "Access token has expired")
				return
			}
			abortWithError(c, http.StatusUnauthorized, "invalid_token", "UNAUTHORIZED", "Invalid token")
			return
		}
		setSession(c, sess)
		c.Next()
	}
}

func sessionFromHeader(c *gin.Context, resolver SessionResolver) {
	id, err := uuid.Parse(strings.TrimSpace(c.GetHeader(EmployeeHeader)))
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "invalid_employee_id", "UNAUTHORIZED", "x-employee-id must be a UUID")
		return
	}
	sess, err := resolver.SessionForEmployee(id)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "unknown_employee", "UNAUTHORIZED", "Unknown or inactive employee")
		return
	}
	setSession(c, sess)
	c.Next()
}

// setSession attaches sess to the request context, where handlers and
// anything handed c.Request.Context() can read it back
func setSession(c *gin.Context, sess authz.Session) {
	c.Request = c.Request.WithContext(authz.WithSession(c.Request.Context(), sess))
}

// GetSession returns the session set by AuthMiddleware
func GetSession(c *gin.Context) (authz.Session, bool) {
	return authz.FromContext(c.Request.Context())
}

// MustGetSession returns the session or panics. Only for routes behind AuthMiddleware.
func MustGetSession(c *gin.Context) authz.Session {
	sess, ok := GetSession(c)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// RequireAction rejects callers whose role may not perform action.
// Must be used after AuthMiddleware.
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "missing_session", "UNAUTHORIZED", "Session not found")
			return
		}
		if !sess.Can(action) {
			abortWithError(c, http.StatusForbidden, "insufficient_permissions", "FORBIDDEN",
				"Role "+string(sess.Role)+" may not perform "+string(action))
			return
		}
		c.Next()
	}
}
