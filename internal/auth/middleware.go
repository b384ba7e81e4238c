package auth

import (
	"strings"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
)

const (
	adminKey   = "admin"
	adminIDKey = "admin_id"
)

// Middleware gates routes on bearer tokens.
type Middleware struct {
	svc *Service
}

func NewMiddleware(svc *Service) *Middleware {
	return &Middleware{svc: svc}
}

// Protect rejects requests without a valid token for an active admin.
func (m *Middleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			httpx.Fail(c, apperr.Unauthorized("Not authorized, no token"))
			return
		}

		admin, err := m.svc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		setAdmin(c, admin)
		c.Next()
	}
}

// Superadmin must run after Protect.
func (m *Middleware) Superadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		if !ok {
			httpx.Fail(c, apperr.Unauthorized("Not authorized"))
			return
		}
		if admin.Role != RoleSuperadmin {
			httpx.Fail(c, apperr.Forbidden("Access denied. Superadmin only."))
			return
		}
		c.Next()
	}
}

// Optional attaches the admin when a valid token is present and never rejects.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if admin, err := m.svc.Authenticate(c.Request.Context(), raw); err == nil {
				setAdmin(c, admin)
			}
		}
		c.Next()
	}
}

func CurrentAdmin(c *gin.Context) (*Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*Admin)
	return admin, ok && admin != nil
}

// IsStaff reports whether Protect or Optional attached an admin or superadmin.
// Accounts with the user role are treated like anonymous callers.
func IsStaff(c *gin.Context) bool {
	admin, ok := CurrentAdmin(c)
	return ok && admin.Role.IsStaff()
}

func setAdmin(c *gin.Context, admin *Admin) {
	c.Set(adminKey, admin)
	c.Set(adminIDKey, admin.ID.Hex())
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
