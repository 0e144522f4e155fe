package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/auth"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Authenticator turns bearer tokens into a principal on the gin context.
// The account is reloaded on every request so suspension and deletion take
// effect before the token expires.
type Authenticator struct {
	tokens *auth.Tokens
	users  domain.UserRepository
	log    *zap.Logger
}

func NewAuthenticator(tokens *auth.Tokens, users domain.UserRepository, log *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// RequireAuth rejects requests without a valid session.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			httperr.Unauthorized(c, httperr.CodeUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}
		if err := a.authenticate(c, raw); err != nil {
			httperr.Respond(c, a.log, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the principal when a valid token is present and lets
// anonymous requests through.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearer(c); ok {
			if err := a.authenticate(c, raw); err != nil {
				a.log.Debug("ignoring credentials", zap.Error(err))
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsAdmin() {
			httperr.Forbidden(c, httperr.CodeAdminRequired, httperr.Message(httperr.CodeAdminRequired))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context, raw string) error {
	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return httperr.ErrUnauthorized(httperr.CodeUnauthorized)
	}

	u, err := a.users.GetUser(c.Request.Context(), claims.UserID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return httperr.ErrUnauthorized(httperr.CodeUnauthorized)
	}
	if err != nil {
		return err
	}
	if u.IsDeleted {
		return httperr.ErrUnauthorized(httperr.CodeUnauthorized)
	}
	if !u.CanSignIn() {
		return httperr.ErrForbidden(httperr.CodeAccountSuspended)
	}

	c.Set(ContextUserID, u.ID)
	c.Set(ContextUserRole, u.Role)
	return nil
}

func bearer(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFrom reads the caller set by the auth middleware.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return domain.Principal{}, false
	}
	userID, ok := id.(uint)
	if !ok {
		return domain.Principal{}, false
	}
	role, _ := c.Get(ContextUserRole)
	roleStr, _ := role.(string)
	return domain.Principal{UserID: userID, Role: roleStr}, true
}
