package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/constants"
	apierrors "github.com/yukikurage/task-project-api/internal/errors"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/metrics"
)

const bearerPrefix = "Bearer "

// JWTAuth authenticates the request from its bearer token.
// It never rejects a request: anything short of a valid token for an enabled
// user leaves the request unauthenticated and RequireAuth decides.
func JWTAuth(tokens auth.TokenService, users auth.UserDetailsService, log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	gate := &jwtGate{
		tokens: tokens,
		users:  users,
		log:    log.WithComponent("jwt_auth"),
		m:      m,
	}

	return func(c *gin.Context) {
		gate.authenticate(c)
		c.Next()
	}
}

type jwtGate struct {
	tokens auth.TokenService
	users  auth.UserDetailsService
	log    *logger.Logger
	m      *metrics.Metrics
}

func (g *jwtGate) authenticate(c *gin.Context) {
	if _, ok := auth.PrincipalFromContext(c.Request.Context()); ok {
		return
	}

	header := c.GetHeader("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return
	}
	token := header[len(bearerPrefix):]

	username := g.tokens.ExtractUsername(token)
	if username == "" {
		g.m.ObserveAuth(metrics.AuthInvalidToken)
		g.log.LogSecurityEvent("malformed_token", "", c.ClientIP(), nil)
		return
	}

	record, err := g.loadUser(c, username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			g.m.ObserveAuth(metrics.AuthUserNotFound)
			g.log.LogSecurityEvent("unknown_user", username, c.ClientIP(), nil)
		} else {
			g.m.ObserveAuth(metrics.AuthLookupError)
			g.log.Errorw("User lookup failed", "username", username, "error", err)
		}
		return
	}

	if !record.Enabled || !g.tokens.IsTokenValid(token, *record) {
		g.m.ObserveAuth(metrics.AuthInvalidToken)
		g.log.LogSecurityEvent("invalid_token", username, c.ClientIP(), map[string]interface{}{
			"enabled": record.Enabled,
		})
		return
	}

	principal := auth.NewPrincipal(*record, c.ClientIP())
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
	c.Set(constants.ContextKeyPrincipal, principal)
	g.m.ObserveAuth(metrics.AuthAuthenticated)
}

var errLookupPanic = errors.New("user lookup panicked")

// loadUser turns a panic inside the lookup into an error
func (g *jwtGate) loadUser(c *gin.Context, username string) (record *auth.UserRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("%w: %v", errLookupPanic, r)
		}
	}()

	record, err = g.users.LoadUserByUsername(c.Request.Context(), username)
	if err == nil && record == nil {
		err = auth.ErrUserNotFound
	}
	return record, err
}

// RequireAuth rejects requests the gate did not authenticate
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated caller of the request
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	return auth.PrincipalFromContext(c.Request.Context())
}
