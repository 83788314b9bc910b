package middleware

import (
	"net/http"
	"strings"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	identityKey = "identity"

	// TokenCookieName carries the JWT for browser clients that cannot set
	// an Authorization header.
	TokenCookieName = "nexa_token"
	// SessionCookieName carries the admin server-session id.
	SessionCookieName = "nexa_admin_session"
)

// Authenticator resolves a caller identity from one of three credential
// carriers. Whichever variant runs, downstream handlers read the same
// domain.Identity via IdentityFrom.
type Authenticator struct {
	jwt      *utils.JWTManager
	sessions domain.SessionRepository
	users    domain.UserRepository
}

func NewAuthenticator(jwt *utils.JWTManager, sessions domain.SessionRepository, users domain.UserRepository) *Authenticator {
	return &Authenticator{jwt: jwt, sessions: sessions, users: users}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

func (a *Authenticator) attachClaims(c *gin.Context, tokenStr string) {
	claims, err := a.jwt.VerifyToken(tokenStr)
	if err != nil {
		// Expired and malformed are logged apart but look identical to
		// the caller.
		log.Debug().Err(err).Msg("token verification failed")
		abortUnauthorized(c, "Invalid token")
		return
	}

	c.Set(identityKey, domain.Identity{
		UUID:  claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
		Name:  claims.Name,
	})
	c.Next()
}

// BearerToken authenticates from the Authorization header.
func (a *Authenticator) BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing token")
			return
		}
		a.attachClaims(c, strings.TrimPrefix(authHeader, "Bearer "))
	}
}

// SignedCookie authenticates from the token cookie. Same failure taxonomy as
// BearerToken.
func (a *Authenticator) SignedCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(TokenCookieName)
		if err != nil || tokenStr == "" {
			abortUnauthorized(c, "Missing token")
			return
		}
		a.attachClaims(c, tokenStr)
	}
}

// ServerSession authenticates admins from a persisted session record and
// re-resolves the referenced account on every request.
func (a *Authenticator) ServerSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			abortUnauthorized(c, "Missing session")
			return
		}

		sess, err := a.sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			abortUnauthorized(c, "Invalid session")
			return
		}

		user, err := a.users.GetUserByUUID(c.Request.Context(), sess.UserUUID)
		if err != nil {
			abortUnauthorized(c, "Invalid session")
			return
		}
		if user.Status != domain.StatusActive {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Account is not active",
			})
			c.Abort()
			return
		}

		c.Set(identityKey, domain.Identity{
			UUID:  user.UUID,
			Email: user.Email,
			Role:  user.Role,
			Name:  user.Name,
		})
		c.Next()
	}
}

// RequireRole admits only the listed roles. It must run after one of the
// Authenticator variants; a request with no resolved identity gets 401, a
// wrong role gets 403.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abortUnauthorized(c, "Missing identity")
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the caller identity attached by an Authenticator
// variant.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
