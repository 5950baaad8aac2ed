package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resumecraft/backend/auth"
	"github.com/resumecraft/backend/config"
	"github.com/resumecraft/backend/models"
)

// BearerTokenAuth verifies the Authorization header, resolves the subject to
// an internal user and attaches the request principal to the context. Every
// credential failure is handled here; handlers behind this middleware only
// ever run with a principal present.
//
// The raw token never appears in logs or responses, only the failure
// classification does.
func BearerTokenAuth(authCfg config.AuthConfig) gin.HandlerFunc {
	secret := []byte(authCfg.JwtSecret)
	policy := auth.Policy{
		EnforceAudience: authCfg.EnforceAudience,
		Audience:        authCfg.Audience,
	}

	return func(c *gin.Context) {
		claims, err := auth.Verify(c.Request.Header.Get("Authorization"), secret, policy)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			if auth.IsNoCredential(err) {
				c.String(http.StatusUnauthorized, "No bearer token provided")
				c.Abort()
				return
			}
			slog.Warn("bearer token rejected",
				"classification", string(auth.ClassificationOf(err)),
				"path", c.FullPath())
			c.String(http.StatusUnauthorized, "Authorization header is invalid")
			c.Abort()
			return
		}

		user, err := models.DB.GetOrCreateUser(claims.Subject, claims.Email)
		if err != nil {
			slog.Error("identity resolution failed",
				"classification", string(auth.ClassIdentityStoreUnavailable),
				"path", c.FullPath(),
				"error", err)
			c.String(http.StatusServiceUnavailable, "Identity service temporarily unavailable")
			c.Abort()
			return
		}
		if !user.Active {
			slog.Warn("inactive user rejected", "userId", user.ID)
			c.String(http.StatusForbidden, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(PRINCIPAL_KEY, auth.Principal{
			UserID:     user.ID,
			ExternalID: user.ExternalID,
			Email:      user.Email,
		})

		c.Next()
	}
}

// GetPrincipal returns the principal attached by the auth middleware.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(PRINCIPAL_KEY)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

const PRINCIPAL_KEY = "request_principal"
