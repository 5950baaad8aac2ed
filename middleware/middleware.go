package middleware

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/resumecraft/backend/config"
)

func GetApiMiddleware(authCfg config.AuthConfig) gin.HandlerFunc {
	switch authCfg.Mode {
	case config.AuthModeJWT:
		slog.Info("Using JWT bearer auth for API routes")
		return BearerTokenAuth(authCfg)
	case config.AuthModeNoop:
		slog.Warn("Using noop auth for API routes, do not use in production")
		return NoopApiAuth()
	default:
		slog.Error("Unknown auth mode", "mode", authCfg.Mode)
		os.Exit(1)
		return nil
	}
}
