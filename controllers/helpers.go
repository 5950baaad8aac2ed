package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resumecraft/backend/auth"
	"github.com/resumecraft/backend/middleware"
)

// requirePrincipal fetches the principal set by the auth middleware. Routes
// using it are always registered behind that middleware, so a miss means a
// wiring bug rather than a caller mistake.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	p, exists := middleware.GetPrincipal(c)
	if !exists {
		slog.Error("no principal on request, is the auth middleware installed?", "path", c.FullPath())
		c.String(http.StatusForbidden, "Not allowed to access this resource")
		return auth.Principal{}, false
	}
	return p, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid identifier")
		return uuid.Nil, false
	}
	return id, true
}

// denyResource rejects access to a resource the principal does not own.
// Denied and not-found are indistinguishable to the caller so that probing
// other tenants' identifiers reveals nothing; only the log tells them apart.
func denyResource(c *gin.Context, err error) {
	switch auth.ClassificationOf(err) {
	case auth.ClassIntegrityAnomaly:
		slog.Error("resource has no owner stamped, creation path bug",
			"classification", string(auth.ClassIntegrityAnomaly),
			"path", c.FullPath())
	default:
		slog.Warn("cross-tenant access denied",
			"classification", string(auth.ClassOwnershipMismatch),
			"path", c.FullPath())
	}
	notFound(c)
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Could not find resource")
}
