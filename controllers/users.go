package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the resolved principal for the current request.
func Me(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":     p.UserID,
		"external_id": p.ExternalID,
		"email":       p.Email,
	})
}
