package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

// PrincipalKey is the gin context key the auth middleware stores the
// authenticated principal under.
const PrincipalKey = "principal"

func currentPrincipal(c *gin.Context) (*model.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}

// mustPrincipal fetches the authenticated principal or writes a 401.
func mustPrincipal(c *gin.Context) (*model.Principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	return p, true
}

// writeError translates a taxonomy error into the portal's JSON error body.
// Errors outside the taxonomy are logged and rendered as a generic 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{
		"status":    status,
		"message":   apperr.Message(err),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
