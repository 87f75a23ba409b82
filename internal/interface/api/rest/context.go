package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/interface/api/rest/middleware"
	"cloudnest-api/internal/interface/api/rest/validator"
)

// ownerFromContext reads the authenticated user set by the auth middleware.
// A miss means the middleware did not run; that's a server bug, not a
// client error.
func ownerFromContext(c *gin.Context) (user.UUID, bool) {
	ok, id := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "missing authenticated user"})
	}
	return id, ok
}
