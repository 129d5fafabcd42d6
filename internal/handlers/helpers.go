package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"supaboard/internal/middlewares"
	"supaboard/internal/responses"
	"supaboard/internal/utils"
)

// requireUser returns the id of the authenticated user, writing a 401 when
// the route was reached without the auth middleware.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return uuid.Nil, false
	}
	return user.ID, true
}

// uuidParam parses a path parameter, writing a 400 when it is not a uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
