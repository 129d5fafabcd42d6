package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Project  *handlers.ProjectHandler
	Database *handlers.DatabaseHandler
	Table    *handlers.TableHandler
	Schema   *handlers.SchemaHandler
}

// RegisterRoutes mounts every resource under /api/v1. authenticate guards
// everything except registration and sign-in.
func RegisterRoutes(router *gin.Engine, h Handlers, authenticate gin.HandlerFunc) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth).RegisterRoutes(api)
	NewUserRoutes(h.User, authenticate).RegisterRoutes(api)
	NewProjectRoutes(h.Project, authenticate).RegisterRoutes(api)
	NewDatabaseRoutes(h.Database, authenticate).RegisterRoutes(api)
	NewTableRoutes(h.Table, authenticate).RegisterRoutes(api)
	NewSchemaRoutes(h.Schema, authenticate).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
