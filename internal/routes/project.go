package routes

import (
	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type ProjectRoutes struct {
	handler      *handlers.ProjectHandler
	authenticate gin.HandlerFunc
}

func NewProjectRoutes(handler *handlers.ProjectHandler, authenticate gin.HandlerFunc) *ProjectRoutes {
	return &ProjectRoutes{handler: handler, authenticate: authenticate}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	projects.Use(r.authenticate)
	{
		projects.POST("", r.handler.CreateProject)
		projects.GET("", r.handler.ListProjects)
		projects.GET("/:slug", r.handler.GetProject)
		projects.DELETE("/:id", r.handler.DeleteProject)
	}
}
