package routes

import (
	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type DatabaseRoutes struct {
	handler      *handlers.DatabaseHandler
	authenticate gin.HandlerFunc
}

func NewDatabaseRoutes(handler *handlers.DatabaseHandler, authenticate gin.HandlerFunc) *DatabaseRoutes {
	return &DatabaseRoutes{handler: handler, authenticate: authenticate}
}

func (r *DatabaseRoutes) RegisterRoutes(router *gin.RouterGroup) {
	byProject := router.Group("/projects/:slug/databases")
	byProject.Use(r.authenticate)
	{
		byProject.POST("", r.handler.CreateDatabase)
		byProject.GET("", r.handler.ListDatabases)
	}

	databases := router.Group("/databases")
	databases.Use(r.authenticate)
	{
		databases.GET("/:databaseId", r.handler.GetDatabase)
	}
}
