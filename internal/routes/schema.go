package routes

import (
	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type SchemaRoutes struct {
	handler      *handlers.SchemaHandler
	authenticate gin.HandlerFunc
}

func NewSchemaRoutes(handler *handlers.SchemaHandler, authenticate gin.HandlerFunc) *SchemaRoutes {
	return &SchemaRoutes{handler: handler, authenticate: authenticate}
}

func (r *SchemaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	schema := router.Group("/databases/:databaseId/schema")
	schema.Use(r.authenticate)
	{
		schema.GET("", r.handler.VisualizeSchema)
	}
}
