package routes

import (
	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type TableRoutes struct {
	tableHandler *handlers.TableHandler
	authenticate gin.HandlerFunc
}

func NewTableRoutes(tableHandler *handlers.TableHandler, authenticate gin.HandlerFunc) *TableRoutes {
	return &TableRoutes{
		tableHandler: tableHandler,
		authenticate: authenticate,
	}
}

func (r *TableRoutes) RegisterRoutes(router *gin.RouterGroup) {
	byDatabase := router.Group("/databases/:databaseId/tables")
	byDatabase.Use(r.authenticate)
	{
		byDatabase.GET("", r.tableHandler.ListTables)
		byDatabase.POST("", r.tableHandler.CreateTable)
		byDatabase.POST("/validate", r.tableHandler.ValidateTable)
	}

	tables := router.Group("/tables")
	tables.Use(r.authenticate)
	{
		tables.GET("/:tableId", r.tableHandler.GetTable)
	}
}
