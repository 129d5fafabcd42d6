package routes

import (
	"github.com/gin-gonic/gin"

	"supaboard/internal/handlers"
)

type UserRoutes struct {
	userHandler  *handlers.UserHandler
	authenticate gin.HandlerFunc
}

func NewUserRoutes(userHandler *handlers.UserHandler, authenticate gin.HandlerFunc) *UserRoutes {
	return &UserRoutes{
		userHandler:  userHandler,
		authenticate: authenticate,
	}
}

func (r *UserRoutes) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(r.authenticate)
	{
		users.GET("/me", r.userHandler.GetMe)
	}
}
