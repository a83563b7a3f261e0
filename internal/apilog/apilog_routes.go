package apilog

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	logs := r.Group("/api-logs")
	{
		logs.GET("", handler.GetAll)
		logs.GET("/:id", handler.GetByID)
		logs.DELETE("", handler.Purge)
	}
}
