package company

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebRoutes mounts the HTML pages at the router root.
func RegisterWebRoutes(r gin.IRoutes, handler *Handler) {
	r.GET("/", handler.Index)
	r.POST("/lookup", handler.Submit)
	r.GET("/company/:cui", handler.Show)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	{
		companies.GET("/:cui", handler.GetByCUI)
	}
}
