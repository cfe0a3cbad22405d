package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/qr", qrHandler)
		api.POST("/roster", rosterHandler)
		api.POST("/card/image", h.cardImageHandler)
	}
}
