package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func StatsRoutes(router *gin.Engine) {
	router.GET("/api/stats", controller.GetStats())
}
