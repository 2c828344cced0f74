package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func AuthRoute(router *gin.Engine) {
	router.POST("/api/auth/login", controller.Login())
}
