package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func LeaderboardRoute(router *gin.Engine) {
	router.GET("/api/leaderboard", controller.GetLeaderboard())
}
