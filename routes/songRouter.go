package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func SongRoute(router *gin.Engine) {
	router.GET("/api/songs", controller.GetSongs())
	router.GET("/api/songs/:song_id", controller.GetSongByID())
}
