package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func UserRoute(router *gin.Engine) {
	router.GET("/api/users/:username", controller.GetUserByUsername())
	// gin's router cannot hold a static "id" segment next to :username,
	// so /api/users/id/:user_id is matched through a second parameter
	// and the controller checks the literal "id"
	router.GET("/api/users/:username/:user_id", controller.GetUserByID())
}
