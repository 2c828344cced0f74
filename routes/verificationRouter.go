package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/khm1546/melon-streaming-ranking/controllers"
)

func VerificationRoute(router *gin.Engine) {
	router.POST("/api/verifications", controller.CreateVerification())
	router.GET("/api/verifications/:verification_id", controller.GetVerificationByID())

	// moderation endpoints; not called by the public client
	router.PUT("/api/verifications/:verification_id/approve", controller.ApproveVerification())
	router.PUT("/api/verifications/:verification_id/reject", controller.RejectVerification())
}
