package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/models"
)

// GetUserByUsername returns a profile: the user's verifications plus
// their approved stream total.
func GetUserByUsername() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := userStore.GetByUsername(ctx, c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondProfile(ctx, c, user)
	}
}

func GetUserByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// matched as /api/users/:username/:user_id; only /api/users/id/N
		// is a real route
		if c.Param("username") != "id" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
			return
		}

		userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		user, err := userStore.GetByID(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondProfile(ctx, c, user)
	}
}

func respondProfile(ctx context.Context, c *gin.Context, user *models.User) {
	profile, err := verificationService.ProfileFor(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
