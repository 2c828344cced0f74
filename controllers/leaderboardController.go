package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/ranking"
)

// GetLeaderboard computes the ordered leaderboard for a time filter and
// optional song. The ranked view is derived on every request; filters
// change the ranked set, so nothing is cached across calls.
func GetLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter, err := ranking.ParseFilter(c.DefaultQuery("filter", "all"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be one of all, today, week, month"})
			return
		}

		var songID int64
		if raw := c.Query("songId"); raw != "" {
			songID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid song id"})
				return
			}
		}

		// the store narrows by song, the engine applies the time window
		records, err := verificationService.ListApproved(ctx, songID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, ranking.Rank(records, filter, songID, time.Now()))
	}
}
