package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/ranking"
)

// GetStats aggregates the same approved verification set the unfiltered
// leaderboard ranks, so the two views can never disagree on totals.
func GetStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		records, err := verificationService.ListApproved(ctx, 0)
		if err != nil {
			respondError(c, err)
			return
		}
		totalSongs, err := songStore.Count(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, ranking.ComputeStats(records, totalSongs))
	}
}
