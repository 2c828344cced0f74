package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/database"
)

var songStore *database.MongoSongStore

func InitSongController() {
	songStore = database.NewMongoSongStore(database.Client)
	log.Println("✔ Song controller initialized")
}

// GetSongs returns the full catalog ordered by cached stream count.
func GetSongs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		songs, err := songStore.ListAll(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, songs)
	}
}

func GetSongByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		songID, err := strconv.ParseInt(c.Param("song_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid song id"})
			return
		}

		song, err := songStore.GetByID(ctx, songID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, song)
	}
}
