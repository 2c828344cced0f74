package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/database"
	"github.com/khm1546/melon-streaming-ranking/helpers"
	"github.com/khm1546/melon-streaming-ranking/verifications"
)

var verificationService *verifications.Service

// InitVerificationController wires the verification service onto the
// Mongo stores. InitAuthController must have run first so the identity
// gate exists.
func InitVerificationController(proofs helpers.ProofStorage) {
	store := database.NewMongoVerificationStore(database.Client)
	songs := database.NewMongoSongStore(database.Client)
	verificationService = verifications.NewService(gate, songs, store, proofs)
	log.Println("✔ Verification controller initialized")
}

// CreateVerification handles the multipart submit/edit request. The
// client either attaches a new proof file or names the already-stored
// image when only the stream count changes.
func CreateVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Println("🔍 [CreateVerification] Endpoint hit")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		username := c.PostForm("username")
		pin := c.PostForm("pin")
		if username == "" || pin == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields (username, pin, songId, streamCount)"})
			return
		}

		songID, err := strconv.ParseInt(c.PostForm("songId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid song id"})
			return
		}
		streamCount, err := strconv.ParseInt(c.PostForm("streamCount"), 10, 64)
		if err != nil {
			respondError(c, verifications.ErrBadStreamCount)
			return
		}

		sub := verifications.Submission{
			Username:           username,
			PIN:                pin,
			SongID:             songID,
			StreamCount:        streamCount,
			ExistingProofImage: c.PostForm("existingProofImage"),
		}

		if file, header, err := c.Request.FormFile("proof"); err == nil {
			defer file.Close()
			sub.Proof = file
			sub.ProofFilename = header.Filename
		}

		record, err := verificationService.Submit(ctx, sub)
		if err != nil {
			respondError(c, err)
			return
		}

		message := "Verification updated successfully"
		if record.CreatedAt.Equal(record.UpdatedAt) {
			message = "Verification created successfully"
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      message,
			"verification": record,
		})
	}
}

func GetVerificationByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		id, err := strconv.ParseInt(c.Param("verification_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification id"})
			return
		}

		record, err := verificationService.GetByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// ApproveVerification and RejectVerification are the moderation path;
// the public client never calls them.
func ApproveVerification() gin.HandlerFunc {
	return setStatusHandler(func(ctx context.Context, id int64) error {
		_, err := verificationService.Approve(ctx, id)
		return err
	})
}

func RejectVerification() gin.HandlerFunc {
	return setStatusHandler(func(ctx context.Context, id int64) error {
		_, err := verificationService.Reject(ctx, id)
		return err
	})
}

func setStatusHandler(apply func(ctx context.Context, id int64) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		id, err := strconv.ParseInt(c.Param("verification_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification id"})
			return
		}
		if err := apply(ctx, id); err != nil {
			respondError(c, err)
			return
		}

		record, err := verificationService.GetByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
