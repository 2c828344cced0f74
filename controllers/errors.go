package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khm1546/melon-streaming-ranking/identity"
	"github.com/khm1546/melon-streaming-ranking/verifications"
)

// respondError maps service errors onto HTTP statuses. The code field
// carries the machine-readable taxonomy (the client switches on
// pin_mismatch to re-prompt for the PIN); error stays human-readable.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrBadPINFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must be exactly 4 digits", "code": "bad_pin_format"})
	case errors.Is(err, verifications.ErrBadStreamCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "stream count must be a positive integer", "code": "bad_stream_count"})
	case errors.Is(err, verifications.ErrMissingProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no proof image provided", "code": "missing_proof"})
	case errors.Is(err, verifications.ErrBadProofType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type", "code": "bad_proof_type"})
	case errors.Is(err, identity.ErrPINMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid PIN for this username", "code": "pin_mismatch"})
	case errors.Is(err, verifications.ErrSongNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "song not found", "code": "not_found"})
	case errors.Is(err, verifications.ErrVerificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found", "code": "not_found"})
	case errors.Is(err, identity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found", "code": "not_found"})
	default:
		log.Println("❌ [controllers] Internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "internal"})
	}
}
