package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/khm1546/melon-streaming-ranking/database"
	"github.com/khm1546/melon-streaming-ranking/identity"
)

var (
	userStore *database.MongoUserStore
	gate      *identity.Gate
)

var validate = validator.New()

func InitAuthController() {
	userStore = database.NewMongoUserStore(database.Client)
	gate = identity.NewGate(userStore)
	log.Println("✔ Auth controller initialized")
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Pin      string `json:"pin" validate:"required"`
}

// Login authenticates a username + PIN pair. An unseen username is
// registered with the supplied PIN; a known one must match exactly.
// No token is issued; mutating endpoints re-check the pair themselves.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Println("🔍 [Login] Endpoint hit")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var req loginRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		user, registered, err := gate.Authenticate(ctx, req.Username, req.Pin)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "login successful",
			"registered": registered,
			"user":       user,
		})
	}
}
