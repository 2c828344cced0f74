package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/khm1546/melon-streaming-ranking/controllers"
	"github.com/khm1546/melon-streaming-ranking/database"
	"github.com/khm1546/melon-streaming-ranking/helpers"
	"github.com/khm1546/melon-streaming-ranking/middleware"
	"github.com/khm1546/melon-streaming-ranking/routes"
)

func main() {
	log.Println("🔍 [main] Starting application...")

	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ [main] No .env file found, relying on environment")
	}

	// the "today" leaderboard window follows the server-local calendar
	// day; streaming parties count against the KST chart day unless TZ
	// overrides it
	if os.Getenv("TZ") == "" {
		if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
			time.Local = loc
		}
	}

	log.Println("🔍 [main] Initializing MongoDB...")
	database.InitDB()
	log.Println("✅ [main] MongoDB initialized successfully")

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 60*time.Second)
	if err := database.SeedSongs(seedCtx, database.Client); err != nil {
		log.Fatalf("❌ [main] Song seeding failed: %v", err)
	}
	cancelSeed()

	uploadDir := os.Getenv("UPLOAD_FOLDER")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	proofs, err := newProofStorage(uploadDir)
	if err != nil {
		log.Fatalf("❌ [main] Proof storage init failed: %v", err)
	}

	controllers.InitAuthController()
	controllers.InitSongController()
	controllers.InitVerificationController(proofs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("🔍 [main] Using port: %s\n", port)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	// reject bodies over 10MB; MaxMultipartMemory only tunes how much of
	// an accepted body is buffered in memory
	router.Use(middleware.BodySizeLimit(10 << 20))
	router.MaxMultipartMemory = 10 << 20

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	log.Println("🔍 [main] Registering routes...")
	routes.AuthRoute(router)
	routes.SongRoute(router)
	routes.LeaderboardRoute(router)
	routes.VerificationRoute(router)
	routes.UserRoute(router)
	routes.StatsRoutes(router)
	router.Static("/uploads", uploadDir)
	log.Println("✅ [main] Routes registered")

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	log.Println("🚀 [main] Server running on port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ [main] Server exited: %v", err)
	}
}

// newProofStorage picks Cloudinary when configured, local disk otherwise.
func newProofStorage(uploadDir string) (helpers.ProofStorage, error) {
	if url := os.Getenv("CLOUDINARY_URL"); url != "" {
		log.Println("🔍 [main] Using Cloudinary proof storage")
		return helpers.NewCloudinaryProofStorage(url, "proofs")
	}
	log.Printf("🔍 [main] Using local proof storage at %s\n", uploadDir)
	return helpers.NewLocalProofStorage(uploadDir)
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
