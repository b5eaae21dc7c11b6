package routes

import (
	"net/http"
	"time"

	"github.com/bellapacxx/jetlag-backend/controllers"
	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, svc *services.GameService, jwtSecret string) {
	cards := controllers.NewCardController(svc)
	games := controllers.NewGameController(svc)
	stats := controllers.NewStatsController(svc)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	api := r.Group("/api")

	// ----------------------
	// Card routes
	// ----------------------
	api.GET("/cards", cards.ListCards)
	api.GET("/cards/sample", cards.SampleCards)

	auth := controllers.Auth(jwtSecret)

	// ----------------------
	// Game routes
	// ----------------------
	game := api.Group("/game", auth)
	game.GET("/state", games.GetState)
	game.GET("/deck", games.GetDeck)
	game.POST("/draw", games.Draw)
	game.POST("/play", games.Play)
	game.POST("/place-pending-cards", games.PlacePending)
	game.PUT("/hand", games.UpdateHand)
	game.PUT("/difficulty", games.UpdateGameSize)
	game.PUT("/hand-size", games.UpdateGameSize) // older clients
	game.POST("/complete", games.Complete)

	// ----------------------
	// Stats routes
	// ----------------------
	st := api.Group("/stats", auth)
	st.GET("/user", stats.UserStats)
	st.GET("/history", stats.History)
}
