package controllers

import (
	"net/http"
	"strconv"

	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	svc *services.GameService
}

func NewStatsController(svc *services.GameService) *StatsController {
	return &StatsController{svc: svc}
}

func (sc *StatsController) UserStats(c *gin.Context) {
	stats, err := sc.svc.GetStatistics(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_cards_drawn":  stats.TotalCardsDrawn,
		"total_cards_played": stats.TotalCardsPlayed,
		"games_completed":    stats.GamesCompleted,
	})
}

// History pages through the caller's actions, newest first.
func (sc *StatsController) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultHistoryLimit)))
	if err != nil {
		badRequest(c, "Invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		badRequest(c, "Invalid offset")
		return
	}

	history, err := sc.svc.GetHistory(c.Request.Context(), currentUser(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
