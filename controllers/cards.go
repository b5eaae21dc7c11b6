package controllers

import (
	"net/http"
	"strconv"

	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/gin-gonic/gin"
)

type CardController struct {
	svc *services.GameService
}

func NewCardController(svc *services.GameService) *CardController {
	return &CardController{svc: svc}
}

// ListCards returns every card definition.
func (cc *CardController) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, cc.svc.Catalog().Cards())
}

// SampleCards draws random cards without touching any game.
func (cc *CardController) SampleCards(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil {
		badRequest(c, "Invalid count")
		return
	}
	difficulty := 0
	if s := c.Query("difficulty"); s != "" {
		if difficulty, err = strconv.Atoi(s); err != nil {
			badRequest(c, "Invalid difficulty")
			return
		}
	}

	cards, err := cc.svc.Sample(count, difficulty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}
