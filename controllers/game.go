package controllers

import (
	"fmt"
	"net/http"

	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/gin-gonic/gin"
)

type GameController struct {
	svc *services.GameService
}

func NewGameController(svc *services.GameService) *GameController {
	return &GameController{svc: svc}
}

type playRequest struct {
	HandPosition     *int  `json:"hand_position" binding:"required"`
	DiscardPositions []int `json:"discard_positions"`
}

type placePendingRequest struct {
	CardsToPlace     []game.Card `json:"cards_to_place" binding:"required"`
	DiscardPositions []int       `json:"discard_positions"`
}

type updateHandRequest struct {
	Hand []*game.Card `json:"hand" binding:"required"`
}

type gameSizeRequest struct {
	GameSize int `json:"game_size" binding:"required"`
}

type drawRequest struct {
	QuestionType string `json:"question_type" binding:"required"`
}

func stateJSON(st game.State) gin.H {
	return gin.H{
		"hand":              st.Hand,
		"game_size":         int(st.Difficulty),
		"deck_size":         st.DeckSize(),
		"deck_composition":  st.DeckTally,
		"discard_pile_size": len(st.DiscardPile),
	}
}

// GetState returns the caller's game, creating it on first visit.
func (gc *GameController) GetState(c *gin.Context) {
	st, err := gc.svc.GetOrCreateState(c.Request.Context(), currentUser(c), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(st))
}

// GetDeck summarizes the deck and discard pile.
func (gc *GameController) GetDeck(c *gin.Context) {
	st, err := gc.svc.GetOrCreateState(c.Request.Context(), currentUser(c), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deck_size":         st.DeckSize(),
		"deck_composition":  st.DeckTally,
		"discard_pile":      st.DiscardPile,
		"discard_pile_size": len(st.DiscardPile),
		"game_size":         int(st.Difficulty),
	})
}

func (gc *GameController) Draw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := gc.svc.Draw(c.Request.Context(), currentUser(c), req.QuestionType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": out.Cards, "count": out.Count, "pick_count": out.Pick})
}

func (gc *GameController) Play(c *gin.Context) {
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	out, err := gc.svc.PlayCard(c.Request.Context(), currentUser(c), *req.HandPosition, req.DiscardPositions)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := stateJSON(out.State)
	resp["success"] = true
	resp["played_card"] = out.Played
	resp["message"] = "Card played successfully"

	if out.Drew {
		resp["drawn_cards"] = out.DrawnCards
		resp["auto_placed"] = out.AutoPlaced
		resp["placed_positions"] = out.PlacedPositions
		if !out.AutoPlaced {
			resp["must_discard_count"] = out.MustDiscardCount
			resp["message"] = fmt.Sprintf("Cards drawn but hand is full. Must discard %d card(s) to make room.", out.MustDiscardCount)
		}
	}
	if out.Curse != nil {
		resp["curse_data"] = out.Curse
	}
	c.JSON(http.StatusOK, resp)
}

func (gc *GameController) PlacePending(c *gin.Context) {
	var req placePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	st, err := gc.svc.PlacePending(c.Request.Context(), currentUser(c), req.CardsToPlace, req.DiscardPositions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(st))
}

func (gc *GameController) UpdateHand(c *gin.Context) {
	var req updateHandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	st, err := gc.svc.SetHand(c.Request.Context(), currentUser(c), req.Hand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(st))
}

func (gc *GameController) UpdateGameSize(c *gin.Context) {
	var req gameSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	st, err := gc.svc.SetDifficulty(c.Request.Context(), currentUser(c), req.GameSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(st))
}

func (gc *GameController) Complete(c *gin.Context) {
	st, err := gc.svc.CompleteGame(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateJSON(st))
}
