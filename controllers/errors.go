package controllers

import (
	"errors"
	"net/http"

	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/utils/logger"
	"github.com/gin-gonic/gin"
)

var statusByKind = map[game.Kind]int{
	game.KindValidation: http.StatusBadRequest,
	game.KindNotFound:   http.StatusNotFound,
	game.KindConflict:   http.StatusConflict,
}

// respondError maps a service error to its status code. Anything that is
// not a game error is logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status, ok := statusByKind[game.KindOf(err)]
	var gerr *game.Error
	if !ok || !errors.As(err, &gerr) {
		logger.Errorf("[HTTP] %s %s: %v (request %s)", c.Request.Method, c.Request.URL.Path, err, c.GetString(logger.RequestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
		return
	}
	c.JSON(status, gin.H{"error": gerr.Reason, "code": gerr.Code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "bad_request"})
}
