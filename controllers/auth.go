package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bellapacxx/jetlag-backend/utils/logger"
)

const userIDKey = "userID"

// RequestID tags every request with an id, reusing X-Request-ID when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Auth accepts HS256 bearer tokens whose "sub" claim is the numeric user id.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if header == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token", "code": "unauthorized"})
			return
		}

		userID, err := parseUserToken(raw, key)
		if err != nil {
			logger.Debugf("[Auth] rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "unauthorized"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func parseUserToken(raw string, key []byte) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	var id uint64
	switch sub := claims["sub"].(type) {
	case string:
		id, err = strconv.ParseUint(sub, 10, 64)
	case float64:
		if sub <= 0 || sub != float64(uint64(sub)) {
			return 0, fmt.Errorf("bad sub claim %v", sub)
		}
		id = uint64(sub)
	default:
		return 0, fmt.Errorf("missing sub claim")
	}
	if err != nil || id == 0 {
		return 0, fmt.Errorf("bad sub claim %v", claims["sub"])
	}
	return uint(id), nil
}

// currentUser returns the id set by Auth.
func currentUser(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
