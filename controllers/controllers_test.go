package controllers_test

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bellapacxx/jetlag-backend/config"
	"github.com/bellapacxx/jetlag-backend/controllers"
	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/routes"
	"github.com/bellapacxx/jetlag-backend/services"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const secret = "test-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cards := []game.Card{
		{ID: 1, Type: game.TypeTimeBonus, Color: "Red", CountInPool: 3, WeightSmall: 2, WeightMedium: 3, WeightLarge: 5},
		{ID: 2, Type: game.TypeAction, Name: "Discard 1 Draw 2", CountInPool: 2},
		{ID: 3, Type: game.TypeCurse, Name: "Curse of the Cairn", CountInPool: 1, WeightLarge: 1,
			CastingCost: &game.CastingCost{Discard: 1}, CurseText: "Build a rock tower."},
	}
	if _, err := services.SeedCatalog(db, cards); err != nil {
		t.Fatalf("seed: %v", err)
	}
	catalog, err := services.LoadCatalog(db)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc := services.NewGameService(db, catalog, game.NewSampler(catalog, rand.New(rand.NewPCG(3, 4))), services.Options{})

	r := gin.New()
	r.Use(controllers.RequestID())
	routes.SetupRoutes(r, svc, secret)
	return r
}

func token(t *testing.T, sub interface{}, key string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func do(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w, body := do(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health = %d %v", w.Code, body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestAuthRequired(t *testing.T) {
	r := newRouter(t)
	cases := []struct {
		name   string
		bearer string
	}{
		{"no token", ""},
		{"garbage", "not-a-jwt"},
		{"wrong key", token(t, "1", "other-secret")},
		{"no subject", token(t, nil, secret)},
		{"bad subject", token(t, "alice", secret)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := do(t, r, http.MethodGet, "/api/game/state", tc.bearer, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}

	w, _ := do(t, r, http.MethodGet, "/api/game/state", token(t, float64(9), secret), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("numeric sub rejected: %d", w.Code)
	}
}

func TestGameFlow(t *testing.T) {
	r := newRouter(t)
	bearer := token(t, "1", secret)

	w, body := do(t, r, http.MethodGet, "/api/game/state", bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state = %d %v", w.Code, body)
	}
	if body["game_size"] != float64(5) || body["deck_size"] != float64(6) {
		t.Fatalf("state body = %v", body)
	}

	hand := []interface{}{
		map[string]interface{}{"id": 1},
		map[string]interface{}{"id": 2},
		map[string]interface{}{"id": 3},
		map[string]interface{}{"id": 1},
		nil,
	}
	w, body = do(t, r, http.MethodPut, "/api/game/hand", bearer, map[string]interface{}{"hand": hand})
	if w.Code != http.StatusOK {
		t.Fatalf("update hand = %d %v", w.Code, body)
	}

	// curse without its discard cost
	w, body = do(t, r, http.MethodPost, "/api/game/play", bearer, map[string]interface{}{"hand_position": 2})
	if w.Code != http.StatusBadRequest || body["code"] != "invalid_discard_selection" {
		t.Fatalf("curse without cost = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPost, "/api/game/play", bearer, map[string]interface{}{
		"hand_position":     2,
		"discard_positions": []int{3},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("play curse = %d %v", w.Code, body)
	}
	curse, ok := body["curse_data"].(map[string]interface{})
	if !ok || curse["curse_text"] != "Build a rock tower." {
		t.Fatalf("curse data = %v", body["curse_data"])
	}

	w, body = do(t, r, http.MethodPost, "/api/game/play", bearer, map[string]interface{}{
		"hand_position":     1,
		"discard_positions": []int{0},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("play discard/draw = %d %v", w.Code, body)
	}
	if body["auto_placed"] != true {
		t.Fatalf("expected auto placement: %v", body)
	}
	if drawn, _ := body["drawn_cards"].([]interface{}); len(drawn) != 2 {
		t.Fatalf("drawn = %v", body["drawn_cards"])
	}

	w, body = do(t, r, http.MethodPost, "/api/game/play", bearer, map[string]interface{}{"hand_position": 4})
	if w.Code != http.StatusNotFound || body["code"] != "empty_slot" {
		t.Fatalf("empty slot = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodGet, "/api/stats/user", bearer, nil)
	if w.Code != http.StatusOK || body["total_cards_played"] != float64(2) || body["total_cards_drawn"] != float64(2) {
		t.Fatalf("stats = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodGet, "/api/game/deck", bearer, nil)
	if w.Code != http.StatusOK || body["discard_pile_size"] != float64(4) {
		t.Fatalf("deck = %d %v", w.Code, body)
	}
}

func TestGameSizeAndDraw(t *testing.T) {
	r := newRouter(t)
	bearer := token(t, "2", secret)

	w, body := do(t, r, http.MethodPut, "/api/game/hand-size", bearer, map[string]interface{}{"game_size": 3})
	if w.Code != http.StatusOK || body["game_size"] != float64(3) {
		t.Fatalf("hand-size = %d %v", w.Code, body)
	}
	w, body = do(t, r, http.MethodPut, "/api/game/difficulty", bearer, map[string]interface{}{"game_size": 7})
	if w.Code != http.StatusBadRequest || body["code"] != "invalid_difficulty" {
		t.Fatalf("difficulty 7 = %d %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPost, "/api/game/draw", bearer, map[string]interface{}{"question_type": "Radar"})
	if w.Code != http.StatusOK || body["count"] != float64(2) || body["pick_count"] != float64(1) {
		t.Fatalf("draw = %d %v", w.Code, body)
	}
	w, body = do(t, r, http.MethodPost, "/api/game/draw", bearer, map[string]interface{}{"question_type": "Vibes"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad question type = %d %v", w.Code, body)
	}

	w, _ = do(t, r, http.MethodPost, "/api/game/complete", bearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("complete = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats/history?limit=2", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var history []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("history body: %v", err)
	}
	if len(history) != 2 || history[0]["action_type"] != "complete_game" {
		t.Fatalf("history = %v", history)
	}
}

func TestCardsEndpoints(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var cards []game.Card
	if err := json.Unmarshal(w.Body.Bytes(), &cards); err != nil || len(cards) != 3 {
		t.Fatalf("cards = %v (%v)", cards, err)
	}

	w, body := do(t, r, http.MethodGet, "/api/cards/sample?count=10&difficulty=3", "", nil)
	// small: 3 red + 2 action, the curse has no small weight
	if w.Code != http.StatusOK || body["count"] != float64(5) {
		t.Fatalf("sample = %d %v", w.Code, body)
	}
	w, _ = do(t, r, http.MethodGet, "/api/cards/sample?count=x", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad count = %d", w.Code)
	}
}
