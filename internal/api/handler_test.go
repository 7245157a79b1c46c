package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/trainer"
)

const testSets = `
Garchomp:
  Cynthia Garchomp:
    level: 66
    nature: Jolly
    moves: [Dragon Claw, Earthquake]
Corviknight:
  Leon Corviknight:
    level: 65
    trainer: Champion Leon
    moves: [Brave Bird, Body Press]
`

func init() {
	gin.SetMode(gin.TestMode)
	logging.SetOutput(io.Discard)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	col, err := dataset.Decode(9, []byte(testSets))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	eng, err := calc.New()
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	return NewRouter(NewHandler(matchup.NewService(dataset.NewIndex(col), eng)))
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("healthz = %d %s", w.Code, w.Body.String())
	}
}

func TestCalculate(t *testing.T) {
	body := `{
		"generation": 9,
		"pokemon1": {"name": "Garchomp", "moves": ["Dragon Claw"]},
		"pokemon2": {"trainerSet": {"pokemon": "Corviknight", "trainer": "Leon"}},
		"field": {"pokemon2Side": {"isSR": true}}
	}`
	w := do(t, newTestRouter(t), http.MethodPost, "/api/matchup", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var res matchup.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Pokemon2.Level != 65 || res.Pokemon2.Name != "Corviknight" {
		t.Fatalf("pokemon2 = %+v", res.Pokemon2)
	}
	if got := len(res.Pokemon2AttackingPokemon1.Moves); got != 2 {
		t.Fatalf("corviknight moves = %d", got)
	}
	if got := res.Pokemon1AttackingPokemon2.Moves[0].Normal.Damage; got[1] == 0 {
		t.Fatalf("dragon claw damage = %v", got)
	}
}

func TestCalculateErrors(t *testing.T) {
	r := newTestRouter(t)
	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{"generation":`, http.StatusBadRequest},
		{"missing name", `{"generation": 9, "pokemon1": {}, "pokemon2": {"name": "Garchomp"}}`, http.StatusBadRequest},
		{"unknown trainer", `{"generation": 9, "pokemon1": {"trainerSet": {"pokemon": "Garchomp", "trainer": "Red"}}, "pokemon2": {"name": "Garchomp"}}`, http.StatusNotFound},
		{"unknown species set", `{"generation": 9, "pokemon1": {"trainerSet": {"pokemon": "Pikachu", "trainer": "Red"}}, "pokemon2": {"name": "Garchomp"}}`, http.StatusNotFound},
		{"no dataset", `{"generation": 4, "pokemon1": {"trainerSet": {"pokemon": "Garchomp", "trainer": "Cynthia"}}, "pokemon2": {"name": "Garchomp"}}`, http.StatusNotFound},
		{"unknown species", `{"generation": 9, "pokemon1": {"name": "Missingno"}, "pokemon2": {"name": "Garchomp"}}`, http.StatusUnprocessableEntity},
		{"bad generation", `{"generation": 12, "pokemon1": {"name": "Garchomp"}, "pokemon2": {"name": "Garchomp"}}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/matchup", tc.body)
			if w.Code != tc.code {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Fatalf("body without error: %s", w.Body.String())
			}
		})
	}
}

func TestTrainerRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/trainers/9?name=leon", "")
	var matches []trainer.Match
	if err := json.Unmarshal(w.Body.Bytes(), &matches); err != nil || w.Code != http.StatusOK {
		t.Fatalf("trainers = %d %s", w.Code, w.Body.String())
	}
	if len(matches) != 1 || matches[0].Species != "Corviknight" {
		t.Fatalf("matches = %+v", matches)
	}

	w = do(t, r, http.MethodGet, "/api/trainers/9?name=nobody", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty trainers = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/sets/9/Garchomp?trainer=Cynthia", "")
	var p dataset.Preset
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil || w.Code != http.StatusOK || p.Nature != "Jolly" {
		t.Fatalf("set = %d %s", w.Code, w.Body.String())
	}

	if w := do(t, r, http.MethodGet, "/api/sets/9/Garchomp?trainer=Red", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown set = %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/trainers/x", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad gen = %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/trainers/3?name=leon", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing gen = %d", w.Code)
	}
	w = do(t, r, http.MethodGet, "/api/generations", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[9]" {
		t.Fatalf("generations = %d %s", w.Code, w.Body.String())
	}
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	req := `{"generation": 9, "pokemon1": {"name": "Garchomp", "moves": ["Earthquake"]}, "pokemon2": {"name": "Corviknight"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res matchup.Result
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.Generation != 9 || res.Pokemon1AttackingPokemon2.Moves[0].Normal.KOChance != "Immune / No damaging effect" {
		t.Fatalf("result = %+v", res)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply map[string]interface{}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply["error"] != "Invalid request" {
		t.Fatalf("reply = %v", reply)
	}
}
