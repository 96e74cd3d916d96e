package scoreboard

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classic-snake/game"
	"classic-snake/session"
	"classic-snake/stats"
	"classic-snake/store"
)

type fakeSource struct {
	live    session.Live
	summary stats.Summary
	games   []store.Record
	best    int
	err     error
	limit   int
}

func (f *fakeSource) Live() session.Live   { return f.live }
func (f *fakeSource) Stats() stats.Summary { return f.summary }
func (f *fakeSource) BestScore() (int, error) {
	return f.best, f.err
}
func (f *fakeSource) History(limit int) ([]store.Record, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.games) {
		return f.games[:limit], nil
	}
	return f.games, nil
}

func (f *fakeSource) Game(id string) (*store.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, g := range f.games {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, store.ErrNotFound
}

func newTestServer(src *fakeSource) http.Handler {
	return NewServer(src, log.New(io.Discard, "", 0)).Routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	src := &fakeSource{live: session.Live{SessionID: "abc"}}
	w := get(t, newTestServer(src), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.SessionID != "abc" {
		t.Errorf("unexpected health response %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("Expected request ID in response")
	}
}

func TestBestEndpoint(t *testing.T) {
	src := &fakeSource{best: 12}
	src.live.Game.BestScore = 7

	w := get(t, newTestServer(src), "/api/v1/best")
	var resp bestResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.BestScore != 12 {
		t.Errorf("best = %d, want 12", resp.BestScore)
	}

	src.live.Game.BestScore = 20
	w = get(t, newTestServer(src), "/api/v1/best")
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.BestScore != 20 {
		t.Errorf("best = %d, want live value 20", resp.BestScore)
	}
}

func TestGamesEndpoint(t *testing.T) {
	now := time.Now()
	src := &fakeSource{}
	for i := 0; i < 30; i++ {
		src.games = append(src.games, store.Record{ID: "g", Score: i, EndTime: now})
	}
	h := newTestServer(src)

	tests := []struct {
		query     string
		status    int
		wantLimit int
		wantCount int
	}{
		{"", http.StatusOK, defaultGamesLimit, defaultGamesLimit},
		{"?limit=5", http.StatusOK, 5, 5},
		{"?limit=100000", http.StatusOK, maxGamesLimit, 30},
		{"?limit=0", http.StatusBadRequest, 0, 0},
		{"?limit=abc", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			src.limit = 0
			w := get(t, h, "/api/v1/games"+tt.query)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp gamesResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if src.limit != tt.wantLimit {
				t.Errorf("limit passed = %d, want %d", src.limit, tt.wantLimit)
			}
			if resp.Count != tt.wantCount || len(resp.Games) != tt.wantCount {
				t.Errorf("count = %d, want %d", resp.Count, tt.wantCount)
			}
		})
	}
}

func TestGameEndpoint(t *testing.T) {
	src := &fakeSource{games: []store.Record{
		{ID: "a1", Score: 4, Cause: "wall-collision"},
		{ID: "b2", Score: 9, Cause: "self-collision"},
	}}
	h := newTestServer(src)

	w := get(t, h, "/api/v1/games/b2")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rec store.Record
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.ID != "b2" || rec.Score != 9 || rec.Cause != "self-collision" {
		t.Errorf("game = %+v, want b2 with score 9", rec)
	}

	if w := get(t, h, "/api/v1/games/zz"); w.Code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", w.Code)
	}
}

func TestStoreErrors(t *testing.T) {
	h := newTestServer(&fakeSource{err: errors.New("boom")})
	for _, path := range []string{"/api/v1/best", "/api/v1/games", "/api/v1/games/a1"} {
		if w := get(t, h, path); w.Code != http.StatusInternalServerError {
			t.Errorf("%s status = %d, want 500", path, w.Code)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	src := &fakeSource{summary: stats.Summary{GamesPlayed: 3, MaxScore: 9, AverageScore: 4}}
	w := get(t, newTestServer(src), "/api/v1/stats")

	var resp stats.Summary
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp != src.summary {
		t.Errorf("stats = %+v, want %+v", resp, src.summary)
	}
}

func TestLiveEndpoint(t *testing.T) {
	g := game.NewGame(game.Config{GridSize: 20, Seed: 3})
	g.Start()
	g.Step()
	src := &fakeSource{live: session.Live{SessionID: "s1", Game: g.Snapshot()}}

	w := get(t, newTestServer(src), "/api/v1/live")
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var snap struct {
		Snake []struct{ X, Y int } `json:"snake"`
		State string               `json:"state"`
		Score int                  `json:"score"`
	}
	if err := json.Unmarshal(raw["game"], &snap); err != nil {
		t.Fatalf("decode game: %v", err)
	}
	if len(snap.Snake) < 3 || snap.Snake[0].X != 7 || snap.Snake[0].Y != 10 {
		t.Errorf("snake = %+v, want head at (7,10)", snap.Snake)
	}
	if snap.State != "running" {
		t.Errorf("state = %q, want running", snap.State)
	}
}

func TestUnknownRoute(t *testing.T) {
	if w := get(t, newTestServer(&fakeSource{}), "/api/v1/nope"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
