// Package session drives a game: it schedules steps from the tick
// interval, routes player actions, persists finished games and fans events
// out to listeners such as the sound cues.
package session

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"classic-snake/game"
	"classic-snake/game/types"
	"classic-snake/input"
	"classic-snake/stats"
	"classic-snake/store"
)

// Listener receives every event produced by a step.
type Listener interface {
	OnEvent(ev game.Event)
}

type ListenerFunc func(ev game.Event)

func (f ListenerFunc) OnEvent(ev game.Event) { f(ev) }

// Live is the published view of a session, safe to read from any goroutine.
type Live struct {
	SessionID string        `json:"sessionId"`
	Paused    bool          `json:"paused"`
	Game      game.Snapshot `json:"game"`
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// Session owns a Game. All methods except Live, Snapshot, Stats and
// History must be called from the goroutine that drives the game.
type Session struct {
	ID string

	game      *game.Game
	store     store.Store
	stats     *stats.GameStats
	listeners []Listener
	logger    *log.Logger

	clock     Clock
	flash     flash
	paused    bool
	startedAt time.Time

	mu   sync.RWMutex
	live Live
}

// New wires a game to its store. The persisted best score seeds the game;
// a store that fails to load is logged and play continues from zero.
func New(g *game.Game, st store.Store, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		game:   g,
		store:  st,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	if best, err := st.LoadBestScore(); err != nil {
		s.logger.Printf("failed to load best score: %v", err)
	} else {
		g.SetBestScore(best)
	}

	history, err := st.History(0)
	if err != nil {
		s.logger.Printf("failed to load game history: %v", err)
	}
	s.stats = stats.FromRecords(history)

	s.publish()
	s.logger.Printf("session %s ready (best %d, %d games on record)", s.ID, g.BestScore(), len(history))
	return s
}

// Handle applies one player action. It returns false when the action asks
// to quit.
func (s *Session) Handle(action input.Action, now time.Time) bool {
	switch {
	case action == input.ActionQuit:
		return false
	case action == input.ActionStart:
		s.Start(now)
	case action == input.ActionPause:
		s.TogglePause()
	case action.IsMovement():
		s.ChangeDirection(action.Resolve(s.game.PendingDirection()))
	}
	return true
}

// Start begins a new game unless one is already running.
func (s *Session) Start(now time.Time) bool {
	if s.game.State() == game.Running {
		return false
	}
	s.begin(now)
	return true
}

// Restart begins a new game even if one is running. An abandoned game is
// not recorded.
func (s *Session) Restart(now time.Time) {
	if s.game.State() == game.Running {
		s.logger.Printf("game abandoned at score %d", s.game.Score())
	}
	s.begin(now)
}

func (s *Session) begin(now time.Time) {
	s.game.Start()
	s.startedAt = now
	s.paused = false
	s.clock.Reset()
	s.publish()
	s.logger.Printf("game started")
}

// TogglePause pauses or resumes a running game.
func (s *Session) TogglePause() {
	if s.game.State() != game.Running {
		return
	}
	s.paused = !s.paused
	s.clock.Reset()
	s.publish()
}

// ChangeDirection forwards a steering request while the game is live.
func (s *Session) ChangeDirection(dir types.Direction) bool {
	if s.paused || s.game.State() != game.Running {
		return false
	}
	return s.game.ChangeDirection(dir)
}

// Update steps the game if its tick interval has elapsed. It returns the
// resulting event, or an EventNone event when nothing happened.
func (s *Session) Update(now time.Time) game.Event {
	if s.paused || s.game.State() != game.Running {
		return game.Event{Type: game.EventNone}
	}
	if !s.clock.Due(now, s.game.TickInterval()) {
		return game.Event{Type: game.EventNone}
	}

	ev := s.game.Step()
	s.flash.trigger(flashFor(ev), now)
	if ev.Type.Terminal() {
		s.finish(ev, now)
	}
	for _, l := range s.listeners {
		l.OnEvent(ev)
	}
	s.publish()
	return ev
}

func (s *Session) finish(ev game.Event, now time.Time) {
	s.logger.Printf("game over: score %d, length %d, cause %s", ev.Score, ev.Length, ev.Cause)

	if ev.NewBest {
		if err := s.store.SaveBestScore(ev.Score); err != nil {
			s.logger.Printf("failed to save best score: %v", err)
		}
	}

	record := store.Record{
		ID:        uuid.New().String(),
		Score:     ev.Score,
		Length:    ev.Length,
		Cause:     string(ev.Cause),
		GridSize:  s.game.Grid.Size,
		StartTime: s.startedAt,
		EndTime:   now,
	}
	if err := s.store.RecordGame(record); err != nil {
		s.logger.Printf("failed to record game: %v", err)
	}
	s.stats.AddRecord(record)
}

func (s *Session) publish() {
	live := Live{
		SessionID: s.ID,
		Paused:    s.paused,
		Game:      s.game.Snapshot(),
	}
	s.mu.Lock()
	s.live = live
	s.mu.Unlock()
}

// Flash returns the board overlay to draw at now, if any.
func (s *Session) Flash(now time.Time) FlashKind {
	return s.flash.active(now)
}

func (s *Session) Paused() bool {
	return s.paused
}

func (s *Session) Live() Live {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

func (s *Session) Snapshot() game.Snapshot {
	return s.Live().Game
}

func (s *Session) Stats() stats.Summary {
	return s.stats.Summary()
}

func (s *Session) RecentScores(n int) []int {
	return s.stats.RecentScores(n)
}

func (s *Session) History(limit int) ([]store.Record, error) {
	return s.store.History(limit)
}

// Game looks up one recorded game. It returns store.ErrNotFound when the
// ID is unknown.
func (s *Session) Game(id string) (*store.Record, error) {
	return s.store.GetGame(id)
}

func (s *Session) BestScore() (int, error) {
	return s.store.LoadBestScore()
}

func (s *Session) Close() error {
	return s.store.Close()
}
