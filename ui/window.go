// Package ui is the raylib window frontend.
package ui

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"classic-snake/game/types"
	"classic-snake/input"
	"classic-snake/session"
	"classic-snake/ui/layout"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	targetFPS    = 60
)

type keyBinding struct {
	key  int32
	name string
}

// keyOrder lists the keys polled each frame. When several are pressed in
// the same frame they are applied in this order.
var keyOrder = []keyBinding{
	{rl.KeyUp, "up"},
	{rl.KeyDown, "down"},
	{rl.KeyLeft, "left"},
	{rl.KeyRight, "right"},
	{rl.KeyW, "w"},
	{rl.KeyA, "a"},
	{rl.KeyS, "s"},
	{rl.KeyD, "d"},
	{rl.KeyComma, ","},
	{rl.KeyPeriod, "."},
	{rl.KeySpace, "space"},
	{rl.KeyEnter, "enter"},
	{rl.KeyR, "r"},
	{rl.KeyP, "p"},
	{rl.KeyQ, "q"},
	{rl.KeyEscape, "escape"},
}

// Window runs the game in a resizable raylib window.
type Window struct {
	sess     *session.Session
	mapper   *input.Mapper
	renderer *Renderer
	gesture  input.Gesture
	layout   layout.Layout
}

func NewWindow(sess *session.Session, mapper *input.Mapper) *Window {
	return &Window{
		sess:     sess,
		mapper:   mapper,
		renderer: NewRenderer(),
	}
}

// Run opens the window and drives the session once per frame until the
// window closes, a quit key is pressed or ctx is cancelled. raylib must be
// driven from the goroutine that created the window, so Run blocks.
func (w *Window) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Snake")
	defer rl.CloseWindow()

	rl.SetWindowMinSize(layout.MinBoard+2*layout.BorderPadding+150, layout.MinBoard+200)
	rl.SetExitKey(0) // quit is handled through the input mapper
	rl.SetTargetFPS(targetFPS)

	gridSize := w.sess.Snapshot().GridSize
	w.layout = layout.Compute(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), gridSize)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		now := time.Now()

		if rl.IsWindowResized() {
			w.layout = layout.Compute(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()), gridSize)
		}

		if !w.handleKeys(now) {
			return nil
		}
		w.handlePointer(now)

		w.sess.Update(now)
		w.renderer.Draw(Frame{
			Live:   w.sess.Live(),
			Flash:  w.sess.Flash(now),
			Stats:  w.sess.Stats(),
			Scores: w.sess.RecentScores(maxScores),
			Layout: w.layout,
		})
	}
	return nil
}

// handleKeys returns false on quit.
func (w *Window) handleKeys(now time.Time) bool {
	for _, kb := range keyOrder {
		if !rl.IsKeyPressed(kb.key) {
			continue
		}
		if !w.sess.Handle(w.mapper.Key(kb.name), now) {
			return false
		}
	}
	return true
}

// handlePointer handles clicks on the on-screen buttons and swipes that
// start anywhere else. Touch input arrives as the left mouse button.
func (w *Window) handlePointer(now time.Time) {
	x, y := rl.GetMouseX(), rl.GetMouseY()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		switch control := w.layout.ControlAt(x, y); control {
		case layout.ControlStart:
			w.sess.Restart(now)
		case layout.ControlNone:
			w.gesture.Begin(float64(x), float64(y))
		default:
			w.sess.ChangeDirection(control.Direction())
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && w.gesture.Active() {
		if dir := w.gesture.End(float64(x), float64(y)); dir != types.None {
			w.sess.ChangeDirection(dir)
		}
	}
}
