// Package terminal is the tcell frontend. Each grid cell is drawn two
// columns wide so the board looks square in most fonts.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"classic-snake/game"
	"classic-snake/input"
	"classic-snake/session"
	"classic-snake/ui/layout"
)

const (
	boardTop  = 2 // HUD rows above the board border
	boardLeft = 0
	cellWidth = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSnake   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBest    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
	styleFlashOK = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFlashKO = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type Terminal struct {
	screen tcell.Screen
	sess   *session.Session
	mapper *input.Mapper
}

// NewScreen creates and initializes the real terminal screen.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	s.HideCursor()
	s.Clear()
	return s, nil
}

func New(screen tcell.Screen, sess *session.Session, mapper *input.Mapper) *Terminal {
	return &Terminal{screen: screen, sess: sess, mapper: mapper}
}

// Run polls terminal events on a helper goroutine and drives the session
// on the calling one. It returns when the player quits or ctx ends. The
// caller owns the screen and must Fini it.
func (t *Terminal) Run(ctx context.Context) error {
	actions := make(chan input.Action, 32)
	done := make(chan struct{})
	defer close(done)

	go t.pollEvents(actions, done)

	err := t.sess.Run(ctx, actions, session.FrameInterval, t.Draw)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (t *Terminal) pollEvents(actions chan<- input.Action, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		var action input.Action
		switch e := ev.(type) {
		case *tcell.EventResize:
			t.screen.Sync()
			continue
		case *tcell.EventKey:
			if e.Key() == tcell.KeyCtrlC {
				action = input.ActionQuit
			} else {
				action = t.mapper.Key(KeyName(e))
			}
		default:
			continue
		}
		if action == input.ActionNone {
			continue
		}

		select {
		case actions <- action:
		case <-done:
			return
		}
	}
}

// KeyName converts a tcell key event into an input mapper key name.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return ""
}

// Draw renders the current session state.
func (t *Terminal) Draw(now time.Time) {
	s := t.screen
	live := t.sess.Live()
	snap := live.Game
	s.Clear()

	drawText(s, 0, 0, fmt.Sprintf("Score: %d", snap.Score), styleHUD)
	drawText(s, 14, 0, fmt.Sprintf("Best: %d", snap.BestScore), styleBest)
	st := t.sess.Stats()
	drawText(s, 28, 0, fmt.Sprintf("Games: %d  Avg: %.1f", st.GamesPlayed, st.AverageScore), styleDefault)
	drawText(s, 0, 1, "arrows/wasd move  space start  p pause  q quit", styleBorder)

	border := styleBorder
	switch t.sess.Flash(now) {
	case session.FlashFood:
		border = styleFlashOK
	case session.FlashGameOver:
		border = styleFlashKO
	}
	drawBorder(s, boardLeft, boardTop, snap.GridSize*cellWidth+2, snap.GridSize+2, border)

	if snap.HasFood {
		t.setCell(snap.Food.X, snap.Food.Y, '●', styleFood)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		p := snap.Snake[i]
		if i == 0 {
			t.setCell(p.X, p.Y, '█', styleHead)
		} else {
			t.setCell(p.X, p.Y, '▓', styleSnake)
		}
	}

	// Messages go under the board so they never hide the snake.
	below := boardTop + snap.GridSize + 2
	if msg := layout.Overlay(snap.State, live.Paused, snap.LastEvent); msg != "" {
		cx := boardLeft + 1 + snap.GridSize*cellWidth/2
		drawCentered(s, cx, below, " "+msg+" ", styleMessage)
	}
	if snap.State == game.GameOver {
		drawText(s, 0, below+1, fmt.Sprintf("Final score %d, length %d", snap.Score, len(snap.Snake)), styleHUD)
	}

	s.Show()
}

// setCell draws a grid cell as two terminal columns.
func (t *Terminal) setCell(x, y int, ch rune, st tcell.Style) {
	sx := boardLeft + 1 + x*cellWidth
	sy := boardTop + 1 + y
	t.screen.SetContent(sx, sy, ch, nil, st)
	t.screen.SetContent(sx+1, sy, ch, nil, st)
}

func drawBorder(s tcell.Screen, x, y, w, h int, st tcell.Style) {
	for i := x + 1; i < x+w-1; i++ {
		s.SetContent(i, y, '─', nil, st)
		s.SetContent(i, y+h-1, '─', nil, st)
	}
	for j := y + 1; j < y+h-1; j++ {
		s.SetContent(x, j, '│', nil, st)
		s.SetContent(x+w-1, j, '│', nil, st)
	}
	s.SetContent(x, y, '┌', nil, st)
	s.SetContent(x+w-1, y, '┐', nil, st)
	s.SetContent(x, y+h-1, '└', nil, st)
	s.SetContent(x+w-1, y+h-1, '┘', nil, st)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	x := cx - len([]rune(text))/2
	drawText(s, x, cy, text, st)
}
