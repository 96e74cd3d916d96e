package game

import (
	"time"

	"classic-snake/game/entity"
	"classic-snake/game/manager"
	"classic-snake/game/types"
)

// Config holds the construction parameters of a Game. Zero values fall back
// to the defaults in the types package.
type Config struct {
	GridSize     int
	BaseInterval time.Duration
	MinInterval  time.Duration
	Seed         uint64
	BestScore    int
}

// Game is the single-player simulation. It is not safe for concurrent use:
// Step and ChangeDirection must be called from the same goroutine.
type Game struct {
	Grid types.Grid

	snake    *entity.Snake
	pending  types.Direction
	food     types.Point
	hasFood  bool
	interval time.Duration
	state    RunState
	ticks    uint64
	last     Event

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	speedMgr     *manager.SpeedManager
	stateMgr     *manager.StateManager
}

func NewGame(cfg Config) *Game {
	size := cfg.GridSize
	if size <= 0 {
		size = types.DefaultGridSize
	}
	// The starting snake lies along one row.
	size = max(size, types.InitialLength)
	grid := types.Grid{Size: size}
	collisionMgr := manager.NewCollisionManager(grid)

	g := &Game{
		Grid:         grid,
		state:        NotStarted,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, collisionMgr, cfg.Seed),
		speedMgr:     manager.NewSpeedManager(cfg.BaseInterval, cfg.MinInterval),
		stateMgr:     manager.NewStateManager(cfg.BestScore),
	}
	g.Reset()
	return g
}

// Reset lays out a fresh snake, score, speed and food. The run state is left
// to the caller.
func (g *Game) Reset() {
	start := types.Point{X: g.Grid.Size / 3, Y: g.Grid.Size / 2}
	if start.X < types.InitialLength-1 {
		start.X = types.InitialLength - 1
	}
	g.snake = entity.NewSnake(start, types.InitialLength)
	g.pending = g.snake.Direction
	g.interval = g.speedMgr.Base
	g.ticks = 0
	g.last = Event{}
	g.stateMgr.Reset()
	g.spawnFood()
}

// Start resets the game and puts it in the Running state.
func (g *Game) Start() {
	g.Reset()
	g.state = Running
}

// ChangeDirection records the direction to apply on the next Step. A request
// to reverse the current direction is ignored.
func (g *Game) ChangeDirection(dir types.Direction) bool {
	if dir == types.None || dir.IsOpposite(g.snake.Direction) {
		return false
	}
	g.pending = dir
	return true
}

// Step advances the simulation by one tick.
func (g *Game) Step() Event {
	if g.state != Running {
		return Event{Type: EventNone, Tick: g.ticks}
	}
	g.ticks++

	if !g.pending.IsOpposite(g.snake.Direction) {
		g.snake.Direction = g.pending
	}

	newHead := g.snake.GetHead().Add(g.snake.Direction.Vector())

	if collision := g.collisionMgr.CheckCollision(newHead, g.snake); collision != manager.NoCollision {
		return g.finish(EventGameOver, causeFromCollision(collision))
	}

	g.snake.Move(newHead)

	if g.hasFood && g.collisionMgr.IsFoodCollision(newHead, g.food) {
		g.stateMgr.AddPoint()
		g.interval = g.speedMgr.Next(g.interval)
		if !g.spawnFood() {
			return g.finish(EventWon, CauseBoardFull)
		}
		return g.emit(EventFoodEaten, CauseNone, false)
	}

	g.snake.RemoveTail()
	return g.emit(EventMoved, CauseNone, false)
}

func (g *Game) finish(t EventType, cause DeathCause) Event {
	g.state = GameOver
	newBest := g.stateMgr.Finish()
	return g.emit(t, cause, newBest)
}

func (g *Game) emit(t EventType, cause DeathCause, newBest bool) Event {
	g.last = Event{
		Type:     t,
		Tick:     g.ticks,
		Head:     g.snake.GetHead(),
		Score:    g.stateMgr.GetScore(),
		Length:   g.snake.Len(),
		Interval: g.interval,
		Cause:    cause,
		NewBest:  newBest,
	}
	return g.last
}

func (g *Game) spawnFood() bool {
	food, ok := g.foodMgr.GenerateFood(g.snake)
	g.food = food
	g.hasFood = ok
	return ok
}

func (g *Game) State() RunState {
	return g.state
}

func (g *Game) Score() int {
	return g.stateMgr.GetScore()
}

func (g *Game) BestScore() int {
	return g.stateMgr.GetHighScore()
}

// SetBestScore seeds the historical best, typically from persistence.
func (g *Game) SetBestScore(score int) {
	g.stateMgr.SetHighScore(score)
}

func (g *Game) TickInterval() time.Duration {
	return g.interval
}

func (g *Game) Direction() types.Direction {
	return g.snake.Direction
}

func (g *Game) PendingDirection() types.Direction {
	return g.pending
}

// Food returns the food position and whether one exists.
func (g *Game) Food() (types.Point, bool) {
	return g.food, g.hasFood
}

// Body returns a copy of the snake, head first.
func (g *Game) Body() []types.Point {
	return g.snake.Clone().Body
}

func (g *Game) Ticks() uint64 {
	return g.ticks
}

func (g *Game) LastEvent() Event {
	return g.last
}
