package manager

import (
	"classic-snake/game/entity"
	"classic-snake/game/types"

	"golang.org/x/exp/rand"
)

// MaxSpawnAttempts bounds the random draws before falling back to a scan
// of the free cells.
const MaxSpawnAttempts = 100

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a uniformly random free cell. It returns false when the
// snake covers the whole board.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	if snake != nil && snake.Len() >= fm.grid.Cells() {
		return types.Point{}, false
	}

	for attempts := 0; attempts < MaxSpawnAttempts; attempts++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Size),
			Y: fm.rng.Intn(fm.grid.Size),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food, true
		}
	}

	return fm.scanFreeCell(snake)
}

func (fm *FoodManager) scanFreeCell(snake *entity.Snake) (types.Point, bool) {
	occupied := map[types.Point]bool{}
	if snake != nil {
		occupied = snake.Cells()
	}

	free := make([]types.Point, 0, fm.grid.Cells()-len(occupied))
	for y := 0; y < fm.grid.Size; y++ {
		for x := 0; x < fm.grid.Size; x++ {
			p := types.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}
