package manager

// StateManager keeps the running score and the historical best. The best is
// only raised when a game finishes.
type StateManager struct {
	score     int
	highScore int
}

func NewStateManager(highScore int) *StateManager {
	if highScore < 0 {
		highScore = 0
	}
	return &StateManager{highScore: highScore}
}

func (sm *StateManager) Reset() {
	sm.score = 0
}

func (sm *StateManager) AddPoint() int {
	sm.score++
	return sm.score
}

// Finish closes the current game and reports whether it set a new best.
func (sm *StateManager) Finish() bool {
	if sm.score > sm.highScore {
		sm.highScore = sm.score
		return true
	}
	return false
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// SetHighScore seeds the best from persistence. Lower values are ignored.
func (sm *StateManager) SetHighScore(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
}
