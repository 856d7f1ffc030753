package dodge

import "sync"

// HighScoreStore persists the best score of a variant under a fixed key.
// A load error, including a malformed stored value, counts as no record.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// MemoryHighScores keeps the high score in memory. Useful for tests and
// headless runs.
type MemoryHighScores struct {
	mu    sync.Mutex
	score int
	saves int
	err   error
}

// NewMemoryHighScores creates a store holding score.
func NewMemoryHighScores(score int) *MemoryHighScores {
	return &MemoryHighScores{score: score}
}

// LoadHighScore implements HighScoreStore.
func (m *MemoryHighScores) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// SaveHighScore implements HighScoreStore. Once FailWith has been called
// it returns that error and keeps the previous value.
func (m *MemoryHighScores) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.score = score
	return nil
}

// FailWith makes subsequent saves fail with err.
func (m *MemoryHighScores) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Saves returns how many times SaveHighScore was called.
func (m *MemoryHighScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
