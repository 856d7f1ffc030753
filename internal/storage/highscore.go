package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// HighScoreKey returns the key a game's record is stored under.
func HighScoreKey(gameID string) string {
	return gameID + ".high_score"
}

// LoadHighScore reads the value stored under key. A missing key reads as
// zero; a value that is not a non-negative integer is an error.
func (s *Store) LoadHighScore(key string) (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM high_scores WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("storage: malformed high score %q: %w", raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("storage: negative high score %d", v)
	}
	return v, nil
}

// SaveHighScore stores value under key if it beats the stored record.
// The comparison happens in the upsert, so concurrent writers holding stale
// records cannot lower it. A malformed stored value is always replaced.
func (s *Store) SaveHighScore(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 WHERE high_scores.value = ''
		    OR high_scores.value GLOB '*[^0-9]*'
		    OR CAST(high_scores.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		key, strconv.Itoa(value),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// HighScoreKeeper binds a Store to one fixed key. It satisfies the dodge
// engine's high score interface.
type HighScoreKeeper struct {
	store *Store
	key   string
}

// NewHighScoreKeeper creates a keeper for gameID's record.
func NewHighScoreKeeper(store *Store, gameID string) *HighScoreKeeper {
	return &HighScoreKeeper{store: store, key: HighScoreKey(gameID)}
}

// Key returns the storage key.
func (k *HighScoreKeeper) Key() string {
	return k.key
}

// LoadHighScore reads the record.
func (k *HighScoreKeeper) LoadHighScore() (int, error) {
	return k.store.LoadHighScore(k.key)
}

// SaveHighScore writes the record unless a higher one is already stored.
func (k *HighScoreKeeper) SaveHighScore(score int) error {
	return k.store.SaveHighScore(k.key, score)
}
