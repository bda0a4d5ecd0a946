package storage

import (
	"errors"
	"sort"
	"time"
)

// ErrInvalidLevel is returned for records and lookups without a level id
var ErrInvalidLevel = errors.New("invalid level id")

// Record is the best run on one level
type Record struct {
	LevelID       string
	Score         int
	DisruptiveHit int
	CompliantHit  int
	Exited        int
	Achieved      time.Time
}

// Store persists one high score per level
type Store interface {
	// Best returns the record for levelID, ok false when none exists
	Best(levelID string) (Record, bool, error)

	// Submit stores r only if it beats the current record, reports whether it did
	// A level without a record has a best of zero
	Submit(r Record) (bool, error)

	// All returns every record ordered by level id
	All() ([]Record, error)

	Clear() error
	Close() error
}

// BestScore returns the stored score for levelID, zero when none
func BestScore(s Store, levelID string) (int, error) {
	r, ok, err := s.Best(levelID)
	if err != nil || !ok {
		return 0, err
	}
	return r.Score, nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].LevelID < records[j].LevelID })
}
