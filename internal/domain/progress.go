package domain

import (
	"fmt"
	"time"
)

// DefaultIntervals is the fixed review ladder in days, indexed by level.
// Index 0 is the "just learned" interval; the last index is the mastered
// plateau. Changing the length of a deployed table invalidates the meaning
// of stored levels, so it is constant for the lifetime of a deployment.
var DefaultIntervals = IntervalTable{1, 2, 5, 10, 21, 45, 90}

// IntervalTable is an ordered sequence of day offsets indexed by mastery
// level. Invariant: positive and non-decreasing.
type IntervalTable []int

// MaxLevel returns the highest valid level (the mastered plateau).
func (t IntervalTable) MaxLevel() int { return len(t) - 1 }

// Days returns the interval in days for the given level. Levels outside the
// table are clamped rather than rejected, so a record persisted under a
// longer table still schedules.
func (t IntervalTable) Days(level int) int {
	if level < 0 {
		level = 0
	}
	if level > t.MaxLevel() {
		level = t.MaxLevel()
	}
	return t[level]
}

// Validate checks the table invariants.
func (t IntervalTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("interval table: %w: empty", ErrValidation)
	}
	prev := 0
	for i, d := range t {
		if d <= 0 {
			return fmt.Errorf("interval table: %w: index %d not positive", ErrValidation, i)
		}
		if d < prev {
			return fmt.Errorf("interval table: %w: decreasing at index %d", ErrValidation, i)
		}
		prev = d
	}
	return nil
}

// AttemptOutcome records whether an attempt was answered correctly.
type AttemptOutcome string

const (
	OutcomeCorrect AttemptOutcome = "CORRECT"
	OutcomeWrong   AttemptOutcome = "WRONG"
)

func (o AttemptOutcome) String() string { return string(o) }

func (o AttemptOutcome) IsValid() bool {
	return o == OutcomeCorrect || o == OutcomeWrong
}

// HistoryCap bounds the per-word transition history (FIFO eviction).
const HistoryCap = 10

// HistoryEntry is one recorded level transition.
type HistoryEntry struct {
	At          time.Time      `json:"at"`
	Outcome     AttemptOutcome `json:"outcome"`
	LevelBefore int            `json:"level_before"`
	LevelAfter  int            `json:"level_after"`
}

// WordRecord is the per-word mutable progress record, keyed by the word's
// normalized text. Level 0 means "not yet started" — such words are surfaced
// through the new-word suggestion path, never the review queue.
type WordRecord struct {
	Word            string
	Level           int
	NextReviewAt    time.Time
	CorrectAttempts int
	WrongAttempts   int
	History         []HistoryEntry
}

// NewWordRecord creates a fresh record at the level floor, due immediately.
func NewWordRecord(word string, now time.Time) *WordRecord {
	return &WordRecord{Word: NormalizeWord(word), Level: 0, NextReviewAt: now}
}

// IsDue reports whether the record is due for review: started (level above
// the floor) and past its scheduled time.
func (r *WordRecord) IsDue(now time.Time) bool {
	return r.Level > 0 && !r.NextReviewAt.After(now)
}

// Learned reports whether the word has ever been successfully reviewed.
func (r *WordRecord) Learned() bool { return r.Level > 0 }

// Mastered reports whether the word sits at the top of the given table.
func (r *WordRecord) Mastered(table IntervalTable) bool {
	return r.Level >= table.MaxLevel()
}

// AppendHistory records a transition, evicting the oldest entry past the cap.
func (r *WordRecord) AppendHistory(e HistoryEntry) {
	r.History = append(r.History, e)
	if len(r.History) > HistoryCap {
		r.History = r.History[len(r.History)-HistoryCap:]
	}
}

// ProgressMap maps normalized word text to its record. Iteration order is
// irrelevant to correctness; suggestion tie-breaks are explicitly sorted.
type ProgressMap map[string]*WordRecord

// CountLearned returns the number of words with level above the floor.
func (m ProgressMap) CountLearned() int {
	n := 0
	for _, r := range m {
		if r.Learned() {
			n++
		}
	}
	return n
}

// CountMastered returns the number of words at the top level of the table.
func (m ProgressMap) CountMastered(table IntervalTable) int {
	n := 0
	for _, r := range m {
		if r.Mastered(table) {
			n++
		}
	}
	return n
}
