package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExamHistoryCap bounds the stored exam history (FIFO eviction).
const ExamHistoryCap = 20

// ExamResult is one completed exam.
type ExamResult struct {
	Score   float64   `json:"score"` // percentage, 0..100
	Total   int       `json:"total"`
	Correct int       `json:"correct"`
	TakenAt time.Time `json:"taken_at"`
}

// Profile is the per-user aggregate the engine operates on: one logical
// owner, loaded on session start, mutated in memory, flushed after each
// mutation. There is no cross-profile shared mutable state.
type Profile struct {
	ID           uuid.UUID
	Progress     ProgressMap
	Activity     *ActivityState
	Achievements AchievementSet
	ExamHistory  []ExamResult
	BestExam     float64
}

// NewProfile returns an empty profile aggregate.
func NewProfile(id uuid.UUID) *Profile {
	return &Profile{
		ID:           id,
		Progress:     ProgressMap{},
		Activity:     NewActivityState(),
		Achievements: AchievementSet{},
	}
}

// Record returns the progress record for a word, or nil.
func (p *Profile) Record(word string) *WordRecord {
	return p.Progress[NormalizeWord(word)]
}

// Reconcile lazily backfills a fresh level-0 record for every vocabulary item
// the profile has no record for yet. Run on profile load and after import;
// returns the number of records created.
func (p *Profile) Reconcile(vocab []VocabWord, now time.Time) int {
	if p.Progress == nil {
		p.Progress = ProgressMap{}
	}
	created := 0
	for _, w := range vocab {
		key := w.Key()
		if key == "" {
			continue
		}
		if _, ok := p.Progress[key]; !ok {
			p.Progress[key] = NewWordRecord(key, now)
			created++
		}
	}
	return created
}

// AddExamResult appends an exam to the bounded history and tracks the best
// score ever. Returns true if the best score improved.
func (p *Profile) AddExamResult(r ExamResult) bool {
	p.ExamHistory = append(p.ExamHistory, r)
	if len(p.ExamHistory) > ExamHistoryCap {
		p.ExamHistory = p.ExamHistory[len(p.ExamHistory)-ExamHistoryCap:]
	}
	if r.Score > p.BestExam {
		p.BestExam = r.Score
		return true
	}
	return false
}
