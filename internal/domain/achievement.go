package domain

import "time"

// AchievementID identifies one unlockable badge.
type AchievementID string

const (
	AchievementStreak3    AchievementID = "streak3"
	AchievementStreak7    AchievementID = "streak7"
	AchievementStreak30   AchievementID = "streak30"
	AchievementLearned10  AchievementID = "learned10"
	AchievementLearned50  AchievementID = "learned50"
	AchievementLearned100 AchievementID = "learned100"
	AchievementMastered10 AchievementID = "mastered10"
	AchievementMastered50 AchievementID = "mastered50"
	AchievementExam90     AchievementID = "exam90"
	AchievementFirstSheet AchievementID = "firstSheet"
)

func (id AchievementID) String() string { return string(id) }

// Achievement describes one badge for display purposes.
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
	Icon        string
}

// AllAchievements lists every badge in definition order. The evaluator walks
// this order, so it also fixes which unlock is announced when several fire in
// one pass.
var AllAchievements = []Achievement{
	{ID: AchievementStreak3, Name: "Warm-Up", Description: "Practice 3 days in a row", Icon: "🔥"},
	{ID: AchievementStreak7, Name: "One Week Strong", Description: "Practice 7 days in a row", Icon: "📅"},
	{ID: AchievementStreak30, Name: "Habit Formed", Description: "Practice 30 days in a row", Icon: "🏆"},
	{ID: AchievementLearned10, Name: "First Steps", Description: "Learn 10 words", Icon: "🌱"},
	{ID: AchievementLearned50, Name: "Word Collector", Description: "Learn 50 words", Icon: "📚"},
	{ID: AchievementLearned100, Name: "Century", Description: "Learn 100 words", Icon: "💯"},
	{ID: AchievementMastered10, Name: "Deep Roots", Description: "Master 10 words", Icon: "🌳"},
	{ID: AchievementMastered50, Name: "Lexicon", Description: "Master 50 words", Icon: "👑"},
	{ID: AchievementExam90, Name: "Top of the Class", Description: "Score 90% or higher on an exam", Icon: "🎓"},
	{ID: AchievementFirstSheet, Name: "Fresh Material", Description: "Import your first vocabulary sheet", Icon: "📥"},
}

// AchievementSet maps unlocked badge ids to the unlock time. Monotonic:
// entries are never removed.
type AchievementSet map[AchievementID]time.Time

// Unlocked reports whether the badge has been unlocked.
func (s AchievementSet) Unlocked(id AchievementID) bool {
	_, ok := s[id]
	return ok
}

// Unlock marks the badge unlocked at the given time. Re-unlocking is a no-op
// and reports false.
func (s AchievementSet) Unlock(id AchievementID, now time.Time) bool {
	if s.Unlocked(id) {
		return false
	}
	s[id] = now
	return true
}
