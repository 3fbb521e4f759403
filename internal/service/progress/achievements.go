package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// rule pairs an achievement id with its predicate over the aggregate.
// Event-driven badges (firstSheet) have no predicate here; they are unlocked
// explicitly by their collaborator.
type rule struct {
	id   domain.AchievementID
	pred func(p *domain.Profile, intervals domain.IntervalTable) bool
}

func streakAtLeast(n int) func(*domain.Profile, domain.IntervalTable) bool {
	return func(p *domain.Profile, _ domain.IntervalTable) bool {
		return p.Activity.StreakDays >= n
	}
}

func learnedAtLeast(n int) func(*domain.Profile, domain.IntervalTable) bool {
	return func(p *domain.Profile, _ domain.IntervalTable) bool {
		return p.Progress.CountLearned() >= n
	}
}

func masteredAtLeast(n int) func(*domain.Profile, domain.IntervalTable) bool {
	return func(p *domain.Profile, t domain.IntervalTable) bool {
		return p.Progress.CountMastered(t) >= n
	}
}

// rules is evaluated in definition order; the order decides which unlock is
// announced when several fire in one pass.
var rules = []rule{
	{id: domain.AchievementStreak3, pred: streakAtLeast(3)},
	{id: domain.AchievementStreak7, pred: streakAtLeast(7)},
	{id: domain.AchievementStreak30, pred: streakAtLeast(30)},
	{id: domain.AchievementLearned10, pred: learnedAtLeast(10)},
	{id: domain.AchievementLearned50, pred: learnedAtLeast(50)},
	{id: domain.AchievementLearned100, pred: learnedAtLeast(100)},
	{id: domain.AchievementMastered10, pred: masteredAtLeast(10)},
	{id: domain.AchievementMastered50, pred: masteredAtLeast(50)},
	{id: domain.AchievementExam90, pred: func(p *domain.Profile, _ domain.IntervalTable) bool {
		return p.BestExam >= 90
	}},
}

// evaluateAchievements runs every not-yet-unlocked rule against the current
// aggregate. Unlocks are monotonic and idempotent. Only the FIRST newly
// unlocked achievement of a pass is pushed to the notification port; the
// rest are persisted silently (preserved quirk, see DESIGN.md).
func (s *Service) evaluateAchievements(ctx context.Context, p *domain.Profile, now time.Time) []domain.AchievementID {
	var unlocked []domain.AchievementID
	for _, r := range rules {
		if p.Achievements.Unlocked(r.id) {
			continue
		}
		if r.pred(p, s.cfg.Intervals) && p.Achievements.Unlock(r.id, now) {
			unlocked = append(unlocked, r.id)
		}
	}

	if len(unlocked) > 0 {
		s.notify.AchievementUnlocked(ctx, p.ID, unlocked[0])
		s.log.InfoContext(ctx, "achievements unlocked",
			slog.String("profile_id", p.ID.String()),
			slog.Int("count", len(unlocked)),
			slog.String("announced", unlocked[0].String()),
		)
	}
	return unlocked
}

// NotifyVocabularyImported is called by the import collaborator after a
// successful sheet import. It refreshes the profile's records against the new
// list, unlocks the first-import badge, and invalidates suggestions.
func (s *Service) NotifyVocabularyImported(ctx context.Context, profileID uuid.UUID) error {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.clock.Now()
	created := st.profile.Reconcile(vocab, now)
	st.suggestions = nil

	if st.profile.Achievements.Unlock(domain.AchievementFirstSheet, now) {
		s.notify.AchievementUnlocked(ctx, profileID, domain.AchievementFirstSheet)
	}
	s.persist(ctx, st.profile)

	s.log.InfoContext(ctx, "vocabulary import applied",
		slog.String("profile_id", profileID.String()),
		slog.Int("backfilled", created),
	)

	return nil
}
