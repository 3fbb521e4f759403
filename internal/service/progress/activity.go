package progress

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// RecordVisit updates the login streak. Runs once per session bootstrap, not
// per attempt; a streak unlock may fire here, so achievements are re-checked
// and the aggregate saved when anything changed.
func (s *Service) RecordVisit(ctx context.Context, profileID uuid.UUID) error {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.clock.Now()
	before := st.profile.Activity.LastVisitDate
	st.profile.Activity.RollDailyWindow(now)
	st.profile.Activity.RecordVisit(now)

	if st.profile.Activity.LastVisitDate != before {
		s.evaluateAchievements(ctx, st.profile, now)
		s.persist(ctx, st.profile)
	}

	s.log.InfoContext(ctx, "visit recorded",
		slog.String("profile_id", profileID.String()),
		slog.Int("streak_days", st.profile.Activity.StreakDays),
	)

	return nil
}

// AddStudyMinutes accrues study time into today's goal bucket. The external
// session timer calls this on its tick; the engine only owns the rollover
// rule and the additive update.
func (s *Service) AddStudyMinutes(ctx context.Context, profileID uuid.UUID, minutes int) error {
	if minutes <= 0 {
		return domain.NewValidationError("minutes", "must be positive")
	}

	st, err := s.state(ctx, profileID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.profile.Activity.AddMinutes(minutes, s.clock.Now())
	s.persist(ctx, st.profile)
	return nil
}

// Stats is the aggregated read model for the UI dashboard.
type Stats struct {
	TotalWords    int
	DueCount      int
	LearnedCount  int
	MasteredCount int
	StreakDays    int
	WordsToday    int
	MinutesToday  int
	GoalWords     int
	GoalMinutes   int
	BestExamScore float64
}

// GetStats aggregates current progress, streak, and daily-goal numbers.
func (s *Service) GetStats(ctx context.Context, profileID uuid.UUID) (Stats, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return Stats{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.clock.Now()
	st.profile.Activity.RollDailyWindow(now)

	due := 0
	for _, rec := range st.profile.Progress {
		if rec.IsDue(now) {
			due++
		}
	}

	return Stats{
		TotalWords:    len(st.profile.Progress),
		DueCount:      due,
		LearnedCount:  st.profile.Progress.CountLearned(),
		MasteredCount: st.profile.Progress.CountMastered(s.cfg.Intervals),
		StreakDays:    st.profile.Activity.StreakDays,
		WordsToday:    st.profile.Activity.Daily.WordsToday,
		MinutesToday:  st.profile.Activity.Daily.MinutesToday,
		GoalWords:     s.cfg.DailyGoalWords,
		GoalMinutes:   s.cfg.DailyGoalMinutes,
		BestExamScore: st.profile.BestExam,
	}, nil
}
