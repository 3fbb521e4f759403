package progress

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// RecordExamResult stores a finished exam in the bounded history, tracks the
// best score ever, and re-checks achievements (exam90 keys off the best
// score, so a later weaker exam can never re-lock it).
func (s *Service) RecordExamResult(ctx context.Context, profileID uuid.UUID, correct, total int) (domain.ExamResult, error) {
	if total <= 0 {
		return domain.ExamResult{}, domain.NewValidationError("total", "must be positive")
	}
	if correct < 0 || correct > total {
		return domain.ExamResult{}, domain.NewValidationError("correct", "must be between 0 and total")
	}

	st, err := s.state(ctx, profileID)
	if err != nil {
		return domain.ExamResult{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.clock.Now()
	result := domain.ExamResult{
		Score:   float64(correct) / float64(total) * 100,
		Total:   total,
		Correct: correct,
		TakenAt: now,
	}

	improved := st.profile.AddExamResult(result)
	s.evaluateAchievements(ctx, st.profile, now)
	s.persist(ctx, st.profile)

	s.log.InfoContext(ctx, "exam recorded",
		slog.String("profile_id", profileID.String()),
		slog.Float64("score", result.Score),
		slog.Bool("new_best", improved),
	)

	return result, nil
}
