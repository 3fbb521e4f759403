package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// touchOnAttempt applies the central state transition to a record in place:
// +1 level on a correct answer (capped at the top of the table), −2 on a
// wrong one (floored at 0). The steeper demotion biases the schedule toward
// more repetition after failure. The next review is always taken from the
// NEW level, so even a demotion schedules a nearer-term review.
func touchOnAttempt(rec *domain.WordRecord, correct bool, table domain.IntervalTable, now time.Time) {
	before := rec.Level
	outcome := domain.OutcomeWrong

	if correct {
		outcome = domain.OutcomeCorrect
		rec.CorrectAttempts++
		if rec.Level < table.MaxLevel() {
			rec.Level++
		}
	} else {
		rec.WrongAttempts++
		rec.Level -= 2
		if rec.Level < 0 {
			rec.Level = 0
		}
	}

	rec.AppendHistory(domain.HistoryEntry{
		At:          now,
		Outcome:     outcome,
		LevelBefore: before,
		LevelAfter:  rec.Level,
	})
	rec.NextReviewAt = now.AddDate(0, 0, table.Days(rec.Level))
}

// ReportAttempt records one game outcome for a word. An unknown word is a
// silent no-op: the caller is expected to pass only words present in the
// active vocabulary list.
//
// Side effects run in order: activity recording, achievement re-evaluation,
// then a durable-save request — sequenced so the achievement pass observes
// the just-updated counters and the save captures the final state.
func (s *Service) ReportAttempt(ctx context.Context, profileID uuid.UUID, word string, correct bool) error {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	s.applyAttempt(ctx, st, word, correct)
	return nil
}

// applyAttempt is the locked core shared by ReportAttempt and the session
// flows. Callers must hold st.mu.
func (s *Service) applyAttempt(ctx context.Context, st *profileState, word string, correct bool) {
	rec := st.profile.Record(word)
	if rec == nil {
		s.log.DebugContext(ctx, "attempt for unknown word ignored",
			slog.String("profile_id", st.profile.ID.String()),
			slog.String("word", domain.NormalizeWord(word)),
		)
		return
	}

	now := s.clock.Now()
	touchOnAttempt(rec, correct, s.cfg.Intervals, now)
	st.suggestions = nil

	st.profile.Activity.RecordActivity(1, now)
	s.evaluateAchievements(ctx, st.profile, now)
	s.persist(ctx, st.profile)

	s.log.InfoContext(ctx, "attempt recorded",
		slog.String("profile_id", st.profile.ID.String()),
		slog.String("word", rec.Word),
		slog.Bool("correct", correct),
		slog.Int("level", rec.Level),
	)
}
