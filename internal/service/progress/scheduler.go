package progress

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// reviewSession is a stateful walk over a frozen due list. The due set is
// captured at session start and never re-queried mid-session, even if the
// wall clock advances past other words' due times.
type reviewSession struct {
	words []domain.VocabWord
	index int
}

func (rs *reviewSession) done() bool { return rs.index >= len(rs.words) }

// DueWords returns the vocabulary items currently due for review, in a fresh
// uniform random order on every call. Words at level 0 are excluded even if
// technically past due: level 0 means "not yet started" and belongs to the
// new-word suggestion path. Callers that need stable results should compare
// set membership, not order.
func (s *Service) DueWords(ctx context.Context, profileID uuid.UUID) ([]domain.VocabWord, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return nil, err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	due := s.dueLocked(st, vocab)

	s.log.InfoContext(ctx, "due words computed",
		slog.String("profile_id", profileID.String()),
		slog.Int("due", len(due)),
	)

	return due, nil
}

// dueLocked filters and shuffles the due subset. Callers must hold st.mu.
func (s *Service) dueLocked(st *profileState, vocab []domain.VocabWord) []domain.VocabWord {
	now := s.clock.Now()
	due := make([]domain.VocabWord, 0)
	for _, w := range vocab {
		rec := st.profile.Progress[w.Key()]
		if rec != nil && rec.IsDue(now) {
			due = append(due, w)
		}
	}
	shuffle(s, due)
	return due
}

// StartReviewSession freezes the current due set into a new session and
// returns it. Any in-progress review session is discarded.
func (s *Service) StartReviewSession(ctx context.Context, profileID uuid.UUID) ([]domain.VocabWord, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return nil, err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	due := s.dueLocked(st, vocab)
	st.review = &reviewSession{words: due}

	s.log.InfoContext(ctx, "review session started",
		slog.String("profile_id", profileID.String()),
		slog.Int("cards", len(due)),
	)

	return due, nil
}

// CurrentReviewWord returns the word under the session cursor, or false when
// no session is active or the session has ended.
func (s *Service) CurrentReviewWord(ctx context.Context, profileID uuid.UUID) (domain.VocabWord, bool, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return domain.VocabWord{}, false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.review == nil || st.review.done() {
		return domain.VocabWord{}, false, nil
	}
	return st.review.words[st.review.index], true, nil
}

// AnswerReviewCard records the outcome for the word under the cursor and
// advances one step regardless of correctness. Returns the number of cards
// remaining; the session ends when it reaches zero.
func (s *Service) AnswerReviewCard(ctx context.Context, profileID uuid.UUID, correct bool) (int, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return 0, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.review == nil || st.review.done() {
		return 0, domain.NewValidationError("session", "no active review session")
	}

	word := st.review.words[st.review.index]
	st.review.index++

	s.applyAttempt(ctx, st, word.Word, correct)

	remaining := len(st.review.words) - st.review.index
	if remaining == 0 {
		st.review = nil
		s.log.InfoContext(ctx, "review session finished",
			slog.String("profile_id", profileID.String()),
		)
	}
	return remaining, nil
}
