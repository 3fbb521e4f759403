package progress

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// difficultLevelCeiling marks the shaky early levels: a started word below
// this level qualifies as difficult even without repeated misses.
const difficultLevelCeiling = 3

// Suggestions holds the two ranked projections computed from the progress
// map. Read-only: consuming them must not mutate the cache, only a full
// recompute does.
type Suggestions struct {
	Difficult []domain.VocabWord
	New       []domain.VocabWord
}

// SuggestionList names one of the two suggestion lists.
type SuggestionList string

const (
	ListDifficult SuggestionList = "difficult"
	ListNew       SuggestionList = "new"
)

func (l SuggestionList) IsValid() bool {
	return l == ListDifficult || l == ListNew
}

// suggestionSession is the Idle → Active → Idle walk over a snapshot of one
// ranked list. Advancing applies a forced-correct update for the current
// word; the difficult flavor additionally forgives wrongAttempts.
type suggestionSession struct {
	list  SuggestionList
	words []domain.VocabWord
	index int
}

func (ss *suggestionSession) done() bool { return ss.index >= len(ss.words) }

// GetSuggestions returns the cached difficult/new lists, recomputing them if
// an attempt, import, or profile load invalidated the cache. Two calls with
// no intervening mutation return the same membership (the new list is
// randomly sampled, so only membership is stable across recomputes).
func (s *Service) GetSuggestions(ctx context.Context, profileID uuid.UUID) (Suggestions, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return Suggestions{}, err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return Suggestions{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return *s.suggestionsLocked(st, vocab), nil
}

// suggestionsLocked returns the cache, recomputing on demand. Callers must
// hold st.mu.
func (s *Service) suggestionsLocked(st *profileState, vocab []domain.VocabWord) *Suggestions {
	if st.suggestions != nil {
		return st.suggestions
	}

	type ranked struct {
		word  domain.VocabWord
		wrong int
		level int
	}

	var difficult []ranked
	var fresh []domain.VocabWord

	// The lists may overlap: a much-missed word knocked back to level 0 is
	// both "new" (needs starting over) and "difficult" (needs attention).
	for _, w := range vocab {
		rec := st.profile.Progress[w.Key()]
		if rec == nil || rec.Level == 0 {
			fresh = append(fresh, w)
		}
		if rec == nil {
			continue
		}
		shaky := rec.Level > 0 && rec.Level < difficultLevelCeiling
		if rec.WrongAttempts > 1 || shaky {
			difficult = append(difficult, ranked{word: w, wrong: rec.WrongAttempts, level: rec.Level})
		}
	}

	// Most-missed first; among equals the less advanced word leads.
	sort.SliceStable(difficult, func(i, j int) bool {
		if difficult[i].wrong != difficult[j].wrong {
			return difficult[i].wrong > difficult[j].wrong
		}
		return difficult[i].level < difficult[j].level
	})
	if len(difficult) > s.cfg.SuggestionListSize {
		difficult = difficult[:s.cfg.SuggestionListSize]
	}

	out := &Suggestions{
		Difficult: make([]domain.VocabWord, len(difficult)),
		New:       sample(s, fresh, s.cfg.SuggestionListSize),
	}
	for i, r := range difficult {
		out.Difficult[i] = r.word
	}

	st.suggestions = out
	return out
}

// StartSuggestionSession snapshots the named ranked list into a session. Any
// prior suggestion session is discarded.
func (s *Service) StartSuggestionSession(ctx context.Context, profileID uuid.UUID, list SuggestionList) ([]domain.VocabWord, error) {
	if !list.IsValid() {
		return nil, domain.NewValidationError("list", "must be \"difficult\" or \"new\"")
	}

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

	sugg := s.suggestionsLocked(st, vocab)
	words := sugg.New
	if list == ListDifficult {
		words = sugg.Difficult
	}

	snapshot := make([]domain.VocabWord, len(words))
	copy(snapshot, words)
	st.suggest = &suggestionSession{list: list, words: snapshot}

	s.log.InfoContext(ctx, "suggestion session started",
		slog.String("profile_id", profileID.String()),
		slog.String("list", string(list)),
		slog.Int("words", len(snapshot)),
	)

	return snapshot, nil
}

// AdvanceSuggestionSession marks the current word reviewed — a forced-correct
// attempt — and steps the cursor. For the difficult list it also zeroes the
// word's wrongAttempts: once a flagged word has been explicitly revisited it
// is forgiven. Reaching the end returns to Idle and recomputes suggestions so
// the next view reflects newly resolved difficulty. Returns the number of
// words remaining.
func (s *Service) AdvanceSuggestionSession(ctx context.Context, profileID uuid.UUID) (int, error) {
	st, err := s.state(ctx, profileID)
	if err != nil {
		return 0, err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return 0, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.suggest == nil || st.suggest.done() {
		return 0, domain.NewValidationError("session", "no active suggestion session")
	}

	sess := st.suggest
	word := sess.words[sess.index]
	sess.index++

	// Forgive before the attempt is applied so the single save after the
	// forced-correct update captures the reset too.
	if sess.list == ListDifficult {
		if rec := st.profile.Record(word.Word); rec != nil {
			rec.WrongAttempts = 0
		}
	}

	s.applyAttempt(ctx, st, word.Word, true)

	remaining := len(sess.words) - sess.index
	if remaining == 0 {
		st.suggest = nil
		st.suggestions = nil
		s.suggestionsLocked(st, vocab)
		s.log.InfoContext(ctx, "suggestion session finished",
			slog.String("profile_id", profileID.String()),
			slog.String("list", string(sess.list)),
		)
	}
	return remaining, nil
}
