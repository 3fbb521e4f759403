package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

func TestDueWords_ExcludesLevelZeroAndFuture(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, vocabList("alpha", "beta", "gamma", "delta"))
	ctx := context.Background()

	// alpha: level 1, due in 2 days.
	env.answer(t, "alpha", true, 1)
	// beta: level 2, due in 5 days.
	env.answer(t, "beta", true, 2)
	// gamma, delta: level 0 — never due through the review path.

	env.clock.Advance(2 * 24 * time.Hour)

	due, err := env.svc.DueWords(ctx, env.profileID)
	if err != nil {
		t.Fatalf("DueWords: %v", err)
	}

	got := wordSet(due)
	if len(got) != 1 || !got["alpha"] {
		t.Errorf("due set = %v, want exactly {alpha}", got)
	}

	// After 5 more days beta joins.
	env.clock.Advance(5 * 24 * time.Hour)
	due, err = env.svc.DueWords(ctx, env.profileID)
	if err != nil {
		t.Fatalf("DueWords: %v", err)
	}
	got = wordSet(due)
	if len(got) != 2 || !got["alpha"] || !got["beta"] {
		t.Errorf("due set = %v, want {alpha, beta}", got)
	}
}

func TestDueWords_RepeatCallsSameMembership(t *testing.T) {
	t.Parallel()

	words := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	env := newTestEnv(t, vocabList(words...))
	ctx := context.Background()

	for _, w := range words {
		env.answer(t, w, true, 1)
	}
	env.clock.Advance(3 * 24 * time.Hour)

	first, err := env.svc.DueWords(ctx, env.profileID)
	if err != nil {
		t.Fatalf("DueWords: %v", err)
	}
	second, err := env.svc.DueWords(ctx, env.profileID)
	if err != nil {
		t.Fatalf("DueWords: %v", err)
	}

	// Order is re-shuffled per call; membership is what is stable.
	firstSet, secondSet := wordSet(first), wordSet(second)
	if len(firstSet) != len(words) || len(secondSet) != len(words) {
		t.Fatalf("due sizes = %d/%d, want %d", len(firstSet), len(secondSet), len(words))
	}
	for w := range firstSet {
		if !secondSet[w] {
			t.Errorf("word %q missing from second call", w)
		}
	}
}

func TestReviewSession_WalksFrozenDueSet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, vocabList("alpha", "beta", "gamma"))
	ctx := context.Background()

	env.answer(t, "alpha", true, 1)
	env.answer(t, "beta", true, 1)
	env.clock.Advance(2 * 24 * time.Hour)

	cards, err := env.svc.StartReviewSession(ctx, env.profileID)
	if err != nil {
		t.Fatalf("StartReviewSession: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("session size = %d, want 2", len(cards))
	}

	// gamma becoming due mid-session must not widen the frozen set.
	env.answer(t, "gamma", true, 1)
	env.clock.Advance(3 * 24 * time.Hour)

	seen := map[string]bool{}
	for remaining := len(cards); remaining > 0; {
		w, ok, err := env.svc.CurrentReviewWord(ctx, env.profileID)
		if err != nil || !ok {
			t.Fatalf("CurrentReviewWord: ok=%v err=%v", ok, err)
		}
		seen[w.Key()] = true

		remaining, err = env.svc.AnswerReviewCard(ctx, env.profileID, false)
		if err != nil {
			t.Fatalf("AnswerReviewCard: %v", err)
		}
	}

	if len(seen) != 2 || seen["gamma"] {
		t.Errorf("session visited %v, want the frozen {alpha, beta}", seen)
	}

	// Terminal state: answering again is a validation error.
	if _, err := env.svc.AnswerReviewCard(ctx, env.profileID, true); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("answer after session end = %v, want ErrValidation", err)
	}
	if _, ok, _ := env.svc.CurrentReviewWord(ctx, env.profileID); ok {
		t.Error("CurrentReviewWord after session end should report no active card")
	}
}

func TestReviewSession_StartDiscardsPrevious(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, vocabList("alpha", "beta"))
	ctx := context.Background()

	env.answer(t, "alpha", true, 1)
	env.answer(t, "beta", true, 1)
	env.clock.Advance(2 * 24 * time.Hour)

	if _, err := env.svc.StartReviewSession(ctx, env.profileID); err != nil {
		t.Fatalf("first StartReviewSession: %v", err)
	}
	if _, err := env.svc.AnswerReviewCard(ctx, env.profileID, true); err != nil {
		t.Fatalf("AnswerReviewCard: %v", err)
	}

	// Last-writer-wins: the second session starts over from a full due set.
	cards, err := env.svc.StartReviewSession(ctx, env.profileID)
	if err != nil {
		t.Fatalf("second StartReviewSession: %v", err)
	}
	if len(cards) != 1 {
		// One word was just answered correctly and rescheduled; the other is due.
		t.Errorf("second session size = %d, want 1", len(cards))
	}
}
