package progress

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

var testStart = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func vocabList(words ...string) []domain.VocabWord {
	out := make([]domain.VocabWord, len(words))
	for i, w := range words {
		out[i] = domain.VocabWord{Word: w, Meaning: w + " meaning"}
	}
	return out
}

type testEnv struct {
	svc       *Service
	profileID uuid.UUID
	profile   *domain.Profile
	repo      *profileRepoMock
	notify    *notifierMock
	clock     *clockwork.FakeClock
}

// newTestEnv wires a Service against in-memory mocks, a fake clock, and a
// seeded random source.
func newTestEnv(t *testing.T, vocab []domain.VocabWord) *testEnv {
	t.Helper()

	profileID := uuid.New()
	profile := domain.NewProfile(profileID)

	repo := &profileRepoMock{
		LoadFunc: func(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
			return profile, nil
		},
		SaveFunc: func(ctx context.Context, p *domain.Profile) error {
			return nil
		},
	}
	source := &vocabSourceMock{
		ListFunc: func(ctx context.Context) ([]domain.VocabWord, error) {
			return vocab, nil
		},
	}
	notify := &notifierMock{}
	clock := clockwork.NewFakeClockAt(testStart)

	svc, err := NewService(
		slog.Default(),
		repo,
		source,
		notify,
		clock,
		rand.NewSource(42),
		Config{
			Intervals:          domain.DefaultIntervals,
			SuggestionListSize: 5,
			DailyGoalWords:     20,
			DailyGoalMinutes:   10,
		},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	// Bootstrap the profile so each test starts from a reconciled aggregate,
	// then drop the backfill save from the recorded calls.
	if _, err := svc.LoadProfile(context.Background(), profileID); err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	repo.calls.Save = nil

	return &testEnv{
		svc:       svc,
		profileID: profileID,
		profile:   profile,
		repo:      repo,
		notify:    notify,
		clock:     clock,
	}
}

// answer reports n attempts for a word with the given outcome.
func (e *testEnv) answer(t *testing.T, word string, correct bool, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.svc.ReportAttempt(context.Background(), e.profileID, word, correct); err != nil {
			t.Fatalf("ReportAttempt(%q): %v", word, err)
		}
	}
}

func wordSet(words []domain.VocabWord) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w.Key()] = true
	}
	return set
}
