package progress

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type profileRepo interface {
	Load(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
	Save(ctx context.Context, profile *domain.Profile) error
}

type vocabSource interface {
	List(ctx context.Context) ([]domain.VocabWord, error)
}

type notifier interface {
	AchievementUnlocked(ctx context.Context, profileID uuid.UUID, id domain.AchievementID)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the engine's tunables. Intervals must already be validated.
type Config struct {
	Intervals          domain.IntervalTable
	SuggestionListSize int
	DailyGoalWords     int
	DailyGoalMinutes   int
}

// Service is the spaced-repetition progress engine. Each profile aggregate is
// loaded once, mutated in memory by UI-driven events, and flushed to the
// persistence port after every mutation. A save failure leaves the in-memory
// state authoritative and is logged, never surfaced to the caller.
type Service struct {
	profiles profileRepo
	vocab    vocabSource
	notify   notifier
	clock    clockwork.Clock
	log      *slog.Logger
	cfg      Config

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	loaded map[uuid.UUID]*profileState
}

// profileState couples the aggregate with its in-flight session state and the
// suggestion cache. Sessions are single-flight: starting a new one of the
// same kind discards the previous (last-writer-wins).
type profileState struct {
	mu sync.Mutex

	profile     *domain.Profile
	suggestions *Suggestions // nil means invalidated
	review      *reviewSession
	suggest     *suggestionSession
}

// NewService creates the engine. The random source is injected so tests can
// seed it; production passes rand.NewSource(time.Now().UnixNano()).
func NewService(
	log *slog.Logger,
	profiles profileRepo,
	vocab vocabSource,
	notify notifier,
	clock clockwork.Clock,
	src rand.Source,
	cfg Config,
) (*Service, error) {
	if err := cfg.Intervals.Validate(); err != nil {
		return nil, err
	}
	if cfg.SuggestionListSize <= 0 {
		cfg.SuggestionListSize = 5
	}

	return &Service{
		profiles: profiles,
		vocab:    vocab,
		notify:   notify,
		clock:    clock,
		log:      log.With("service", "progress"),
		cfg:      cfg,
		rng:      rand.New(src),
		loaded:   map[uuid.UUID]*profileState{},
	}, nil
}

// LoadProfile loads (or re-loads) a profile aggregate, backfills a record for
// every vocabulary item lacking one, and clears any session state. Returns
// the number of backfilled records.
func (s *Service) LoadProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	profile, err := s.profiles.Load(ctx, profileID)
	if err != nil {
		return 0, err
	}

	vocab, err := s.vocab.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	created := profile.Reconcile(vocab, now)

	st := &profileState{profile: profile}

	s.mu.Lock()
	s.loaded[profileID] = st
	s.mu.Unlock()

	if created > 0 {
		s.persist(ctx, profile)
	}

	s.log.InfoContext(ctx, "profile loaded",
		slog.String("profile_id", profileID.String()),
		slog.Int("words", len(profile.Progress)),
		slog.Int("backfilled", created),
	)

	return created, nil
}

// state returns the in-memory state for a profile, loading it on first use.
func (s *Service) state(ctx context.Context, profileID uuid.UUID) (*profileState, error) {
	s.mu.Lock()
	st, ok := s.loaded[profileID]
	s.mu.Unlock()
	if ok {
		return st, nil
	}

	if _, err := s.LoadProfile(ctx, profileID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	st = s.loaded[profileID]
	s.mu.Unlock()
	return st, nil
}

// persist flushes the aggregate through the persistence port. Fire-and-forget
// from the engine's perspective: a failure is logged and the next successful
// mutation's save carries the latest state.
func (s *Service) persist(ctx context.Context, profile *domain.Profile) {
	if err := s.profiles.Save(ctx, profile); err != nil {
		s.log.WarnContext(ctx, "profile save failed",
			slog.String("profile_id", profile.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// shuffle permutes items uniformly using the injected random source.
func shuffle[T any](s *Service, items []T) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// sample picks up to n distinct items uniformly at random.
func sample[T any](s *Service, items []T, n int) []T {
	out := make([]T, len(items))
	copy(out, items)
	shuffle(s, out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
