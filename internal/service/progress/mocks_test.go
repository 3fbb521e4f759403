package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	LoadFunc func(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
	SaveFunc func(ctx context.Context, profile *domain.Profile) error

	calls struct {
		Load []struct{ ProfileID uuid.UUID }
		Save []struct{ Profile *domain.Profile }
	}
	lock sync.Mutex
}

func (mock *profileRepoMock) Load(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	if mock.LoadFunc == nil {
		panic("profileRepoMock.LoadFunc: method is nil but profileRepo.Load was just called")
	}
	mock.lock.Lock()
	mock.calls.Load = append(mock.calls.Load, struct{ ProfileID uuid.UUID }{profileID})
	mock.lock.Unlock()
	return mock.LoadFunc(ctx, profileID)
}

func (mock *profileRepoMock) LoadCalls() []struct{ ProfileID uuid.UUID } {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.Load
}

func (mock *profileRepoMock) Save(ctx context.Context, profile *domain.Profile) error {
	if mock.SaveFunc == nil {
		panic("profileRepoMock.SaveFunc: method is nil but profileRepo.Save was just called")
	}
	mock.lock.Lock()
	mock.calls.Save = append(mock.calls.Save, struct{ Profile *domain.Profile }{profile})
	mock.lock.Unlock()
	return mock.SaveFunc(ctx, profile)
}

func (mock *profileRepoMock) SaveCalls() []struct{ Profile *domain.Profile } {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.Save
}

var _ vocabSource = &vocabSourceMock{}

type vocabSourceMock struct {
	ListFunc func(ctx context.Context) ([]domain.VocabWord, error)

	calls struct {
		List []struct{}
	}
	lock sync.Mutex
}

func (mock *vocabSourceMock) List(ctx context.Context) ([]domain.VocabWord, error) {
	if mock.ListFunc == nil {
		panic("vocabSourceMock.ListFunc: method is nil but vocabSource.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lock.Unlock()
	return mock.ListFunc(ctx)
}

var _ notifier = &notifierMock{}

type notifierMock struct {
	AchievementUnlockedFunc func(ctx context.Context, profileID uuid.UUID, id domain.AchievementID)

	calls struct {
		AchievementUnlocked []struct {
			ProfileID uuid.UUID
			ID        domain.AchievementID
		}
	}
	lock sync.Mutex
}

func (mock *notifierMock) AchievementUnlocked(ctx context.Context, profileID uuid.UUID, id domain.AchievementID) {
	mock.lock.Lock()
	mock.calls.AchievementUnlocked = append(mock.calls.AchievementUnlocked, struct {
		ProfileID uuid.UUID
		ID        domain.AchievementID
	}{profileID, id})
	mock.lock.Unlock()
	if mock.AchievementUnlockedFunc != nil {
		mock.AchievementUnlockedFunc(ctx, profileID, id)
	}
}

func (mock *notifierMock) AchievementUnlockedCalls() []struct {
	ProfileID uuid.UUID
	ID        domain.AchievementID
} {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.AchievementUnlocked
}
