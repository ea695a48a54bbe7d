package usecase_test

import (
	"context"
	"time"

	"heyjob-backend/internal/domain"
	"heyjob-backend/internal/repository/memory"
	"heyjob-backend/internal/usecase"
	"heyjob-backend/pkg/audit"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, q domain.JobQuery) ([]domain.JobPosting, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.JobEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var testPolicy = usecase.StorePolicy{Timeout: time.Second, MaxRetries: 3, RetryDelay: time.Millisecond}

// steppedClock advances one minute per reading so every record gets a distinct createdAt.
func steppedClock() func() time.Time {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newMemoryUsecase(opts ...memory.Option) (domain.JobUsecase, domain.JobRepository) {
	repo := memory.NewJobRepository(append([]memory.Option{memory.WithClock(steppedClock())}, opts...)...)
	uc := usecase.NewJobUsecase(repo, nil, audit.Nop(), nil, usecase.JobUsecaseConfig{Store: testPolicy})
	return uc, repo
}

func validInput() *domain.JobInput {
	return &domain.JobInput{
		JobTitle:       "Backend Engineer",
		JobPosition:    "SDE-2",
		CompanyDetails: "Acme",
		Category:       domain.CategoryOpenings,
	}
}
