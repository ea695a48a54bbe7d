package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"heyjob-backend/internal/domain"
	"heyjob-backend/internal/usecase"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockUsecase(repo *MockJobRepo, pub *MockPublisher) domain.JobUsecase {
	return usecase.NewJobUsecase(repo, pub, audit.Nop(), nil, usecase.JobUsecaseConfig{Store: testPolicy})
}

func TestStoreRetry(t *testing.T) {
	ctx := context.Background()
	transient := apperror.Unavailable(errors.New("connection reset"))

	t.Run("Should retry transient failures and succeed", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Fetch", mock.Anything, mock.Anything).Return(nil, transient).Twice()
		repo.On("Fetch", mock.Anything, mock.Anything).Return([]domain.JobPosting{}, nil).Once()

		jobs, err := newMockUsecase(repo, nil).ListJobs(ctx, domain.JobFilter{})
		require.NoError(t, err)
		assert.Empty(t, jobs)
		repo.AssertNumberOfCalls(t, "Fetch", 3)
	})

	t.Run("Should surface a transient error after exhausting retries", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("GetByID", mock.Anything, "job-1").Return(nil, transient)

		_, err := newMockUsecase(repo, nil).GetJobByID(ctx, "job-1")
		assert.True(t, apperror.IsRetryable(err))
		repo.AssertNumberOfCalls(t, "GetByID", testPolicy.MaxRetries+1)
	})

	t.Run("Should pass through the caller's expired deadline", func(t *testing.T) {
		expired, cancel := context.WithDeadline(ctx, time.Now().Add(-time.Second))
		defer cancel()
		repo := new(MockJobRepo)
		repo.On("GetByID", mock.Anything, "job-1").Return(nil, context.DeadlineExceeded)

		_, err := newMockUsecase(repo, nil).GetJobByID(expired, "job-1")
		require.ErrorIs(t, err, context.DeadlineExceeded)
		var appErr *apperror.AppError
		assert.False(t, errors.As(err, &appErr))
		repo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("Should not retry not-found", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("GetByID", mock.Anything, "job-1").Return(nil, domain.ErrNotFound)

		_, err := newMockUsecase(repo, nil).GetJobByID(ctx, "job-1")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		repo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("Should not retry authorization failures", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("GetByID", mock.Anything, "job-1").
			Return(&domain.JobPosting{ID: "job-1", UserID: "owner", Status: domain.JobStatusActive}, nil)

		err := newMockUsecase(repo, nil).DeleteJob(ctx, "other", "job-1")
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
		repo.AssertNumberOfCalls(t, "GetByID", 1)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should wrap unknown store errors as internal", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Fetch", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := newMockUsecase(repo, nil).ListJobs(ctx, domain.JobFilter{})
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		repo.AssertNumberOfCalls(t, "Fetch", 1)
	})

	t.Run("Should time out slow store calls as transient", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Fetch", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
			Return(nil, context.DeadlineExceeded)

		policy := usecase.StorePolicy{Timeout: 5 * time.Millisecond, MaxRetries: 1, RetryDelay: time.Millisecond}
		uc := usecase.NewJobUsecase(repo, nil, audit.Nop(), nil, usecase.JobUsecaseConfig{Store: policy})

		_, err := uc.ListJobs(ctx, domain.JobFilter{})
		assert.True(t, apperror.IsRetryable(err))
		repo.AssertNumberOfCalls(t, "Fetch", 2)
	})
}

func TestJobEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Should publish after a committed create", func(t *testing.T) {
		repo := new(MockJobRepo)
		pub := new(MockPublisher)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.JobPosting")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.JobPosting).ID = "job-1" }).
			Return(nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.JobEvent) bool {
			return e.Type == domain.JobEventCreated && e.JobID == "job-1" && e.UserID == "u1" && e.Job != nil
		})).Return(nil)

		_, err := newMockUsecase(repo, pub).CreateJob(ctx, "u1", validInput())
		require.NoError(t, err)
		pub.AssertExpectations(t)
	})

	t.Run("Should not fail the mutation when publishing fails", func(t *testing.T) {
		repo := new(MockJobRepo)
		pub := new(MockPublisher)
		repo.On("GetByID", mock.Anything, "job-1").
			Return(&domain.JobPosting{ID: "job-1", UserID: "u1", Category: domain.CategoryWFH, Status: domain.JobStatusActive}, nil)
		repo.On("Delete", mock.Anything, "job-1").Return(nil)
		pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.JobEvent) bool {
			return e.Type == domain.JobEventDeleted && e.Category == domain.CategoryWFH && e.Job == nil
		})).Return(errors.New("nats: connection closed"))

		assert.NoError(t, newMockUsecase(repo, pub).DeleteJob(ctx, "u1", "job-1"))
		pub.AssertExpectations(t)
	})

	t.Run("Should not publish when the store rejects the write", func(t *testing.T) {
		repo := new(MockJobRepo)
		pub := new(MockPublisher)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("boom"))

		_, err := newMockUsecase(repo, pub).CreateJob(ctx, "u1", validInput())
		assert.Error(t, err)
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
