package usecase_test

import (
	"context"
	"errors"
	"testing"

	"heyjob-backend/internal/domain"
	"heyjob-backend/internal/repository/memory"
	"heyjob-backend/internal/usecase"
	"heyjob-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create then update the profile", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(memory.NewUserRepository(), nil, testPolicy)

		require.NoError(t, uc.EnsureUser(ctx, &domain.User{ID: "u1", Phone: "+919876543210"}))
		first, err := uc.GetCurrentUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "+919876543210", first.Phone)

		require.NoError(t, uc.EnsureUser(ctx, &domain.User{ID: "u1", Phone: "+919876543210", Email: "a@b.co"}))
		second, err := uc.GetCurrentUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", second.Email)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
	})

	t.Run("Should skip the write when nothing changed", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Phone: "+15550001111"}, nil)
		uc := usecase.NewAuthUsecase(repo, nil, testPolicy)

		require.NoError(t, uc.EnsureUser(ctx, &domain.User{ID: "u1", Phone: "+15550001111"}))
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed claims", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(memory.NewUserRepository(), nil, testPolicy)
		err := uc.EnsureUser(ctx, &domain.User{ID: "u1", Phone: "call me"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		err = uc.EnsureUser(ctx, &domain.User{ID: "u1", Email: "nope"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should fail safely without a principal", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(memory.NewUserRepository(), nil, testPolicy)
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(uc.EnsureUser(ctx, &domain.User{})))
		_, err := uc.GetCurrentUser(ctx, "")
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	})

	t.Run("Should report unknown users as not found", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(memory.NewUserRepository(), nil, testPolicy)
		_, err := uc.GetCurrentUser(ctx, "ghost")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report ok when every dependency answers", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"database": memory.NewJobRepository(),
			"redis":    nil,
		})
		status, healthy := uc.Check(ctx)
		assert.True(t, healthy)
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "up", status["database"])
		assert.NotContains(t, status, "redis")
	})

	t.Run("Should report degraded when a dependency fails", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.Pinger{
			"redis": usecase.PingFunc(func(context.Context) error { return errors.New("refused") }),
		})
		status, healthy := uc.Check(ctx)
		assert.False(t, healthy)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "down", status["redis"])
	})
}
