package usecase

import (
	"context"
	"errors"
	"strings"

	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/apperror"
	"heyjob-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type authUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
	policy   StorePolicy
}

func NewAuthUsecase(userRepo domain.UserRepository, validate *validator.Validate, policy StorePolicy) domain.AuthUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if policy.Timeout <= 0 {
		policy.Timeout = DefaultStorePolicy().Timeout
	}
	return &authUsecase{userRepo: userRepo, validate: validate, policy: policy}
}

// EnsureUser records the principal's profile from token claims. Unchanged profiles are not rewritten.
func (u *authUsecase) EnsureUser(ctx context.Context, user *domain.User) error {
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	user.Phone = strings.TrimSpace(user.Phone)
	user.Email = strings.TrimSpace(user.Email)
	if err := u.validate.Struct(user); err != nil {
		return apperror.Validation(strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}

	existing, err := withStore(ctx, u.policy, func(ctx context.Context) (*domain.User, error) {
		return u.userRepo.GetByID(ctx, user.ID)
	})
	switch {
	case err == nil:
		if existing.Phone == user.Phone && existing.Email == user.Email {
			*user = *existing
			return nil
		}
	case !errors.Is(err, domain.ErrNotFound):
		return userStoreError(err)
	}

	if err := withStoreErr(ctx, u.policy, func(ctx context.Context) error {
		return u.userRepo.Upsert(ctx, user)
	}); err != nil {
		return userStoreError(err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := withStore(ctx, u.policy, func(ctx context.Context) (*domain.User, error) {
		return u.userRepo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, userStoreError(err)
	}
	return user, nil
}

func userStoreError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("User not found")
	}
	return storeError(err)
}
