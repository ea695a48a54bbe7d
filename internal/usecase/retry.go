package usecase

import (
	"context"
	"errors"
	"time"

	"heyjob-backend/pkg/apperror"

	"github.com/cenkalti/backoff/v4"
)

// StorePolicy bounds every store call made by a usecase.
type StorePolicy struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultStorePolicy() StorePolicy {
	return StorePolicy{Timeout: 5 * time.Second, MaxRetries: 3, RetryDelay: 100 * time.Millisecond}
}

func (p StorePolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.RetryDelay
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(max(p.MaxRetries, 0))), ctx)
}

// withStore runs op under the per-call timeout, retrying only transient failures.
func withStore[T any](ctx context.Context, p StorePolicy, op func(ctx context.Context) (T, error)) (T, error) {
	return backoff.RetryWithData(func() (T, error) {
		callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
		defer cancel()

		v, err := op(callCtx)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil && !apperror.IsRetryable(err) {
			err = apperror.Unavailable(err)
		}
		if !apperror.IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, p.backOff(ctx))
}

func withStoreErr(ctx context.Context, p StorePolicy, op func(ctx context.Context) error) error {
	_, err := withStore(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
