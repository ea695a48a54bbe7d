package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"heyjob-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("Should report kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("update job: %w", apperror.Forbidden("not yours"))
		assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
	})

	t.Run("Should default to internal for plain errors", func(t *testing.T) {
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, apperror.IsRetryable(apperror.Unavailable(errors.New("conn reset"))))
	assert.False(t, apperror.IsRetryable(apperror.NotFound("Job not found")))
	assert.False(t, apperror.IsRetryable(apperror.BadRequest("jobTitle is required")))
	assert.False(t, apperror.IsRetryable(nil))
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := apperror.Unavailable(cause)

	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.Stack)
}
