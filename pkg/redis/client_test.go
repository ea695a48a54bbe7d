package redis_test

import (
	"context"
	"testing"

	"heyjob-backend/pkg/redis"

	"github.com/stretchr/testify/assert"
)

func TestInitializeRequiresURL(t *testing.T) {
	err := redis.Initialize(context.Background(), redis.Config{})
	assert.Error(t, err)
	assert.Nil(t, redis.Client())
}

func TestInitializeRejectsBadURL(t *testing.T) {
	err := redis.Initialize(context.Background(), redis.Config{URL: "http://not-redis"})
	assert.ErrorContains(t, err, "invalid URL")
}

func TestHealthCheckWithoutClient(t *testing.T) {
	redis.SetClient(nil)
	assert.Error(t, redis.HealthCheck(context.Background()))
	assert.NoError(t, redis.Close())
}
