package audit_test

import (
	"context"
	"testing"

	"heyjob-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := audit.NewWithZap(zap.New(core), "heyjob-backend", "test")

	t.Run("Should hash the subject and keep the job id", func(t *testing.T) {
		l.Log(context.Background(), audit.Event{Event: audit.EventJobCreated, UserID: "user-1", JobID: "job-1"})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "job_created", fields["event"])
		assert.Equal(t, "job-1", fields["job_id"])
		assert.Equal(t, audit.HashSubject("user-1"), fields["subject_hash"])
		assert.NotContains(t, fields, "user_id")
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	})

	t.Run("Should log denials at error level", func(t *testing.T) {
		l.Log(context.Background(), audit.Event{Event: audit.EventUnauthorizedAccess, UserID: "intruder"})

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("Should tolerate a nil logger", func(t *testing.T) {
		var nilLogger *audit.Logger
		assert.NotPanics(t, func() { nilLogger.Log(context.Background(), audit.Event{Event: audit.EventJobDeleted}) })
	})
}

func TestHashSubjectIsStable(t *testing.T) {
	assert.Equal(t, audit.HashSubject("abc"), audit.HashSubject("abc"))
	assert.NotEqual(t, audit.HashSubject("abc"), audit.HashSubject("abd"))
	assert.Len(t, audit.HashSubject("abc"), 16)
}
