// Package audit writes structured records of job mutations and denied
// access attempts. Subject identifiers are hashed before they are logged.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type EventType string

const (
	EventJobCreated         EventType = "job_created"
	EventJobUpdated         EventType = "job_updated"
	EventJobDeleted         EventType = "job_deleted"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventValidationFailed   EventType = "validation_failed"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

type Event struct {
	Timestamp time.Time
	Event     EventType
	UserID    string
	JobID     string
	RequestID string
	Details   map[string]any
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds an audit logger writing ISO8601-stamped JSON to stdout.
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}
	return NewWithZap(zl, serviceName, environment)
}

// NewWithZap wraps an existing zap logger. Tests pass zap.NewNop or an observer core.
func NewWithZap(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// Nop discards every record.
func Nop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("subject_hash", HashSubject(event.UserID)))
	}
	if event.JobID != "" {
		fields = append(fields, zap.String("job_id", event.JobID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	l.zapLogger.Log(levelFor(event.Event), "audit_event", fields...)
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	case EventValidationFailed, EventRateLimitTriggered:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// HashSubject returns a short stable digest so principals can be correlated without logging them.
func HashSubject(subject string) string {
	sum := sha256.Sum256([]byte(subject))
	return hex.EncodeToString(sum[:8])
}

func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}
