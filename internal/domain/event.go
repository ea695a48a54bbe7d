package domain

import (
	"context"
	"time"
)

type JobEventType string

const (
	JobEventCreated JobEventType = "jobs.created"
	JobEventUpdated JobEventType = "jobs.updated"
	JobEventDeleted JobEventType = "jobs.deleted"
)

// JobEvent announces a committed mutation. Job is nil for deletions.
type JobEvent struct {
	Type       JobEventType `json:"type"`
	JobID      string       `json:"jobId"`
	Category   Category     `json:"category,omitempty"`
	UserID     string       `json:"userId"`
	Job        *JobPosting  `json:"job,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// JobEventPublisher is best effort: the mutation is already committed when Publish runs.
type JobEventPublisher interface {
	Publish(ctx context.Context, event JobEvent) error
	Close() error
}
