package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"heyjob-backend/internal/domain"
	"heyjob-backend/pkg/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("heyjob-backend/events")

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewNATSPublisher connects to NATS and publishes each event on the subject named by its type.
func NewNATSPublisher(url string, timeout time.Duration, logger *zap.Logger) (domain.JobEventPublisher, error) {
	opts := []nats.Option{
		nats.Name("heyjob-backend"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &natsPublisher{conn: conn, logger: logger}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, event domain.JobEvent) error {
	_, span := tracer.Start(ctx, "events.Publish")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("marshaling job event: %w", err)
	}

	subject := string(event.Type)
	span.SetAttributes(
		telemetry.String("messaging.destination", subject),
		telemetry.Int("messaging.message.size", len(data)),
	)

	if err := p.conn.Publish(subject, data); err != nil {
		telemetry.RecordError(span, err)
		p.logger.Error("failed to publish job event",
			zap.String("job_id", event.JobID),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("publishing to NATS: %w", err)
	}

	p.logger.Debug("published job event",
		zap.String("job_id", event.JobID),
		zap.String("subject", subject))
	return nil
}

func (p *natsPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() domain.JobEventPublisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, domain.JobEvent) error { return nil }
func (nopPublisher) Close() error                                   { return nil }
