package producer

import (
	"context"
	"encoding/json"
	"time"

	"go-firme/internal/audit"
	"go-firme/internal/events"
	"go-firme/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// APILogPublisher streams audit entries as APILogRecordedEvent messages
// keyed by CUI. It is an audit.Sink, so publish failures are only logged.
type APILogPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewAPILogPublisher(writer messageWriter, logger ...*zap.Logger) *APILogPublisher {
	l := zap.L().Named("kafka.producer.api_log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.api_log")
	}
	return &APILogPublisher{writer: writer, logger: l}
}

func (p *APILogPublisher) Record(ctx context.Context, entry audit.Entry) {
	if err := p.publish(ctx, entry); err != nil {
		p.logger.Error("publish api log event failed",
			zap.String("cui", entry.CUI),
			zap.Error(err),
		)
	}
}

func (p *APILogPublisher) publish(ctx context.Context, entry audit.Entry) error {
	occurred := entry.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	requestID := contextutil.GetRequestID(ctx)

	event := events.APILogRecordedEvent{
		EventType:       events.APILogRecordedEventType,
		RequestID:       requestID,
		CUI:             entry.CUI,
		RequestURL:      entry.RequestURL,
		HTTPMethod:      entry.HTTPMethod,
		ResponseStatus:  entry.ResponseStatus,
		RequestDuration: entry.DurationSeconds(),
		ErrorMessage:    entry.ErrorMessage,
		UserIP:          entry.UserIP,
		OccurredAt:      occurred.UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(entry.CUI),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "request_id", Value: []byte(requestID)},
		},
	})
}
