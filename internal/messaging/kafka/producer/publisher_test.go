package producer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-firme/internal/audit"
	"go-firme/internal/events"
	"go-firme/internal/messaging/kafka/producer"
	"go-firme/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func TestAPILogPublisher_Record(t *testing.T) {
	w := &fakeWriter{}
	pub := producer.NewAPILogPublisher(w, zap.NewNop())
	ctx := contextutil.WithRequestID(context.Background(), "req-9")
	msg := "HTTP 500: maintenance"

	pub.Record(ctx, audit.Entry{
		CUI:            "14837428",
		HTTPMethod:     "POST",
		ResponseStatus: 500,
		ResponseBody:   "secret-free but bulky",
		Duration:       2 * time.Second,
		ErrorMessage:   &msg,
	})

	if !assert.Len(t, w.msgs, 1) {
		return
	}
	assert.Equal(t, []byte("14837428"), w.msgs[0].Key)

	var event events.APILogRecordedEvent
	assert.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, events.APILogRecordedEventType, event.EventType)
	assert.Equal(t, "req-9", event.RequestID)
	assert.Equal(t, 500, event.ResponseStatus)
	assert.Equal(t, 2.0, event.RequestDuration)
	assert.Equal(t, msg, *event.ErrorMessage)
	assert.NotContains(t, string(w.msgs[0].Value), "bulky")
}

func TestAPILogPublisher_WriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	w := &fakeWriter{err: errors.New("broker unavailable")}
	pub := producer.NewAPILogPublisher(w, zap.New(core))

	assert.NotPanics(t, func() { pub.Record(context.Background(), audit.Entry{CUI: "1"}) })
	assert.Equal(t, 1, logs.FilterMessage("publish api log event failed").Len())
}
