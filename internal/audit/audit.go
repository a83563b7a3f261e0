// Package audit defines the record of one outbound provider call and the
// sinks that receive it.
package audit

import (
	"context"
	"time"
)

// Entry describes a single outbound attempt. ResponseStatus is 0 when no
// HTTP response was received.
type Entry struct {
	CUI             string
	RequestURL      string
	HTTPMethod      string
	RequestHeaders  map[string]string
	RequestBody     string
	ResponseStatus  int
	ResponseHeaders map[string]string
	ResponseBody    string
	Duration        time.Duration
	ErrorMessage    *string
	UserIP          *string
	OccurredAt      time.Time
}

// DurationSeconds is the request duration as stored in api_logs.
func (e Entry) DurationSeconds() float64 {
	return e.Duration.Seconds()
}

// Failed reports whether the attempt carries an error message.
func (e Entry) Failed() bool {
	return e.ErrorMessage != nil
}

// Sink receives audit entries. Record is best effort and must not fail the
// caller; implementations log their own errors.
type Sink interface {
	Record(ctx context.Context, entry Entry)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, entry Entry)

func (f SinkFunc) Record(ctx context.Context, entry Entry) { f(ctx, entry) }

// MultiSink fans an entry out to every sink in order.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, entry Entry) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, entry)
		}
	}
}

// Nop discards entries.
var Nop Sink = SinkFunc(func(context.Context, Entry) {})

// StrPtr returns nil for "" and a pointer to s otherwise.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
