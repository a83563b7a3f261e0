package audit

import (
	"context"

	"go-firme/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapSink writes one structured log line per entry. Bodies are left out;
// they are kept by the database sink.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger ...*zap.Logger) *ZapSink {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &ZapSink{logger: l}
}

func (s *ZapSink) Record(ctx context.Context, entry Entry) {
	fields := []zap.Field{
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("cui", entry.CUI),
		zap.String("method", entry.HTTPMethod),
		zap.String("url", entry.RequestURL),
		zap.Int("status", entry.ResponseStatus),
		zap.Float64("duration_seconds", entry.DurationSeconds()),
	}

	if entry.Failed() {
		s.logger.Warn("provider call failed", append(fields, zap.String("error", *entry.ErrorMessage))...)
		return
	}

	s.logger.Info("provider call", fields...)
}
