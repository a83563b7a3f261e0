package audit_test

import (
	"context"
	"testing"
	"time"

	"go-firme/internal/audit"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMultiSink_FansOutInOrder(t *testing.T) {
	var got []string
	first := audit.SinkFunc(func(_ context.Context, e audit.Entry) { got = append(got, "first:"+e.CUI) })
	second := audit.SinkFunc(func(_ context.Context, e audit.Entry) { got = append(got, "second:"+e.CUI) })

	audit.MultiSink{first, nil, second}.Record(context.Background(), audit.Entry{CUI: "123"})

	assert.Equal(t, []string{"first:123", "second:123"}, got)
}

func TestZapSink_Record(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := audit.NewZapSink(zap.New(core))

	sink.Record(context.Background(), audit.Entry{CUI: "1", ResponseStatus: 200, Duration: 1500 * time.Millisecond})
	sink.Record(context.Background(), audit.Entry{CUI: "2", ErrorMessage: audit.StrPtr("boom")})

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, 1.5, entries[0].ContextMap()["duration_seconds"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestStrPtr(t *testing.T) {
	assert.Nil(t, audit.StrPtr(""))
	assert.Equal(t, "x", *audit.StrPtr("x"))
}
