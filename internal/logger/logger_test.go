package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndTestEnv(t *testing.T) {
	log := New(Options{Level: "debug", AppEnv: "test"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = New(Options{Level: "nonsense", AppEnv: "test"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx := ContextWithRequestID(context.Background(), "req-123")
	require.Equal(t, "req-123", RequestIDFrom(ctx))

	WithRequestID(log, ctx).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)

	buf.Reset()
	WithRequestID(log, context.Background()).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"unknown"`)
}
