package logger_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/restdb/restdb/logger"
)

type bufWriter struct {
	buf bytes.Buffer
}

func (w *bufWriter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
}

func TestDefaultLoggerLevels(t *testing.T) {
	writer := &bufWriter{}
	l := logger.New(writer, logger.Config{LogLevel: logger.Warn})

	l.Info(context.Background(), "not shown")
	assert.Empty(t, writer.buf.String())

	l.Warn(context.Background(), "warned: %v", 42)
	assert.Contains(t, writer.buf.String(), "[warn] warned: 42")

	l.Error(context.Background(), "failed")
	assert.Contains(t, writer.buf.String(), "[error] failed")
}

func TestDefaultLoggerTrace(t *testing.T) {
	writer := &bufWriter{}
	l := logger.New(writer, logger.Config{LogLevel: logger.Info})

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users;", 3
	}, nil)
	assert.Contains(t, writer.buf.String(), "SELECT * FROM users;")
	assert.Contains(t, writer.buf.String(), "3 rows")

	writer.buf.Reset()
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users;", -1
	}, errors.New("boom"))
	assert.Contains(t, writer.buf.String(), "boom")
}

func TestLogModeReturnsCopy(t *testing.T) {
	writer := &bufWriter{}
	base := logger.New(writer, logger.Config{LogLevel: logger.Silent})

	verbose := base.LogMode(logger.Info)
	verbose.Info(context.Background(), "hello")
	require.Contains(t, writer.buf.String(), "hello")

	writer.buf.Reset()
	base.Info(context.Background(), "still silent")
	assert.Empty(t, writer.buf.String())
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	l := logger.NewZerologLogger(zl, logger.Config{LogLevel: logger.Info})

	l.Info(context.Background(), "zerolog message")
	assert.Contains(t, buf.String(), "zerolog message")

	buf.Reset()
	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1;", 1
	}, nil)
	assert.Contains(t, buf.String(), "SELECT 1;")
}

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	ll := logrus.New()
	ll.SetOutput(&buf)
	ll.SetLevel(logrus.InfoLevel)
	l := logger.NewLogrusLogger(ll, logger.Config{LogLevel: logger.Info})

	l.Warn(context.Background(), "logrus message")
	assert.Contains(t, buf.String(), "logrus message")
}

func TestZapAdapter(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	l := logger.NewZapLogger(zap.New(core), logger.Config{LogLevel: logger.Info})

	l.Error(context.Background(), "zap message")
	assert.Contains(t, buf.String(), "zap message")
}
