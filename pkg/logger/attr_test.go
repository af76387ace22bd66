package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quadkey/quadkey/pkg/logger"
)

func TestError(t *testing.T) {
	t.Run("nil error yields empty attr", func(t *testing.T) {
		attr := logger.Error(nil)
		assert.Empty(t, attr.Key)
	})

	t.Run("non-nil error", func(t *testing.T) {
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, int64(2), logger.Slot(2).Value.Int64())
	assert.Equal(t, int64(4), logger.Key(4).Value.Int64())
	assert.Equal(t, "accountdb", logger.Component("accountdb").Value.String())
	assert.Equal(t, "standby", logger.State("standby").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}

func TestAttrsRenderThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("selected", logger.Slot(3), logger.Error(nil))

	out := buf.String()
	assert.Contains(t, out, "slot=3")
	assert.NotContains(t, out, "error=")
}
