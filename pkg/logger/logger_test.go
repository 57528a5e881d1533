package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("JSON输出到文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(Options{Level: "warn", Format: "json", Output: path})
		require.NoError(t, err)

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

		l.Warn("slow query", zap.Int("ms", 1200))
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"slow query"`)
		assert.Contains(t, string(data), `"ms":1200`)
	})

	t.Run("无效级别", func(t *testing.T) {
		_, err := New(Options{Level: "verbose", Format: "json"})
		assert.Error(t, err)
	})

	t.Run("无效格式", func(t *testing.T) {
		_, err := New(Options{Level: "info", Format: "xml"})
		assert.Error(t, err)
	})
}
