package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("读取YAML并补齐默认值", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
  mode: release
database:
  driver: sqlite
  sqlite_path: /tmp/shelf.db
redis:
  enabled: true
  cache_ttl: 30s
`)
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "release", cfg.Server.Mode)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "/tmp/shelf.db", cfg.Database.SQLitePath)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)

		// 未配置的字段使用默认值
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "bookshelf.events", cfg.MQ.Exchange)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		path := writeConfig(t, "database:\n  password: from-file\n")
		t.Setenv("BOOKSHELF_DATABASE_PASSWORD", "from-env")
		t.Setenv("BOOKSHELF_SERVER_PORT", "7070")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, 7070, cfg.Server.Port)
	})

	t.Run("不支持的数据库驱动", func(t *testing.T) {
		path := writeConfig(t, "database:\n  driver: oracle\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("无效端口", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 70000\n")
		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		User:      "root",
		Password:  "secret",
		Host:      "db",
		Port:      3306,
		DBName:    "bookshelf",
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:secret@tcp(db:3306)/bookshelf?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
