package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 0.0.0.0
  port: "8080"
mysql:
  host: 127.0.0.1
  port: "3306"
  user: root
  password: secret
  database: symposium
model:
  api_key: sk-test
  base_url: https://example.com/v1
  interpreter_model: qwen-plus
mq:
  name_server:
    - 127.0.0.1:9876
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "symposium", cfg.MySQL.Database)
	assert.Equal(t, "qwen-plus", cfg.Model.InterpreterModel)
	assert.Equal(t, []string{"127.0.0.1:9876"}, cfg.MQ.NameServer)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
