package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"listen_addr":             "www.example:9000",
		"database_dsn":            "",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "48h",
		"bcrypt_cost":             12,
		"smtp_host":               "smtp.example",
		"smtp_port":               2525,
		"mail_timeout":            "3s",
		"avatar_backend":          "s3",
		"s3_bucket":               "bucket",
		"s3_base_endpoint":        "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
		assert.Equal(t, "", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "smtp.example", cfg.SMTPHost)
		assert.Equal(t, 2525, cfg.SMTPPort)
		assert.Equal(t, 3*time.Second, cfg.MailTimeout)
		assert.Equal(t, AvatarBackendS3, cfg.AvatarBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		// untouched keys keep defaults
		assert.Equal(t, "us-east-1", cfg.S3Region)
	})

	t.Run("no config flag leaves config unchanged", func(t *testing.T) {
		cfg := &Config{ListenAddr: "defaults:1234", SecretKey: "key"}
		require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))
		assert.Equal(t, &Config{ListenAddr: "defaults:1234", SecretKey: "key"}, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{}
		require.Error(t, parseJSON(cfg, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
