package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasaheel/leads-api/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "3001",
			AppEnv:         "production",
			AllowedOrigins: []string{"*"},
		},
		Telegram: config.TelegramConfig{
			BotToken: "123:abc",
			ChatID:   "-1001234567890",
			BaseURL:  "https://api.telegram.org",
		},
		Upload: config.UploadConfig{
			Dir:              "/tmp/uploads",
			MaxFilesPerField: 100,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234567890")

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.BaseURL)
	assert.Equal(t, 100, cfg.Upload.MaxFilesPerField)
	assert.NotEmpty(t, cfg.Upload.Dir)
	assert.True(t, cfg.AllowAllOrigins())
	assert.True(t, cfg.IsProduction())
}

// Credentials have no baked-in fallback: startup must fail without them.
func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.Telegram.ChatID = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Upload.MaxFilesPerField = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Profiling.Enabled = true
	assert.Error(t, cfg.Validate())
}

func TestAllowAllOrigins(t *testing.T) {
	cfg := validConfig()
	cfg.Server.AllowedOrigins = []string{"https://tasaheel.example"}
	assert.False(t, cfg.AllowAllOrigins())

	cfg.Server.AllowedOrigins = []string{"https://tasaheel.example", "*"}
	assert.True(t, cfg.AllowAllOrigins())
}
