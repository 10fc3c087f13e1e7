package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name          string
		value         string
		expected      int
		expectedError bool
	}{
		{name: "not set", value: "", expected: 60},
		{name: "number", value: "90", expected: 90},
		{name: "not a number", value: "soon", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_KEY", tt.value)

			n, err := getEnvInt("TEST_INT_KEY", 60)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, n)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, splitList(" http://a.test, ,http://b.test "))
	assert.Nil(t, splitList(""))
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BOT_TOKEN", "BOT_PASSWORD", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"TIMED_SECONDS", "RESULT_RETENTION_DAYS", "CATALOG_SOURCE", "AUDIO_DIR", "AUDIO_BASE_URL",
		"CATALOG_HTTP_ADDR", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected string
	}{
		{
			name:     "missing BOT_TOKEN",
			env:      map[string]string{"DB_PASSWORD": "test_db_password"},
			expected: "BOT_TOKEN",
		},
		{
			name:     "missing DB_PASSWORD",
			env:      map[string]string{"BOT_TOKEN": "test_token"},
			expected: "DB_PASSWORD",
		},
		{
			name:     "bad TIMED_SECONDS",
			env:      map[string]string{"BOT_TOKEN": "test_token", "DB_PASSWORD": "x", "TIMED_SECONDS": "a minute"},
			expected: "TIMED_SECONDS",
		},
		{
			name:     "zero TIMED_SECONDS",
			env:      map[string]string{"BOT_TOKEN": "test_token", "DB_PASSWORD": "x", "TIMED_SECONDS": "0"},
			expected: "TIMED_SECONDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Empty(t, cfg.BotPassword, "the password is optional")
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "koreanvocab", cfg.Database.Name)
	assert.Equal(t, "koreanvocab", cfg.Database.User)
	assert.Equal(t, 60, cfg.Game.TimedSeconds)
	assert.Equal(t, 90, cfg.Game.ResultRetentionDays)
	assert.Equal(t, "./data", cfg.Catalog.Source)
	assert.Empty(t, cfg.Catalog.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.Catalog.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("BOT_PASSWORD", "test_password")
	t.Setenv("TIMED_SECONDS", "30")
	t.Setenv("CATALOG_SOURCE", "https://cdn.example.com/configs")
	t.Setenv("CATALOG_HTTP_ADDR", ":8080")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://vocab.example.com")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "test_password", cfg.BotPassword)
	assert.Equal(t, 30, cfg.Game.TimedSeconds)
	assert.Equal(t, "https://cdn.example.com/configs", cfg.Catalog.Source)
	assert.Equal(t, ":8080", cfg.Catalog.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:5173", "https://vocab.example.com"}, cfg.Catalog.CORSOrigins)
}
