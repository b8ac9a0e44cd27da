package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_PORT", "SEED_FILE", "SEED_SHEET_RANGE", "NIGHTLY_CRON_SCHEDULE", "TIMEZONE",
	"MONGODB_URI", "MONGODB_DB_NAME", "GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN", "WHATSAPP_BASE_URL",
	"WHATSAPP_API_VERSION", "WHATSAPP_MANAGER_ID", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0 0 * * *", cfg.Nightly.CronSchedule)
	assert.Equal(t, "UTC", cfg.Nightly.Timezone)
	assert.Equal(t, "gildedrose", cfg.MongoDB.DBName)
	assert.False(t, cfg.MongoDB.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	const key = "GILDEDROSE_TEST_ONLY"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadRejectsInvalidSchedule(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIGHTLY_CRON_SCHEDULE", "every night")

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NIGHTLY_CRON_SCHEDULE")
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Middle/Earth")

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestValidatePartialIntegrations(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			Nightly: NightlyConfig{CronSchedule: "0 0 * * *", Timezone: "UTC"},
			MongoDB: MongoDBConfig{DBName: "gildedrose"},
			WhatsApp: WhatsAppConfig{
				BaseURL:    "https://graph.facebook.com",
				APIVersion: "v20.0",
			},
			AI: AIConfig{Model: "model"},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"nothing optional", func(c *Config) {}, ""},
		{"sheets without id", func(c *Config) { c.Sheets.CredentialsPath = "creds.json" }, "GOOGLE_SHEET_DATABASE_ID"},
		{"sheets without creds", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{"seed range without sheets", func(c *Config) { c.Inventory.SeedSheetRange = "Inventory!A:C" }, "SEED_SHEET_RANGE"},
		{"whatsapp without phone", func(c *Config) { c.WhatsApp.AccessToken = "token" }, "WHATSAPP_PHONE_NUMBER_ID"},
		{"whatsapp without verify token", func(c *Config) {
			c.WhatsApp.AccessToken = "token"
			c.WhatsApp.PhoneNumberID = "123"
		}, "META_VERIFY_TOKEN"},
		{"whatsapp without manager", func(c *Config) {
			c.WhatsApp.AccessToken = "token"
			c.WhatsApp.PhoneNumberID = "123"
			c.WhatsApp.VerifyToken = "verify"
		}, "WHATSAPP_MANAGER_ID"},
		{"whatsapp complete", func(c *Config) {
			c.WhatsApp.AccessToken = "token"
			c.WhatsApp.PhoneNumberID = "123"
			c.WhatsApp.VerifyToken = "verify"
			c.WhatsApp.ManagerID = "224600000000"
		}, ""},
		{"mongo without db", func(c *Config) {
			c.MongoDB.URI = "mongodb://localhost:27017"
			c.MongoDB.DBName = ""
		}, "MONGODB_DB_NAME"},
	}

	for _, tt := range testCases {
		cfg := base()
		tt.mutate(cfg)
		err := cfg.Validate()
		if tt.wantErr == "" {
			assert.NoError(t, err, tt.name)
			continue
		}
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), tt.wantErr, tt.name)
	}
}

func TestNightlyLocation(t *testing.T) {
	loc := NightlyConfig{Timezone: "Europe/Brussels"}.Location()
	assert.Equal(t, "Europe/Brussels", loc.String())
}
