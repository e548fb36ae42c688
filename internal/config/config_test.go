package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/storage"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_TOKEN_FILE",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(name, "")
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ACCOUNTANT_TEST_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/ledger", want: filepath.Join(home, "ledger")},
		{in: "$ACCOUNTANT_TEST_DIR/ledger", want: "/srv/data/ledger"},
		{in: "/abs/path", want: "/abs/path"},
		{in: "~other/path", want: "~other/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, "/xdg/accountant", DefaultDataDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("XDG_DATA_HOME", "/xdg")

	s := Load(viper.New())

	assert.Equal(t, storage.BackendFile, s.Storage.Backend)
	assert.Equal(t, "/xdg/accountant", s.Storage.Path)
	assert.Equal(t, storage.DefaultKey, s.Storage.Key)
	assert.Equal(t, "localhost:6379", s.Storage.Redis.Addr)
	assert.Equal(t, "tr", s.Display.Locale)
	assert.Equal(t, "₺", s.Display.CurrencySymbol)
	assert.Equal(t, "Accountant", s.Sheets.SpreadsheetName)
	require.NoError(t, s.Validate())

	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FromViper(t *testing.T) {
	clearSheetsEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	v := viper.New()
	v.Set("storage.backend", "SQLite")
	v.Set("storage.path", "~/books.db")
	v.Set("storage.key", "Ledger")
	v.Set("storage.redis.db", 2)
	v.Set("display.locale", "en-US")
	v.Set("display.currency_symbol", "$")
	v.Set("timezone", "Europe/Istanbul")

	s := Load(v)
	require.NoError(t, s.Validate())

	assert.Equal(t, storage.BackendSQLite, s.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "books.db"), s.Storage.Path)
	assert.Equal(t, "Ledger", s.Storage.Key)
	assert.Equal(t, 2, s.Storage.Redis.DB)
	assert.Equal(t, "$", s.Display.CurrencySymbol)

	opts := s.StorageOptions()
	assert.Equal(t, storage.BackendSQLite, opts.Backend)
	assert.Equal(t, s.Storage.Path, opts.Path)

	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", loc.String())
}

func TestSettings_ValidateCollectsErrors(t *testing.T) {
	clearSheetsEnv(t)

	v := viper.New()
	v.Set("storage.backend", "redis")
	v.Set("storage.redis.addr", "")
	v.Set("storage.redis.db", -1)
	v.Set("storage.key", " ")
	v.Set("display.locale", "not a locale!")
	v.Set("timezone", "Mars/Olympus")

	err := Load(v).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	msg := err.Error()
	assert.Contains(t, msg, "redis address is required")
	assert.Contains(t, msg, "invalid redis db -1")
	assert.Contains(t, msg, "storage key cannot be empty")
	assert.Contains(t, msg, "invalid display locale")
	assert.Contains(t, msg, "invalid timezone 'Mars/Olympus'")
}

func TestSettings_ValidateBackend(t *testing.T) {
	clearSheetsEnv(t)

	v := viper.New()
	v.Set("storage.backend", "postgres")
	err := Load(v).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend 'postgres'")

	v = viper.New()
	v.Set("storage.backend", "file")
	v.Set("storage.path", "")
	err = Load(v).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage path cannot be empty when using file backend")
}

func TestLoadSheetsConfig(t *testing.T) {
	clearSheetsEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("environment fills unset keys", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "~/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

		cfg := LoadSheetsConfig(viper.New())
		assert.Equal(t, filepath.Join(home, "sa.json"), cfg.ServiceAccountPath)
		assert.Equal(t, "from-env", cfg.SpreadsheetID)
		require.NoError(t, cfg.Validate())
	})

	t.Run("viper wins over environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

		v := viper.New()
		v.Set("sheets.spreadsheet_id", "from-config")
		v.Set("sheets.service_account_path", "/etc/sa.json")
		v.Set("sheets.batch_size", 50)
		v.Set("sheets.retry_delay", "250ms")
		v.Set("sheets.enable_formatting", false)

		cfg := LoadSheetsConfig(v)
		assert.Equal(t, "from-config", cfg.SpreadsheetID)
		assert.Equal(t, "/etc/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, 50, cfg.BatchSize)
		assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
		assert.False(t, cfg.EnableFormatting)
	})

	t.Run("oauth client gets a default token file", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.client_id", "id")
		v.Set("sheets.client_secret", "secret")

		cfg := LoadSheetsConfig(v)
		assert.Equal(t, filepath.Join(home, ".config", "accountant", "sheets-token.json"), cfg.TokenFile)
		assert.True(t, cfg.HasOAuth())
	})
}
