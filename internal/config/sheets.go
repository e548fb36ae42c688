package config

import (
	"github.com/spf13/viper"

	"github.com/Veraticus/accountant/internal/sheets"
)

// LoadSheetsConfig builds the Google Sheets settings. Precedence:
// 1. viper (config file or ACCOUNTANT_SHEETS_* env vars)
// 2. GOOGLE_SHEETS_* environment variables
// 3. sheets.DefaultConfig
// The result is not validated; the exporter does that once it is needed.
func LoadSheetsConfig(v *viper.Viper) sheets.Config {
	if v == nil {
		v = viper.GetViper()
	}

	cfg := sheets.DefaultConfig()
	cfg.LoadFromEnv()

	setString(v, "sheets.client_id", &cfg.ClientID)
	setString(v, "sheets.client_secret", &cfg.ClientSecret)
	setString(v, "sheets.refresh_token", &cfg.RefreshToken)
	setString(v, "sheets.spreadsheet_id", &cfg.SpreadsheetID)
	setString(v, "sheets.spreadsheet_name", &cfg.SpreadsheetName)
	setString(v, "sheets.sheet_title", &cfg.SheetTitle)
	setString(v, "sheets.timezone", &cfg.TimeZone)
	setString(v, "sheets.currency_pattern", &cfg.CurrencyPattern)

	if p := v.GetString("sheets.service_account_path"); p != "" {
		cfg.ServiceAccountPath = p
	}
	if p := v.GetString("sheets.token_file"); p != "" {
		cfg.TokenFile = p
	}
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)
	cfg.TokenFile = ExpandPath(cfg.TokenFile)

	if v.IsSet("sheets.batch_size") {
		cfg.BatchSize = v.GetInt("sheets.batch_size")
	}
	if v.IsSet("sheets.retry_attempts") {
		cfg.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.retry_delay") {
		cfg.RetryDelay = v.GetDuration("sheets.retry_delay")
	}
	if v.IsSet("sheets.enable_formatting") {
		cfg.EnableFormatting = v.GetBool("sheets.enable_formatting")
	}

	// OAuth needs somewhere to keep the token obtained by "auth sheets".
	if cfg.TokenFile == "" && cfg.ClientID != "" && cfg.RefreshToken == "" {
		cfg.TokenFile = ExpandPath("~/.config/accountant/sheets-token.json")
	}

	return cfg
}

func setString(v *viper.Viper, key string, dst *string) {
	if s := v.GetString(key); s != "" {
		*dst = s
	}
}
