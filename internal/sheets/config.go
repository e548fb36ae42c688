// Package sheets exports the ledger to a Google Sheets spreadsheet.
package sheets

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultSheetTitle names the tab the export is written to.
const DefaultSheetTitle = "Transactions"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	SheetTitle         string
	TimeZone           string
	CurrencyPattern    string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	MaxRetryDelay      time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		SpreadsheetName:  "Accountant",
		SheetTitle:       DefaultSheetTitle,
		TimeZone:         "Europe/Istanbul",
		CurrencyPattern:  "#,##0.00 [$₺]",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		MaxRetryDelay:    30 * time.Second,
	}
}

// LoadFromEnv fills credentials and spreadsheet settings from GOOGLE_SHEETS_*
// environment variables. Unset variables leave the current value alone.
func (c *Config) LoadFromEnv() {
	setFromEnv(&c.ClientID, "GOOGLE_SHEETS_CLIENT_ID")
	setFromEnv(&c.ClientSecret, "GOOGLE_SHEETS_CLIENT_SECRET")
	setFromEnv(&c.RefreshToken, "GOOGLE_SHEETS_REFRESH_TOKEN")
	setFromEnv(&c.TokenFile, "GOOGLE_SHEETS_TOKEN_FILE")
	setFromEnv(&c.ServiceAccountPath, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")
	setFromEnv(&c.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setFromEnv(&c.SpreadsheetName, "GOOGLE_SHEETS_SPREADSHEET_NAME")
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// HasOAuth reports whether OAuth2 client credentials are present. A refresh
// token may come from the config itself or from TokenFile.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && (c.RefreshToken != "" || c.TokenFile != "")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasOAuth := c.HasOAuth()
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return errors.New("no authentication method configured")
	}

	if hasOAuth && hasServiceAccount {
		return errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	if c.RetryAttempts < 0 {
		return errors.New("retry attempts cannot be negative")
	}

	if c.RetryDelay < 0 {
		return errors.New("retry delay cannot be negative")
	}

	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
		}
	}

	return nil
}
