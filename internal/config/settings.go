package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/sheets"
	"github.com/Veraticus/accountant/internal/storage"
)

// Settings is the typed view of the configuration.
type Settings struct {
	Display  DisplaySettings
	Timezone string
	Storage  StorageSettings
	Sheets   sheets.Config
}

// StorageSettings selects the blob backend holding the ledger.
type StorageSettings struct {
	Backend string
	Path    string
	Key     string
	Redis   storage.RedisOptions
}

// DisplaySettings controls how amounts are shown on screen.
type DisplaySettings struct {
	Locale         string
	CurrencySymbol string
}

// SetDefaults registers defaults for every key Load reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.path", DefaultDataDir())
	v.SetDefault("storage.key", storage.DefaultKey)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "accountant:")
	v.SetDefault("display.locale", "tr")
	v.SetDefault("display.currency_symbol", "₺")
	v.SetDefault("timezone", "")
}

// Load reads Settings from v, or from the global viper instance when v is nil.
// The result is not validated.
func Load(v *viper.Viper) *Settings {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	return &Settings{
		Storage: StorageSettings{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			Path:    ExpandPath(v.GetString("storage.path")),
			Key:     v.GetString("storage.key"),
			Redis: storage.RedisOptions{
				Addr:     v.GetString("storage.redis.addr"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
				Prefix:   v.GetString("storage.redis.prefix"),
			},
		},
		Display: DisplaySettings{
			Locale:         v.GetString("display.locale"),
			CurrencySymbol: v.GetString("display.currency_symbol"),
		},
		Timezone: v.GetString("timezone"),
		Sheets:   LoadSheetsConfig(v),
	}
}

// Validate reports every problem at once. Sheets settings are only checked
// when exporting.
func (s *Settings) Validate() error {
	var errs []string

	if !slices.Contains(storage.Backends, s.Storage.Backend) {
		errs = append(errs, fmt.Sprintf("invalid storage backend '%s': must be one of %v", s.Storage.Backend, storage.Backends))
	}

	switch s.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite:
		if s.Storage.Path == "" {
			errs = append(errs, fmt.Sprintf("storage path cannot be empty when using %s backend", s.Storage.Backend))
		}
	case storage.BackendRedis:
		if s.Storage.Redis.Addr == "" {
			errs = append(errs, "redis address is required when using redis backend")
		}
		if s.Storage.Redis.DB < 0 {
			errs = append(errs, fmt.Sprintf("invalid redis db %d: cannot be negative", s.Storage.Redis.DB))
		}
	}

	if strings.TrimSpace(s.Storage.Key) == "" {
		errs = append(errs, "storage key cannot be empty")
	}

	if _, err := language.Parse(s.Display.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("invalid display locale '%s': %v", s.Display.Locale, err))
	}

	if _, err := s.Location(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", common.ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// Location resolves Timezone; empty or "Local" means the system zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", s.Timezone, err)
	}
	return loc, nil
}

// StorageOptions converts the storage settings for storage.Open.
func (s *Settings) StorageOptions() storage.Options {
	return storage.Options{
		Backend: s.Storage.Backend,
		Path:    s.Storage.Path,
		Redis:   s.Storage.Redis,
	}
}
