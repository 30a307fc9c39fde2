// Package config resolves runtime settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WELLNESS_ADDR.
const EnvPrefix = "WELLNESS"

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is the resolved service configuration.
type Config struct {
	Addr                   string
	WebDir                 string
	DatabaseURL            string
	Store                  string
	LogMode                string
	DefaultBaseCalories    int
	SessionCleanupInterval time.Duration
	OIDC                   OIDC
}

// OIDC holds the optional single sign-on provider settings. SSO is disabled
// unless Issuer is set.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether SSO is configured.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != ""
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("web_dir", "web")
	v.SetDefault("database_url", "")
	v.SetDefault("store", StorePostgres)
	v.SetDefault("log_mode", "dev")
	v.SetDefault("default_base_calories", 2000)
	v.SetDefault("session_cleanup_interval", time.Hour)
	v.SetDefault("oidc.issuer", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
}

// LoadDotEnv loads variables from the given files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads and validates the configuration from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr:                   v.GetString("addr"),
		WebDir:                 v.GetString("web_dir"),
		DatabaseURL:            v.GetString("database_url"),
		Store:                  strings.ToLower(v.GetString("store")),
		LogMode:                v.GetString("log_mode"),
		DefaultBaseCalories:    v.GetInt("default_base_calories"),
		SessionCleanupInterval: v.GetDuration("session_cleanup_interval"),
		OIDC: OIDC{
			Issuer:       v.GetString("oidc.issuer"),
			ClientID:     v.GetString("oidc.client_id"),
			ClientSecret: v.GetString("oidc.client_secret"),
			RedirectURL:  v.GetString("oidc.redirect_url"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks for settings the service cannot start without.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required when store is postgres")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StorePostgres, StoreMemory)
	}
	if c.DefaultBaseCalories <= 0 {
		return errors.New("default_base_calories must be > 0")
	}
	if c.SessionCleanupInterval <= 0 {
		return errors.New("session_cleanup_interval must be > 0")
	}
	return nil
}
