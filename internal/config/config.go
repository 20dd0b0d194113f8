// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

// Package config loads ppalli configuration from a YAML file and command
// line flags.
package config

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ppalli/ppalli/internal/credential"
)

// Algorithm names accepted in credential.versions.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Config is the complete ppalli configuration.
type Config struct {
	HTTP       HTTPConfig       `koanf:"http" json:"http,omitempty"`
	Metrics    MetricsConfig    `koanf:"metrics" json:"metrics,omitempty"`
	Database   DatabaseConfig   `koanf:"database" json:"database,omitempty"`
	Log        LogConfig        `koanf:"log" json:"log,omitempty"`
	Credential CredentialConfig `koanf:"credential" json:"credential,omitempty"`
}

// HTTPConfig configures the public API listener.
type HTTPConfig struct {
	Addr string `koanf:"addr" json:"addr,omitempty" jsonschema:"description=Listen address of the API server"`
}

// MetricsConfig configures the observability listener.
type MetricsConfig struct {
	// Addr is empty to disable the listener.
	Addr string `koanf:"addr" json:"addr,omitempty" jsonschema:"description=Listen address for /metrics and health probes; empty disables"`
}

// DatabaseConfig configures PostgreSQL access.
type DatabaseConfig struct {
	URL            string `koanf:"url" json:"url,omitempty" jsonschema:"description=PostgreSQL connection URL"`
	AutoMigrate    bool   `koanf:"auto_migrate" json:"auto_migrate,omitempty" jsonschema:"description=Apply pending migrations on startup"`
	ConnectRetries uint64 `koanf:"connect_retries" json:"connect_retries,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Format string `koanf:"format" json:"format,omitempty" jsonschema:"enum=json,enum=text"`
	Level  string `koanf:"level" json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// CredentialConfig configures password encoding. With no versions the
// built-in argon2id v1 is used.
type CredentialConfig struct {
	// Active is the version new passwords are encoded with. Empty selects
	// the newest configured version. Bcrypt versions cannot be active.
	Active   string                   `koanf:"active" json:"active,omitempty"`
	Versions map[string]VersionConfig `koanf:"versions" json:"versions,omitempty"`
}

// VersionConfig describes one registered credential version.
type VersionConfig struct {
	Algorithm  string                     `koanf:"algorithm" json:"algorithm" jsonschema:"enum=argon2id,enum=bcrypt"`
	Argon2id   *credential.Argon2idParams `koanf:"argon2id" json:"argon2id,omitempty"`
	BcryptCost int                        `koanf:"bcrypt_cost" json:"bcrypt_cost,omitempty" jsonschema:"minimum=4,maximum=31"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Addr: ":8080"},
		Metrics:  MetricsConfig{Addr: ":9100"},
		Database: DatabaseConfig{ConnectRetries: 5},
		Log:      LogConfig{Format: "json", Level: "info"},
	}
}

// Validate checks field values after loading.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTP),
		validation.Field(&c.Log),
		validation.Field(&c.Database),
		validation.Field(&c.Credential),
	)
}

// Validate implements validation.Validatable.
func (c HTTPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (c DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.By(postgresURL)),
	)
}

// postgresURL accepts postgres:// URLs and libpq keyword/value strings.
func postgresURL(v any) error {
	s, _ := v.(string)
	if !strings.Contains(s, "://") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_database_url", "must be a valid URL")
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return validation.NewError("validation_database_url", "scheme must be postgres or postgresql")
	}
	return nil
}

// Validate implements validation.Validatable.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Format, validation.In("json", "text")),
		validation.Field(&c.Level, validation.By(func(v any) error {
			s, _ := v.(string)
			if !validation.IsEmpty(s) && !validLevel(s) {
				return validation.NewError("validation_log_level", "must be debug, info, warn or error")
			}
			return nil
		})),
	)
}

func validLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// Validate implements validation.Validatable.
func (c CredentialConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Active, validation.When(len(c.Versions) > 0 && c.Active != "",
			validation.By(func(any) error {
				v, ok := c.Versions[c.Active]
				if !ok {
					return validation.NewError("validation_active_version", "must name a configured version")
				}
				if v.Algorithm == AlgorithmBcrypt {
					return validation.NewError("validation_active_verify_only", "bcrypt versions can only verify existing credentials")
				}
				return nil
			}),
		)),
		validation.Field(&c.Versions),
	)
}

// Validate implements validation.Validatable.
func (c VersionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Algorithm, validation.Required, validation.In(AlgorithmArgon2id, AlgorithmBcrypt)),
		validation.Field(&c.Argon2id, validation.When(c.Algorithm == AlgorithmArgon2id, validation.NotNil)),
		validation.Field(&c.BcryptCost, validation.When(c.Algorithm == AlgorithmBcrypt,
			validation.Required, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost))),
	)
}
