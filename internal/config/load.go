// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/ppalli/ppalli/internal/xdg"
)

// Flag names bound to configuration keys. A flag maps to the key with
// dashes replaced by dots.
const (
	FlagConfig      = "config"
	FlagHTTPAddr    = "http-addr"
	FlagMetricsAddr = "metrics-addr"
	FlagDatabaseURL = "database-url"
	FlagLogFormat   = "log-format"
	FlagLogLevel    = "log-level"
)

// RegisterFlags adds the configuration flags to flags. Defaults are left
// empty so that unset flags never mask file values.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "path to config file (default $XDG_CONFIG_HOME/ppalli/config.yaml)")
	flags.String(FlagHTTPAddr, "", "API listen address")
	flags.String(FlagMetricsAddr, "", "metrics and health listen address")
	flags.String(FlagDatabaseURL, "", "PostgreSQL connection URL")
	flags.String(FlagLogFormat, "", "log format (json, text)")
	flags.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
}

// Load builds a Config from Default, then the config file, then flags that
// were set explicitly. The file is checked against the JSON Schema before
// it is parsed.
//
// When path is empty the XDG default is tried and silently skipped if it
// does not exist. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		p, err := xdg.ConfigFile()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if err := loadFile(k, path, explicit); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if f.Name == FlagConfig || !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "."), f.Value.String()
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_DECODE_FAILED").With("path", path).Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	provider := file.Provider(path)
	data, err := provider.ReadBytes()
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}
	if err := ValidateSchema(data); err != nil {
		return oops.Code("CONFIG_SCHEMA_INVALID").With("path", path).Wrap(err)
	}
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return oops.Code("CONFIG_PARSE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
