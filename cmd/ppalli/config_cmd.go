// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppalli/ppalli/internal/config"
	"github.com/ppalli/ppalli/internal/xdg"
)

// NewConfigCmd creates the config subcommand.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			cmd.Println(string(schema))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if u, err := url.Parse(cfg.Database.URL); err == nil && u.User != nil {
				cfg.Database.URL = u.Redacted()
			}
			out, err := toYAML(cfg)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to --config, or to
$XDG_CONFIG_HOME/ppalli/config.yaml when --config is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString(config.FlagConfig)
			if err != nil {
				return err //nolint:wrapcheck // flag is always registered
			}
			if path == "" {
				if path, err = xdg.ConfigFile(); err != nil {
					return err
				}
			}
			return writeDefaultConfig(path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return oops.Code("CONFIG_EXISTS").With("path", path).Errorf("config file already exists")
		} else if !errors.Is(err, fs.ErrNotExist) {
			return oops.Code("CONFIG_STAT_FAILED").With("path", path).Wrap(err)
		}
	}
	if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	out, err := toYAML(config.Default())
	if err != nil {
		return err
	}
	header := "# yaml-language-server: $schema=" + config.SchemaID + "\n"
	if err := os.WriteFile(path, append([]byte(header), out...), 0o600); err != nil {
		return oops.Code("CONFIG_WRITE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}

// toYAML renders cfg with the same keys the loader reads. The JSON tags
// match the koanf tags, so JSON is used as the intermediate form.
func toYAML(cfg *config.Config) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, oops.Code("CONFIG_ENCODE_FAILED").Wrap(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, oops.Code("CONFIG_ENCODE_FAILED").Wrap(err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, oops.Code("CONFIG_ENCODE_FAILED").Wrap(err)
	}
	return out, nil
}
