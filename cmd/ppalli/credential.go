// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/validation"
)

// NewCredentialCmd creates the credential subcommand.
func NewCredentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Encode and check passwords offline",
	}
	cmd.AddCommand(newCredentialHashCmd(), newCredentialVerifyCmd())
	return cmd
}

func newCredentialHashCmd() *cobra.Command {
	var enforcePolicy bool

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Encode a password read from stdin with the active version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			encoder, err := cfg.Credential.Encoder()
			if err != nil {
				return err
			}
			secret, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if enforcePolicy {
				var v validation.Validator
				if err := v.Check("password", string(secret), validation.Password()).Err(); err != nil {
					return err
				}
			}

			encoded, err := encoder.Encode(secret)
			if err != nil {
				return err
			}
			cmd.Println(encoded.Raw())
			return nil
		},
	}

	cmd.Flags().BoolVar(&enforcePolicy, "enforce-policy", false, "reject passwords that fail the registration rules")
	return cmd
}

func newCredentialVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify ENCODED",
		Short: "Check a password read from stdin against ENCODED",
		Long: `Check a password read from stdin against ENCODED. When the password
matches but ENCODED uses an older version, the re-encoded value is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			encoder, err := cfg.Credential.Encoder()
			if err != nil {
				return err
			}
			secret, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}

			ok, upgraded, err := encoder.VerifyAndUpgrade(secret, credential.Encoded(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return oops.Code("CREDENTIAL_MISMATCH").Errorf("password does not match")
			}
			cmd.Println("match")
			if upgraded != "" {
				cmd.Println("upgraded:", upgraded.Raw())
			}
			return nil
		},
	}
}

// readSecret reads the first line of r without its line ending.
func readSecret(r io.Reader) (credential.Secret, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", oops.Code("CREDENTIAL_READ_FAILED").Wrap(err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", oops.Code("CREDENTIAL_EMPTY").Errorf("no password on stdin")
	}
	return credential.Secret(line), nil
}
