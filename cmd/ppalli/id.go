// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"strconv"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ppalli/ppalli/internal/idgen"
)

// NewIDCmd creates the id subcommand.
func NewIDCmd() *cobra.Command {
	var (
		count  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Mint identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return oops.Code("ID_INVALID_COUNT").With("count", count).Errorf("count must be positive")
			}
			if format != "decimal" && format != "text" {
				return oops.Code("ID_INVALID_FORMAT").With("format", format).Errorf("format must be decimal or text")
			}
			for range count {
				id := idgen.Next()
				if format == "text" {
					cmd.Println(id.String())
				} else {
					cmd.Println(id.Int64())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers to mint")
	cmd.Flags().StringVar(&format, "format", "decimal", "output format (decimal, text)")

	cmd.AddCommand(&cobra.Command{
		Use:   "parse ID",
		Short: "Decode an identifier in decimal or text form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("decimal: %d\n", id.Int64())
			cmd.Printf("text:    %s\n", id.String())
			cmd.Printf("time:    %s\n", id.Time().UTC().Format(time.RFC3339Nano))
			cmd.Printf("counter: %d\n", id.Counter())
			return nil
		},
	})

	return cmd
}

func parseID(s string) (idgen.ID, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return idgen.ID(n), nil
	}
	return idgen.Parse(s)
}
