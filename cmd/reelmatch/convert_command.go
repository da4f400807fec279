// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

func newConvertCommand() *cobra.Command {
	var float32Elems bool

	cmd := &cobra.Command{
		Use:         "convert <input> <output>",
		Short:       "Re-encode a similarity matrix in the binary format",
		Long:        "Read a similarity matrix (format chosen by extension) and write it in the compact binary layout the server loads fastest.",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := similarity.LoadFile(args[0])
			if err != nil {
				return err
			}

			tmp, err := os.CreateTemp(filepath.Dir(args[1]), "."+filepath.Base(args[1])+".*.tmp")
			if err != nil {
				return err
			}
			tmpPath := tmp.Name()
			defer os.Remove(tmpPath)

			err = similarity.WriteBinary(tmp, m, float32Elems)
			if closeErr := tmp.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			if err := os.Rename(tmpPath, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d matrix to %s\n", m.Size(), m.Size(), args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&float32Elems, "float32", false, "Store 4-byte elements (halves the file size)")
	return cmd
}
