package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/flexcsv"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "validate that every row has the same field count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		cfg.ErrorOnDifferentFieldCount = true

		enc, err := charset()
		if err != nil {
			return err
		}

		p, err := flexcsv.ParseFile(args[0], enc, cfg)
		if err != nil {
			return err
		}
		defer p.Close()

		rows, fields := 0, 0
		for {
			row, err := p.NextRow()
			if errors.Is(err, io.EOF) {
				break
			}
			var fcErr *flexcsv.FieldCountError
			if errors.As(err, &fcErr) {
				return fmt.Errorf("%s: line %d: expected %d fields, got %d", args[0], fcErr.Line, fcErr.Expected, fcErr.Actual)
			}
			if err != nil {
				return err
			}
			rows++
			fields += len(row.Fields)
		}

		logger.Debug().Int("rows", rows).Int("fields", fields).Msg("scan complete")
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d fields\n", args[0], rows, fields)
		return nil
	},
}
