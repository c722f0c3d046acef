package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/flexcsv"
)

var headRows int

var headCmd = &cobra.Command{
	Use:   "head FILE",
	Short: "print the first rows of a file as normalized CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		enc, err := charset()
		if err != nil {
			return err
		}

		p, err := flexcsv.ParseFile(args[0], enc, cfg)
		if err != nil {
			return err
		}
		defer p.Close()

		outCfg := flexcsv.DefaultConfig()
		outCfg.LineDelimiter = "\n"
		out, err := flexcsv.NewAppender(cmd.OutOrStdout(), outCfg)
		if err != nil {
			return err
		}

		if cfg.ContainsHeader {
			header, err := p.Header()
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if header != nil {
				if err := out.AppendRow(header); err != nil {
					return err
				}
			}
		}

		for printed := 0; printed < headRows; printed++ {
			row, err := p.NextRow()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			if err := out.AppendRow(row.Fields); err != nil {
				return err
			}
		}
		return out.Flush()
	},
}

func init() {
	headCmd.Flags().IntVarP(&headRows, "rows", "n", 10, "number of rows to print")
}
