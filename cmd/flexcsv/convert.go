package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/flexcsv"
)

var (
	outSep      string
	outQuote    string
	alwaysQuote bool
	useCRLF     bool
	appendOut   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "rewrite a file in a different delimiter dialect",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inCfg, err := readConfig()
		if err != nil {
			return err
		}
		enc, err := charset()
		if err != nil {
			return err
		}

		if len(outSep) != 1 {
			return fmt.Errorf("--out-sep must be a single character, got %q", outSep)
		}
		if len(outQuote) != 1 {
			return fmt.Errorf("--out-quote must be a single character, got %q", outQuote)
		}
		outCfg := flexcsv.DefaultConfig()
		outCfg.FieldSeparator = outSep[0]
		outCfg.TextDelimiter = outQuote[0]
		outCfg.AlwaysDelimitText = alwaysQuote
		outCfg.LineDelimiter = "\n"
		if useCRLF {
			outCfg.LineDelimiter = "\r\n"
		}

		p, err := flexcsv.ParseFile(args[0], enc, inCfg)
		if err != nil {
			return err
		}
		defer p.Close()

		a, err := flexcsv.OpenAppender(args[1], nil, outCfg, appendOut)
		if err != nil {
			return err
		}
		defer a.Close()

		count := 0
		if inCfg.ContainsHeader {
			header, err := p.Header()
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if header != nil {
				if err := a.AppendRow(header); err != nil {
					return err
				}
			}
		}
		for {
			row, err := p.NextRow()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			if err := a.AppendRow(row.Fields); err != nil {
				return err
			}
			count++
		}
		if err := a.Close(); err != nil {
			return err
		}

		logger.Debug().Int("rows", count).Str("dst", args[1]).Msg("conversion complete")
		fmt.Fprintf(cmd.OutOrStdout(), "converted %d rows\n", count)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&outSep, "out-sep", ",", "output field separator")
	convertCmd.Flags().StringVar(&outQuote, "out-quote", "\"", "output text delimiter")
	convertCmd.Flags().BoolVar(&alwaysQuote, "always-quote", false, "quote every output field")
	convertCmd.Flags().BoolVar(&useCRLF, "crlf", false, "terminate output rows with \\r\\n")
	convertCmd.Flags().BoolVar(&appendOut, "append", false, "append to DST instead of replacing it")
}
