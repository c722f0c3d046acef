package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/oleg578/flexcsv"
)

var (
	cfgFile      string
	separator    string
	quote        string
	hasHeader    bool
	keepEmpty    bool
	encodingName string
	verbose      bool

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
)

var rootCmd = &cobra.Command{
	Use:           "flexcsv",
	Short:         "inspect, validate and convert delimited text files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

		// Flags win over the config file, the config file over defaults.
		if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", cfgFile, err)
			}
			logger.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML file supplying flag defaults")
	rootCmd.PersistentFlags().StringVar(&separator, "sep", ",", "field separator character")
	rootCmd.PersistentFlags().StringVar(&quote, "quote", "\"", "text delimiter character")
	rootCmd.PersistentFlags().BoolVar(&hasHeader, "header", false, "treat the first row as a header")
	rootCmd.PersistentFlags().BoolVar(&keepEmpty, "keep-empty", false, "keep blank lines as zero-field rows")
	rootCmd.PersistentFlags().StringVar(&encodingName, "encoding", "", "IANA charset of the input (default UTF-8)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(checkCmd, headCmd, convertCmd)
}

// readConfig builds the parse-side dialect from the resolved flag and
// config-file values.
func readConfig() (flexcsv.Config, error) {
	cfg := flexcsv.DefaultConfig()

	sep := viper.GetString("sep")
	if len(sep) != 1 {
		return cfg, fmt.Errorf("--sep must be a single character, got %q", sep)
	}
	q := viper.GetString("quote")
	if len(q) != 1 {
		return cfg, fmt.Errorf("--quote must be a single character, got %q", q)
	}

	cfg.FieldSeparator = sep[0]
	cfg.TextDelimiter = q[0]
	cfg.ContainsHeader = viper.GetBool("header")
	cfg.SkipEmptyRows = !viper.GetBool("keep-empty")
	return cfg, nil
}

func charset() (encoding.Encoding, error) {
	name := viper.GetString("encoding")
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return enc, nil
}
