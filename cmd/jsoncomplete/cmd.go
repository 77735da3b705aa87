package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	autocomplete "github.com/JoongWonSeo/json-autocomplete"
	"github.com/JoongWonSeo/json-autocomplete/internal/envconfig"
)

type globalFlags struct {
	envFile  string
	strict   bool
	maxDepth int
	debug    bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "jsoncomplete",
		Short:         "Complete truncated JSON into the shortest valid document",
		Version:       autocomplete.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "load environment variables from this file if it exists")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "verify every byte of the input against the grammar")
	cmd.PersistentFlags().IntVar(&flags.maxDepth, "max-depth", 0, "maximum nesting of objects and arrays (0 uses the default)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log debug information to stderr")

	cmd.AddCommand(
		newCompleteCmd(&flags),
		newParseCmd(&flags),
		newStreamCmd(&flags),
		newEnvCmd(&flags),
	)

	return cmd
}

// options merges the environment with flags; flags that were set explicitly
// win.
func (f *globalFlags) options(cmd *cobra.Command) ([]autocomplete.Option, error) {
	if err := envconfig.LoadDotEnv(f.envFile); err != nil {
		return nil, err
	}
	cfg := f.config(cmd)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := []autocomplete.Option{autocomplete.WithLogger(logger)}
	if cfg.Strict {
		opts = append(opts, autocomplete.WithStrict())
	}
	if cfg.MaxDepth != 0 {
		opts = append(opts, autocomplete.WithMaxDepth(cfg.MaxDepth))
	}
	return opts, nil
}

func (f *globalFlags) config(cmd *cobra.Command) envconfig.Config {
	cfg := envconfig.Load()
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg
}

// readInput returns the joined arguments, or all of stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func newCompleteCmd(flags *globalFlags) *cobra.Command {
	var suffixOnly bool

	cmd := &cobra.Command{
		Use:   "complete [prefix]",
		Short: "Print the completion of a JSON prefix read from the arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var out string
			if suffixOnly {
				out, err = autocomplete.Suffix(input, opts...)
			} else {
				out, err = autocomplete.Complete(input, opts...)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&suffixOnly, "suffix", false, "print only the appended text")

	return cmd
}

func newEnvCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the configuration environment variables and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := envconfig.LoadDotEnv(flags.envFile); err != nil {
				return err
			}
			vars := flags.config(cmd).AsMap()
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			slices.Sort(names)

			w := cmd.OutOrStdout()
			for _, name := range names {
				v := vars[name]
				if _, err := fmt.Fprintf(w, "%s=%v\t%s\n", v.Name, v.Value, v.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
