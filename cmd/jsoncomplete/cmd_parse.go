package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	autocomplete "github.com/JoongWonSeo/json-autocomplete"
)

func newParseCmd(flags *globalFlags) *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse partial JSON and print the resulting value",
		Long: `Parse partial JSON and print the resulting value as indented JSON.

The parse state (successful, completed, repaired) is written to stderr. With
--schema the value is also validated against a JSON Schema document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			obj, state, err := autocomplete.ParsePartialJSON(input, opts...)
			if err != nil {
				return err
			}
			if state == autocomplete.ParseStateUndefined {
				return errors.New("empty input")
			}

			if schemaFile != "" {
				schema, err := os.ReadFile(schemaFile)
				if err != nil {
					return fmt.Errorf("read schema: %w", err)
				}
				if err := autocomplete.ValidateAgainstSchema(obj, schema); err != nil {
					return err
				}
			}

			out, err := json.MarshalIndent(obj, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "state:", state)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&schemaFile, "schema", "", "validate the result against this JSON Schema file")

	return cmd
}
