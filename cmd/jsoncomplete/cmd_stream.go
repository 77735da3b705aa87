package main

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/spf13/cobra"

	autocomplete "github.com/JoongWonSeo/json-autocomplete"
)

func newStreamCmd(flags *globalFlags) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Read JSON from stdin in chunks and print the completion after each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunkSize <= 0 {
				return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			var readErr error
			deltas := readChunks(cmd.InOrStdin(), chunkSize, &readErr)

			w := cmd.OutOrStdout()
			for part := range autocomplete.Stream(deltas, opts...) {
				switch part.Type {
				case autocomplete.StreamPartTypeObject:
					if _, err := fmt.Fprintln(w, part.Text); err != nil {
						return err
					}
				case autocomplete.StreamPartTypeError:
					return part.Error
				case autocomplete.StreamPartTypeFinish:
					slog.Debug("stream finished", "stream", part.ID, "bytes", len(part.Text))
				}
			}
			return readErr
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk", 16, "number of bytes per delta")

	return cmd
}

// readChunks yields r in pieces of at most size bytes. A read error ends
// the sequence and is stored in errp.
func readChunks(r io.Reader, size int, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		buf := make([]byte, size)
		for {
			n, err := io.ReadFull(r, buf)
			if n > 0 && !yield(string(buf[:n])) {
				return
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			if err != nil {
				*errp = fmt.Errorf("read input: %w", err)
				return
			}
		}
	}
}
