// Package autocomplete completes truncated JSON into the shortest valid
// JSON document that extends it.
//
// The input is assumed to be a genuine prefix of some JSON document, such as
// the partial output of a model streaming tool-call arguments:
//
//	out, err := autocomplete.Complete(`{"name": "Jo`)
//	// out == `{"name": "Jo"}`
//
// Completion is a single left-to-right pass over a fixed grammar. Missing
// tokens are synthesized, optional parts without evidence in the input are
// omitted, and repetitions are never invented, so the result is minimal.
package autocomplete

import (
	"errors"
	"log/slog"

	"github.com/JoongWonSeo/json-autocomplete/grammar"
)

// DefaultMaxDepth is the container nesting accepted unless WithMaxDepth says
// otherwise.
const DefaultMaxDepth = 10000

// Option is a function that configures completion.
type Option func(*options)

type options struct {
	strict   bool
	maxDepth int
	logger   *slog.Logger
}

func applyOptions(opts []Option) options {
	cfg := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// WithStrict verifies every byte of the input against the grammar.
//
// By default a token is trusted once its first byte has selected it, so an
// input such as `tx` completes to `txue` rather than failing. Strict mode
// reports such inputs as invalid prefixes.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithMaxDepth limits how deeply objects and arrays may nest. Zero or a
// negative value removes the limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func (o options) stateOptions() []grammar.StateOption {
	var opts []grammar.StateOption
	if o.strict {
		opts = append(opts, grammar.WithStrict())
	}
	if o.maxDepth > 0 {
		// Each container costs two references (itself and the value inside
		// it) on top of the root value.
		opts = append(opts, grammar.WithMaxDepth(2*o.maxDepth+1))
	}
	return opts
}

// Complete returns the shortest valid JSON document that starts with prefix.
// Completing an already valid document returns it unchanged.
func Complete(prefix string, opts ...Option) (string, error) {
	out, err := complete([]byte(prefix), applyOptions(opts))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CompleteBytes is like Complete but works on bytes. The input slice is not
// modified.
func CompleteBytes(prefix []byte, opts ...Option) ([]byte, error) {
	return complete(prefix, applyOptions(opts))
}

// Suffix returns only the bytes Complete would append to prefix.
func Suffix(prefix string, opts ...Option) (string, error) {
	out, err := Complete(prefix, opts...)
	if err != nil {
		return "", err
	}
	return out[len(prefix):], nil
}

// MustComplete is like Complete but panics on error.
func MustComplete(prefix string, opts ...Option) string {
	out, err := Complete(prefix, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

func complete(prefix []byte, cfg options) ([]byte, error) {
	s := grammar.NewState(prefix, cfg.stateOptions()...)
	err := jsonGrammar().Complete(s)

	var mismatch *grammar.MismatchError
	switch {
	case errors.As(err, &mismatch):
		cfg.logger.Debug("json prefix rejected", "position", mismatch.Position, "want", mismatch.Want)
		return nil, &InvalidPrefixError{Position: mismatch.Position, Char: mismatch.Got, Err: err}
	case err != nil:
		cfg.logger.Debug("json completion failed", "error", err)
		return nil, err
	case !s.Done():
		pos := s.Pos()
		cfg.logger.Debug("json prefix has unexplained input", "position", pos, "length", len(prefix))
		return nil, &InvalidPrefixError{Position: pos, Char: s.Bytes()[pos]}
	}
	return s.Bytes(), nil
}
