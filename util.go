package autocomplete

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a parsed object, as returned by ParsePartialJSON, into T.
// Fields are matched by their json tag. Keys missing from a partial object
// leave the corresponding fields at their zero value.
func Decode[T any](obj any) (T, error) {
	var result T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &result,
	})
	if err != nil {
		return result, err
	}
	if err := decoder.Decode(obj); err != nil {
		return result, fmt.Errorf("failed to decode into %T: %w", result, err)
	}
	return result, nil
}

// ParsePartial completes text and decodes the result into T.
func ParsePartial[T any](text string, opts ...Option) (T, ParseState, error) {
	var zero T
	obj, state, err := ParsePartialJSON(text, opts...)
	if err != nil || state == ParseStateUndefined {
		return zero, state, err
	}
	result, err := Decode[T](obj)
	if err != nil {
		return zero, ParseStateFailed, err
	}
	return result, state, nil
}
