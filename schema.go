package autocomplete

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/kaptinlin/jsonschema"

	"github.com/JoongWonSeo/json-autocomplete/internal/jsonext"
)

// ParseState represents the state of JSON parsing.
type ParseState string

const (
	// ParseStateUndefined means input was empty or only whitespace.
	ParseStateUndefined ParseState = "undefined"

	// ParseStateSuccessful means the input was already valid JSON.
	ParseStateSuccessful ParseState = "successful"

	// ParseStateCompleted means the input was a JSON prefix and parsed after
	// completion.
	ParseStateCompleted ParseState = "completed"

	// ParseStateRepaired means the input was not a JSON prefix and parsed
	// after repair.
	ParseStateRepaired ParseState = "repaired"

	// ParseStateFailed means the input could not be parsed at all.
	ParseStateFailed ParseState = "failed"
)

// ParsePartialJSON parses potentially incomplete JSON.
//
// Valid JSON is decoded directly. Otherwise the input is completed as a
// prefix. When that fails, or the completed text still does not decode,
// parsing falls back to a general purpose repair. Exceeding the nesting
// limit is never repaired.
//
// Example:
//
//	obj, state, err := ParsePartialJSON(`{"name": "John", "age": 25`)
//	// Result: map[string]any{"name": "John", "age": 25}, ParseStateCompleted, nil
func ParsePartialJSON(text string, opts ...Option) (any, ParseState, error) {
	if jsonext.IsBlank(text) {
		return nil, ParseStateUndefined, nil
	}

	if jsonext.IsValidJSON(text) {
		result, err := jsonext.Decode(text)
		if err == nil {
			return result, ParseStateSuccessful, nil
		}
	}

	cfg := applyOptions(opts)
	completed, err := complete([]byte(text), cfg)
	if err == nil {
		result, decodeErr := jsonext.Decode(completed)
		if decodeErr == nil {
			return result, ParseStateCompleted, nil
		}
		// Lax completion trusts a token once its first byte selects it, so
		// the completed text can still be malformed.
		err = fmt.Errorf("failed to parse completed json: %w", decodeErr)
	} else if errors.Is(err, ErrDepthExceeded) {
		return nil, ParseStateFailed, err
	}

	cfg.logger.Debug("falling back to json repair", "error", err)
	repaired, repairErr := jsonrepair.RepairJSON(text)
	if repairErr != nil {
		return nil, ParseStateFailed, fmt.Errorf("json repair failed: %w", errors.Join(err, repairErr))
	}

	result, decodeErr := jsonext.Decode(repaired)
	if decodeErr != nil {
		return nil, ParseStateFailed, fmt.Errorf("failed to parse repaired json: %w", errors.Join(err, decodeErr))
	}

	return result, ParseStateRepaired, nil
}

// ParseAndValidate combines partial parsing and schema validation.
// Returns the parsed object if both parsing and validation succeed.
func ParseAndValidate(text string, schema []byte, opts ...Option) (any, error) {
	obj, state, err := ParsePartialJSON(text, opts...)
	switch state {
	case ParseStateFailed:
		return nil, &NoObjectError{RawText: text, ParseError: err}
	case ParseStateUndefined:
		return nil, &NoObjectError{RawText: text, ParseError: errors.New("empty input")}
	}

	if err := ValidateAgainstSchema(obj, schema); err != nil {
		return nil, &NoObjectError{
			RawText:         text,
			ValidationError: err,
		}
	}

	return obj, nil
}

// ValidateAgainstSchema validates a parsed object against a JSON Schema
// document.
func ValidateAgainstSchema(obj any, schema []byte) error {
	compiler := jsonschema.NewCompiler()
	validator, err := compiler.Compile(schema)
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	result := validator.Validate(obj)
	if !result.IsValid() {
		var errMsgs []string
		for field, validationErr := range result.Errors {
			errMsgs = append(errMsgs, fmt.Sprintf("%s: %s", field, validationErr.Message))
		}
		slices.Sort(errMsgs)
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}

	return nil
}

// SchemaFor marshals a schema given as a Go value, such as a map, into the
// document form ValidateAgainstSchema expects.
func SchemaFor(schema any) ([]byte, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return b, nil
}
