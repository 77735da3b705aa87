package jsonext

import (
	"encoding/json"
	"strings"

	xjson "github.com/charmbracelet/x/json"
)

// IsValidJSON reports whether data holds exactly one JSON value.
func IsValidJSON[T string | []byte](data T) bool {
	if len(data) == 0 { // hot path
		return false
	}
	return xjson.IsValid(string(data))
}

// IsBlank reports whether data holds nothing but JSON whitespace.
func IsBlank(data string) bool {
	return strings.Trim(data, " \t\r\n") == ""
}

// Decode unmarshals a single JSON value into the generic Go representation.
func Decode[T string | []byte](data T) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, err
	}
	return v, nil
}
