package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envStrict   = "JSONCOMPLETE_STRICT"
	envMaxDepth = "JSONCOMPLETE_MAX_DEPTH"
	envDebug    = "JSONCOMPLETE_DEBUG"
)

// Config holds settings read from the environment.
type Config struct {
	// Set via JSONCOMPLETE_STRICT in the environment
	Strict bool
	// Set via JSONCOMPLETE_MAX_DEPTH in the environment. Zero means the
	// library default.
	MaxDepth int
	// Set via JSONCOMPLETE_DEBUG in the environment
	Debug bool
}

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap describes every variable together with its current value.
func (c Config) AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		envStrict:   {envStrict, c.Strict, "Reject inputs that diverge from a token after its first byte"},
		envMaxDepth: {envMaxDepth, c.MaxDepth, "Maximum nesting of objects and arrays (default 10000)"},
		envDebug:    {envDebug, c.Debug, "Show additional debug information (e.g. JSONCOMPLETE_DEBUG=1)"},
	}
}

// LoadDotEnv loads variables from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if %s exists: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment. Malformed values are
// logged and ignored.
func Load() Config {
	var c Config
	c.Strict = boolVar(envStrict)
	c.Debug = boolVar(envDebug)

	if s := clean(envMaxDepth); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", envMaxDepth, "value", s, "error", err)
		} else {
			c.MaxDepth = n
		}
	}
	return c
}

func boolVar(key string) bool {
	s := clean(key)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		slog.Warn("invalid environment variable, ignoring", "key", key, "value", s, "error", err)
		return false
	}
	return b
}

// clean returns the value of key with surrounding whitespace and quotes
// removed.
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' \t")
}
