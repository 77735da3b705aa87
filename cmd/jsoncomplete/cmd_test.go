package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	autocomplete "github.com/JoongWonSeo/json-autocomplete"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("JSONCOMPLETE_STRICT", "")
	t.Setenv("JSONCOMPLETE_MAX_DEPTH", "")
	t.Setenv("JSONCOMPLETE_DEBUG", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), ".env")))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestCompleteCmd(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		out, err := execute(t, "", "complete", `{"a": [1`)
		require.NoError(t, err)
		require.Equal(t, "{\"a\": [1]}\n", out)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := execute(t, `["x`, "complete")
		require.NoError(t, err)
		require.Equal(t, "[\"x\"]\n", out)
	})

	t.Run("suffix", func(t *testing.T) {
		out, err := execute(t, "", "complete", "--suffix", `{"a": tr`)
		require.NoError(t, err)
		require.Equal(t, "ue}\n", out)
	})

	t.Run("invalid prefix", func(t *testing.T) {
		_, err := execute(t, "", "complete", "1 2")
		require.ErrorIs(t, err, autocomplete.ErrInvalidPrefix)
	})

	t.Run("strict flag", func(t *testing.T) {
		out, err := execute(t, "", "complete", "tx")
		require.NoError(t, err)
		require.Equal(t, "txue\n", out)

		_, err = execute(t, "", "complete", "--strict", "tx")
		require.ErrorIs(t, err, autocomplete.ErrInvalidPrefix)
	})

	t.Run("max depth from env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("JSONCOMPLETE_MAX_DEPTH=1\n"), 0o600))

		t.Setenv("JSONCOMPLETE_MAX_DEPTH", "")
		require.NoError(t, os.Unsetenv("JSONCOMPLETE_MAX_DEPTH"))

		var stdout bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"complete", "--env-file", path, "[["})
		require.ErrorIs(t, cmd.Execute(), autocomplete.ErrDepthExceeded)
	})
}

func TestParseCmd(t *testing.T) {
	t.Run("partial object", func(t *testing.T) {
		out, err := execute(t, "", "parse", `{"a": 1, "b": ["x`)
		require.NoError(t, err)
		require.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    \"x\"\n  ]\n}\n", out)
	})

	t.Run("schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type": "object", "required": ["name"]}`), 0o600))

		_, err := execute(t, "", "parse", "--schema", path, `{"name": "J`)
		require.NoError(t, err)

		_, err = execute(t, "", "parse", "--schema", path, `{"age": 3`)
		require.ErrorContains(t, err, "validation failed")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := execute(t, " ", "parse")
		require.ErrorContains(t, err, "empty input")
	})
}

func TestStreamCmd(t *testing.T) {
	t.Run("chunks", func(t *testing.T) {
		out, err := execute(t, "[1, 2, 3]", "stream", "--chunk", "3")
		require.NoError(t, err)
		require.Equal(t, "[1,null]\n[1, 2,null]\n[1, 2, 3]\n", out)
	})

	t.Run("invalid", func(t *testing.T) {
		out, err := execute(t, "[1]]", "stream", "--chunk", "3")
		require.ErrorIs(t, err, autocomplete.ErrInvalidPrefix)
		require.Equal(t, "[1]\n", out)
	})

	t.Run("bad chunk size", func(t *testing.T) {
		_, err := execute(t, "[1]", "stream", "--chunk", "0")
		require.Error(t, err)
	})
}

func TestEnvCmd(t *testing.T) {
	out, err := execute(t, "", "env", "--max-depth", "7")
	require.NoError(t, err)
	require.Contains(t, out, "JSONCOMPLETE_MAX_DEPTH=7")
	require.Contains(t, out, "JSONCOMPLETE_STRICT=false")
	require.Equal(t, 3, strings.Count(out, "\n"))
}
