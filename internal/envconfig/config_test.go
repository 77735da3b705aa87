package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		want Config
	}{
		"unset": {want: Config{}},
		"set": {
			env:  map[string]string{envStrict: "1", envMaxDepth: "64", envDebug: "true"},
			want: Config{Strict: true, MaxDepth: 64, Debug: true},
		},
		"quoted": {
			env:  map[string]string{envStrict: `"true"`, envMaxDepth: " '8' "},
			want: Config{Strict: true, MaxDepth: 8},
		},
		"malformed": {
			env:  map[string]string{envStrict: "sometimes", envMaxDepth: "deep"},
			want: Config{},
		},
	}

	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(envStrict, "")
			t.Setenv(envMaxDepth, "")
			t.Setenv(envDebug, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.want, Load())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("loads without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte(envMaxDepth+"=12\n"+envStrict+"=true\n"), 0o600))

		t.Setenv(envStrict, "false")
		t.Setenv(envMaxDepth, "")
		require.NoError(t, os.Unsetenv(envMaxDepth))

		require.NoError(t, LoadDotEnv(path))
		c := Load()
		require.Equal(t, 12, c.MaxDepth)
		require.False(t, c.Strict)
	})
}

func TestAsMap(t *testing.T) {
	m := Config{MaxDepth: 3}.AsMap()
	require.Len(t, m, 3)
	require.Equal(t, 3, m[envMaxDepth].Value)
}
