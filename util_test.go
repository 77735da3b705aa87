package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recipe struct {
	Name        string   `json:"name"`
	Servings    int      `json:"servings"`
	Ingredients []string `json:"ingredients"`
	Vegan       bool     `json:"vegan"`
}

func TestDecode(t *testing.T) {
	obj := map[string]any{
		"name":        "Lasagna",
		"servings":    float64(4),
		"ingredients": []any{"pasta", "tomato"},
	}

	got, err := Decode[recipe](obj)
	require.NoError(t, err)
	require.Equal(t, recipe{Name: "Lasagna", Servings: 4, Ingredients: []string{"pasta", "tomato"}}, got)

	_, err = Decode[recipe](map[string]any{"name": []any{1}})
	require.Error(t, err)
}

func TestParsePartial(t *testing.T) {
	t.Run("partial struct", func(t *testing.T) {
		got, state, err := ParsePartial[recipe](`{"name": "Lasa`)
		require.NoError(t, err)
		require.Equal(t, ParseStateCompleted, state)
		require.Equal(t, recipe{Name: "Lasa"}, got)
	})

	t.Run("partial list", func(t *testing.T) {
		got, _, err := ParsePartial[recipe](`{"name": "Lasagna", "ingredients": ["pasta", "tom`)
		require.NoError(t, err)
		require.Equal(t, []string{"pasta", "tom"}, got.Ingredients)
	})

	t.Run("null value keeps zero", func(t *testing.T) {
		got, _, err := ParsePartial[recipe](`{"vegan": `)
		require.NoError(t, err)
		require.False(t, got.Vegan)
	})

	t.Run("empty", func(t *testing.T) {
		got, state, err := ParsePartial[recipe]("")
		require.NoError(t, err)
		require.Equal(t, ParseStateUndefined, state)
		require.Equal(t, recipe{}, got)
	})
}
