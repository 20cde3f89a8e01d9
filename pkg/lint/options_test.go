package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIntOption(t *testing.T) {
	opts := map[string]any{"int": 3, "float": 4.0, "int64": int64(5), "str": "x"}

	assert.Equal(t, 3, GetIntOption(opts, "int", 0))
	assert.Equal(t, 4, GetIntOption(opts, "float", 0))
	assert.Equal(t, 5, GetIntOption(opts, "int64", 0))
	assert.Equal(t, 9, GetIntOption(opts, "str", 9))
	assert.Equal(t, 9, GetIntOption(nil, "int", 9))
}

func TestGetStringSliceOption(t *testing.T) {
	opts := map[string]any{"a": []any{"x", 1, "y"}, "b": []string{"z"}}

	assert.Equal(t, []string{"x", "y"}, GetStringSliceOption(opts, "a", nil))
	assert.Equal(t, []string{"z"}, GetStringSliceOption(opts, "b", nil))
	assert.Equal(t, []string{"d"}, GetStringSliceOption(opts, "c", []string{"d"}))
}

func TestDecodeOptions(t *testing.T) {
	type complexity struct {
		MaxDepth int `mapstructure:"max_depth"`
		MaxArgs  int `mapstructure:"max_args"`
	}

	cfg := complexity{MaxDepth: 4, MaxArgs: 6}
	require.NoError(t, DecodeOptions(map[string]any{"max_depth": "7"}, &cfg))
	assert.Equal(t, complexity{MaxDepth: 7, MaxArgs: 6}, cfg)

	require.NoError(t, DecodeOptions(nil, &cfg))
	assert.Equal(t, 7, cfg.MaxDepth)

	err := DecodeOptions(map[string]any{"max_width": 1}, &cfg)
	assert.Error(t, err)
}
