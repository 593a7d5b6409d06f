package severity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRankOf(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"Critical", 0},
		{"High", 1},
		{"Medium", 2},
		{"Low", 3},
		{"Very Low", 4},
		{"Nonexistent", 0},
		{"critical", 0},
		{"very low", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankOf(tt.input).Rank(), "RankOf(%q)", tt.input)
	}
}

func TestRankOf_UnknownMatchesCritical(t *testing.T) {
	assert.Equal(t, RankOf("Critical"), RankOf("Nonexistent"))
}

func TestLevelString_RoundTrip(t *testing.T) {
	for _, l := range Levels() {
		assert.Equal(t, l, RankOf(l.String()))
	}
	assert.Equal(t, "Critical", Level(42).String())
}

func TestAtLeastAsLoud(t *testing.T) {
	for _, a := range Levels() {
		for _, b := range Levels() {
			assert.Equal(t, a.Rank() <= b.Rank(), a.AtLeastAsLoud(b), "%s vs %s", a, b)
		}
	}
	assert.True(t, Critical.AtLeastAsLoud(VeryLow))
	assert.False(t, VeryLow.AtLeastAsLoud(Critical))
}

func TestLevels_OrderedAndContiguous(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 5)
	for i, l := range levels {
		assert.Equal(t, i, l.Rank())
	}
}

func TestLevel_YAML(t *testing.T) {
	var cfg struct {
		Threshold Level `yaml:"threshold"`
		Fallback  Level `yaml:"fallback"`
	}
	err := yaml.Unmarshal([]byte("threshold: Very Low\nfallback: Loud\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, VeryLow, cfg.Threshold)
	assert.Equal(t, Critical, cfg.Fallback)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "threshold: Very Low")
}

func TestLevel_FlagValue(t *testing.T) {
	var l Level
	require.NoError(t, l.Set("Medium"))
	assert.Equal(t, Medium, l)
	require.NoError(t, l.Set("bogus"))
	assert.Equal(t, Critical, l)
	assert.Equal(t, "level", l.Type())
}

func TestLevel_JSON(t *testing.T) {
	out, err := json.Marshal(map[string]Level{"level": VeryLow})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"Very Low"}`, string(out))

	var back map[string]Level
	require.NoError(t, json.Unmarshal([]byte(`{"a":"Low","b":"nope"}`), &back))
	assert.Equal(t, Low, back["a"])
	assert.Equal(t, Critical, back["b"])
}

func TestNormalize(t *testing.T) {
	for _, l := range Levels() {
		assert.Equal(t, l, l.Normalize())
	}
	assert.Equal(t, Critical, Level(-1).Normalize())
	assert.Equal(t, Critical, Level(5).Normalize())
}
