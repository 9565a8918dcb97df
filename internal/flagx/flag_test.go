package flagx

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		allowed   []string
		boolFlags []string
		want      []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-c", "-id", "abc"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:      "bool flag does not swallow next token",
			args:      []string{"-admin", "abc", "-id", "abc123"},
			allowed:   []string{"-id"},
			boolFlags: []string{"-admin"},
			want:      []string{"-admin", "-id", "abc123"},
		},
		{
			name:      "bool flag with explicit value",
			args:      []string{"-admin=false", "-id", "x"},
			allowed:   []string{"-id"},
			boolFlags: []string{"-admin"},
			want:      []string{"-admin=false", "-id", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed, tt.boolFlags...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "a.json", JsonConfigFlags([]string{"-id", "x", "-c", "a.json"}))
	assert.Equal(t, "b.json", JsonConfigFlags([]string{"-config=b.json"}))
	assert.Equal(t, "", JsonConfigFlags([]string{"-id", "x"}))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"", "1", "true", "TRUE", "yes", "on", " y "} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "No", "off"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}

func TestBoolValue_WithFlagSet(t *testing.T) {
	var admin bool
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	fs.Var(BoolValue{Target: &admin}, "admin", "admin mode")

	require.NoError(t, fs.Parse([]string{"-admin"}))
	assert.True(t, admin)

	require.NoError(t, fs.Parse([]string{"-admin=no"}))
	assert.False(t, admin)

	assert.Error(t, fs.Parse([]string{"-admin=perhaps"}))
}
