package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.yaml", "-a", "http://localhost:8000"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.yaml"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "x"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at the end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-d", "mpdash.db"},
			allowed: []string{"-c", "-d"},
			want:    []string{"-c", "-d", "mpdash.db"},
		},
		{
			name:    "equals value that looks like a flag",
			args:    []string{"-config=--weird.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--weird.json"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestHasBoolFlag(t *testing.T) {
	assert.True(t, HasBoolFlag([]string{"-a", "x", "-version"}, "-version"))
	assert.True(t, HasBoolFlag([]string{"--version=true"}, "-version", "--version"))
	assert.False(t, HasBoolFlag([]string{"-version=false"}, "-version"))
	assert.False(t, HasBoolFlag([]string{"-a", "-version-x"}, "-version"))
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bin", "-a", "http://x", "-c", "cfg.yaml"}
	assert.Equal(t, "cfg.yaml", ConfigFileFlag())

	os.Args = []string{"bin", "-config=cfg.json"}
	assert.Equal(t, "cfg.json", ConfigFileFlag())

	os.Args = []string{"bin", "-a", "http://x"}
	assert.Equal(t, "", ConfigFileFlag())
}
