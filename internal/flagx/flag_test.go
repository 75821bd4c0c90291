package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-db", "x.db"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.json", "-db", "x.db"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "double dash with separate value",
			args:  []string{"--db", "contacts.db"},
			names: []string{"db"},
			want:  []string{"--db", "contacts.db"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag without value at end is kept",
			args:  []string{"-c"},
			names: []string{"c"},
			want:  []string{"-c"},
		},
		{
			name:  "boolean flag followed by another flag",
			args:  []string{"-tui", "-db", "a.db"},
			names: []string{"tui", "db"},
			want:  []string{"-tui", "-db", "a.db"},
		},
		{
			name:  "value that looks like a flag in equals form",
			args:  []string{"--config=--weird.json"},
			names: []string{"config"},
			want:  []string{"--config=--weird.json"},
		},
		{
			name:  "repeated flag preserved in order",
			args:  []string{"-c", "one.json", "-c", "two.json"},
			names: []string{"c"},
			want:  []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:  "empty args",
			args:  []string{},
			names: []string{"c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigPath())
	})

	t.Run("long --config with equals", func(t *testing.T) {
		os.Args = []string{"testbin", "--config=/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigPath())
	})

	t.Run("other flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-db", "a.db", "-mode", "tui"}
		assert.Empty(t, ConfigPath())
	})

	t.Run("last one wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigPath())
	})
}
