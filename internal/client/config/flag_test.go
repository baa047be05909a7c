package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "https://api.example:9000", "-u", "https://login.example:9000", "-d", "/tmp/b3d", "-i", "10"}, expectPanic: false,
			expected: &Config{APIBaseURL: "https://api.example:9000", AuthBaseURL: "https://login.example:9000", DataDir: "/tmp/b3d", RefreshInterval: 10 * time.Second}},
		{name: "Test2 incorrect refresh interval", args: []string{"cmd", "-a", "https://api.example:9000", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_IntervalUntouchedWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-a", "https://api.example:9000"}

	config := &Config{RefreshInterval: 1500 * time.Millisecond}
	parseFlags(config)

	assert.Equal(t, "https://api.example:9000", config.APIBaseURL)
	assert.Equal(t, 1500*time.Millisecond, config.RefreshInterval,
		"fractional interval must survive when -i is absent")
}

func TestParseFlags_IntervalOverriddenWhenSet(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-i", "10"}

	config := &Config{RefreshInterval: 1500 * time.Millisecond}
	parseFlags(config)

	assert.Equal(t, 10*time.Second, config.RefreshInterval)
}
