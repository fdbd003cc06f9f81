package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears values and Changed marks left over from a previous Execute.
func resetFlags() {
	listCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "top_rated",
			args:     []string{"--top-rated"},
			contains: []string{"Showing 2 of 6 restaurants", "Pizza Hut", "LunchBox"},
			excludes: []string{"KFC"},
		},
		{
			name:     "name",
			args:     []string{"--name", "pizza"},
			contains: []string{`matching "pizza"`, "Domino's Pizza", "Pizza Hut"},
			excludes: []string{"KFC"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			resetFlags()

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append([]string{"list", "--config", "", "--per-row", "2",
				"--fixture", "../../testdata/restaurants.json"}, testCase.args...))

			require.NoError(t, rootCmd.Execute())
			for _, s := range testCase.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range testCase.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestListCommand_RejectsCombinedFilters(t *testing.T) {
	resetFlags()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"list", "--config", "", "--fixture", "../../testdata/restaurants.json",
		"--top-rated", "--name", "pizza"})

	assert.Error(t, rootCmd.Execute())
}
