package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "eventfeed server")
	assert.Contains(t, output, "Version:")
	assert.Contains(t, output, "Git commit:")
	assert.Contains(t, output, "Go version:")
}

func TestRootRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["serve"])
	assert.True(t, names["version"])
	assert.True(t, names["healthcheck"])
}
