package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"cluster", "profiles", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dv-dashboard", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestClusterCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"input", "format", "output", "limit", "save", "max-iterations", "latin1"} {
		flag := clusterCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "cluster should have --%s flag", flagName)
	}

	format := clusterCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "table", format.DefValue)
}

func TestProfilesCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"run", "country", "format", "output"} {
		flag := profilesCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "profiles should have --%s flag", flagName)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"table", "csv", "json", "yaml"} {
		assert.True(t, validFormat(f), "%s should be valid", f)
	}
	assert.False(t, validFormat("xml"))
	assert.False(t, validFormat(""))
}
