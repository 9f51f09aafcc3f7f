package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	assert := assert.New(t)
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal("breedersdb", cmd.Use)
	assert.NotNil(cmd.PersistentPreRunE)
	assert.NotNil(cmd.RunE)
	assert.True(cmd.SilenceErrors)
	assert.True(cmd.SilenceUsage)

	names := make([]string, 0, len(cmd.Commands()))
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	for _, v := range []string{
		"create", "migrate", "refresh", "rebuild-cache", "label-id", "serve",
	} {
		assert.Contains(names, v)
	}
}

func TestRootVersion(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"
		cmd.PersistentPreRunE = nil

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		err := cmd.Execute()
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "v1.2.3", flag)
		assert.Contains(t, out, "abc123", flag)
		assert.NotContains(t, out, "breedersdb version:", flag)
	}
}

func TestRootHelp(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	help := buf.String()
	assert.Contains(t, help, "BreedersDB")
	assert.Contains(t, help, "BREEDERSDB_DATABASE_DRIVER")
	assert.Contains(t, help, "rebuild-cache")
}

func TestRootIndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()
	assert.NotSame(t, cmd1, cmd2)
}

func TestRootInvalidCommand(t *testing.T) {
	cmd := getRootCmd()
	cmd.PersistentPreRunE = nil

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"))
}

func TestBootstrapHome(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("BREEDERSDB_DATABASE_DRIVER", "sqlite")
	t.Setenv("BREEDERSDB_SERVER_ADDRESS", ":9090")
	t.Setenv("BREEDERSDB_LOG_DESTINATION", "stderr")

	home := t.TempDir()
	err := bootstrapHome(home)
	require.Nil(t, err)

	assert.Equal(home, cfg.HomeDir)
	assert.Equal("sqlite", cfg.Database.Driver)
	assert.Equal(":9090", cfg.Server.Address)
	assert.Equal("breedersdb", cfg.Database.Database)
}
