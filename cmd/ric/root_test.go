package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/ric/pkg/version"
)

func TestRootCommandHelp(t *testing.T) {
	output, err := executeCommand(getRootCmd(), "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "batch")
	assert.Contains(t, output, "inspect")
	assert.Contains(t, output, "Registry Identification and Classification")
}

func TestRootCommandVersion(t *testing.T) {
	output, err := executeCommand(getRootCmd(), "--version")
	require.NoError(t, err)
	assert.Contains(t, output, version.BinaryVersion)
}

func TestRootCommandClassifyEndToEnd(t *testing.T) {
	output, err := executeCommand(getRootCmd(), "classify", "localhost:5000/my-service")
	require.NoError(t, err)
	assert.Contains(t, output, "IMAGE_PROVIDER=generic\n")
	assert.Contains(t, output, "IMAGE_REGISTRY=localhost:5000\n")
	assert.Contains(t, output, "IMAGE_ACCOUNT=\n")
}

func TestRootCommandUnknownSubcommand(t *testing.T) {
	_, err := executeCommand(getRootCmd(), "no-such-command")
	require.Error(t, err)
}

func TestRicDebugEnv(t *testing.T) {
	t.Setenv("RIC_DEBUG", "")
	assert.False(t, ricDebugEnv())

	t.Setenv("RIC_DEBUG", "1")
	assert.True(t, ricDebugEnv())

	t.Setenv("RIC_DEBUG", "true")
	assert.True(t, ricDebugEnv())

	t.Setenv("RIC_DEBUG", "false")
	assert.False(t, ricDebugEnv())

	t.Setenv("RIC_DEBUG", "not-a-bool")
	assert.False(t, ricDebugEnv())
}
