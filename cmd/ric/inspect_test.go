package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
)

// writeInspectChart lays down a chart on the real filesystem; the Helm
// loader reads from disk directly.
func writeInspectChart(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	chartYAML := `apiVersion: v2
name: inspect-test
version: 1.2.3
`
	valuesYAML := `image:
  registry: 123456789012.dkr.ecr.us-west-2.amazonaws.com
  repository: my-app
  tag: "1.0"
sidecar:
  image: ghcr.io/myorg/sidecar:0.5
replicas: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Chart.yaml"), []byte(chartYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "values.yaml"), []byte(valuesYAML), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o750))
	return dir
}

func TestInspectCommand(t *testing.T) {
	chartDir := writeInspectChart(t)

	output, err := executeCommand(newInspectCmd(), "--chart-path", chartDir, "--output-format", "json")
	require.NoError(t, err)

	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(output), &report))

	assert.Equal(t, "inspect-test", report.Chart.Name)
	assert.Equal(t, "1.2.3", report.Chart.Version)
	require.Len(t, report.Images, 2)

	byPath := map[string]classifiedImage{}
	for _, img := range report.Images {
		byPath[img.Path] = img
	}

	ecr := byPath["image"]
	assert.Equal(t, "123456789012.dkr.ecr.us-west-2.amazonaws.com/my-app:1.0", ecr.Reference)
	assert.Equal(t, "aws", ecr.Parsed.Provider.String())
	assert.Equal(t, "us-west-2", ecr.Parsed.Region)
	assert.Equal(t, "my-app", ecr.Parsed.Repository, "tag stripped before classification")

	ghcr := byPath["sidecar.image"]
	assert.Equal(t, "github", ghcr.Parsed.Provider.String())
	assert.Equal(t, "myorg", ghcr.Parsed.Account)
	assert.Equal(t, "sidecar", ghcr.Parsed.Repository)
}

func TestInspectCommandSetOverride(t *testing.T) {
	chartDir := writeInspectChart(t)

	output, err := executeCommand(newInspectCmd(),
		"--chart-path", chartDir,
		"--set", "image.registry=eu.gcr.io/other-project",
		"--output-format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, output, "provider: gcp")
	assert.Contains(t, output, "region: eu")
}

func TestInspectCommandValuesFile(t *testing.T) {
	chartDir := writeInspectChart(t)
	overrideFile := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(overrideFile, []byte("sidecar:\n  image: quay.io/org/other:1\n"), 0o600))

	output, err := executeCommand(newInspectCmd(), "--chart-path", chartDir, "-f", overrideFile)
	require.NoError(t, err)
	assert.Contains(t, output, "registry: quay.io")
	assert.Contains(t, output, "registry_type: generic")
}

func TestInspectCommandMissingChartPath(t *testing.T) {
	_, err := executeCommand(newInspectCmd())
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitMissingRequiredFlag, code)
}

func TestInspectCommandChartNotFound(t *testing.T) {
	_, err := executeCommand(newInspectCmd(), "--chart-path", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitChartNotFound, code)
}

func TestInspectCommandBrokenChart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Chart.yaml"), []byte("not: [valid"), 0o600))

	_, err := executeCommand(newInspectCmd(), "--chart-path", dir)
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitChartProcessingFailed, code)
}
