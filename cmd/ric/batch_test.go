package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
)

func TestBatchCommandYAMLReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	defer SetFs(fs)()

	input := `images:
  - 123456789012.dkr.ecr.us-west-2.amazonaws.com/my-app:1.0
  - gcr.io/my-project/my-app
  - nginx
`
	require.NoError(t, afero.WriteFile(fs, "images.yaml", []byte(input), 0o600))

	output, err := executeCommand(newBatchCmd(), "--input-file", "images.yaml")
	require.NoError(t, err)

	assert.Contains(t, output, "image: 123456789012.dkr.ecr.us-west-2.amazonaws.com/my-app:1.0")
	assert.Contains(t, output, "provider: aws")
	assert.Contains(t, output, "registry_type: ecr")
	assert.Contains(t, output, "provider: gcp")
	assert.Contains(t, output, "account: library")
}

func TestBatchCommandJSONReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	defer SetFs(fs)()
	require.NoError(t, afero.WriteFile(fs, "images.yaml", []byte("images:\n  - myregistry.azurecr.io/my-app:2\n"), 0o600))

	output, err := executeCommand(newBatchCmd(), "--input-file", "images.yaml", "--output-format", "json")
	require.NoError(t, err)

	var report struct {
		Images []map[string]interface{} `json:"images"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	require.Len(t, report.Images, 1)
	entry := report.Images[0]
	assert.Equal(t, "myregistry.azurecr.io/my-app:2", entry["image"])
	assert.Equal(t, "azure", entry["provider"])
	assert.Equal(t, "acr", entry["registry_type"])
	assert.Equal(t, "", entry["region"], "absent region serializes as empty string")
}

func TestBatchCommandStdin(t *testing.T) {
	cmd := newBatchCmd()
	cmd.SetIn(strings.NewReader("nginx\n\n# a comment\nmyuser/my-app:v2\n"))
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--input-file", "-"})

	require.NoError(t, cmd.Execute())
	output := buf.String()
	assert.Contains(t, output, "image: nginx")
	assert.Contains(t, output, "image: myuser/my-app:v2")
	assert.NotContains(t, output, "comment")
}

func TestBatchCommandPreservesInputOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	defer SetFs(fs)()
	require.NoError(t, afero.WriteFile(fs, "images.yaml", []byte("images:\n  - zzz\n  - aaa\n"), 0o600))

	output, err := executeCommand(newBatchCmd(), "--input-file", "images.yaml")
	require.NoError(t, err)
	assert.Less(t, strings.Index(output, "image: zzz"), strings.Index(output, "image: aaa"))
}

func TestBatchCommandMissingInputFlag(t *testing.T) {
	_, err := executeCommand(newBatchCmd())
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitMissingRequiredFlag, code)
}

func TestBatchCommandInputFileNotFound(t *testing.T) {
	defer SetFs(afero.NewMemMapFs())()

	_, err := executeCommand(newBatchCmd(), "--input-file", "no-such-file.yaml")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitChartNotFound, code)
}

func TestBatchCommandEmptyImagesList(t *testing.T) {
	fs := afero.NewMemMapFs()
	defer SetFs(fs)()
	require.NoError(t, afero.WriteFile(fs, "images.yaml", []byte("images: []\n"), 0o600))

	_, err := executeCommand(newBatchCmd(), "--input-file", "images.yaml")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitInputConfigurationError, code)
}

func TestBatchCommandUnparsableInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	defer SetFs(fs)()
	require.NoError(t, afero.WriteFile(fs, "images.yaml", []byte("images: {not a list\n"), 0o600))

	_, err := executeCommand(newBatchCmd(), "--input-file", "images.yaml")
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok)
	assert.Equal(t, exitcodes.ExitInputConfigurationError, code)
}
