package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/ric/pkg/image"
	"github.com/lucas-albers-lz4/ric/pkg/registry"
)

func TestRenderEnvFieldOrder(t *testing.T) {
	parsed := image.ParsedImage{
		Provider:     registry.ProviderAWS,
		Account:      "123456789012",
		Region:       "us-west-2",
		Registry:     "123456789012.dkr.ecr.us-west-2.amazonaws.com",
		Repository:   "my-app",
		RegistryType: registry.TypeECR,
	}

	lines := strings.Split(strings.TrimSuffix(renderEnv(parsed, "IMAGE"), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "IMAGE_PROVIDER=aws", lines[0])
	assert.Equal(t, "IMAGE_ACCOUNT=123456789012", lines[1])
	assert.Equal(t, "IMAGE_REGION=us-west-2", lines[2])
	assert.Equal(t, "IMAGE_REGISTRY=123456789012.dkr.ecr.us-west-2.amazonaws.com", lines[3])
	assert.Equal(t, "IMAGE_REPOSITORY=my-app", lines[4])
	assert.Equal(t, "IMAGE_REGISTRY_TYPE=ecr", lines[5])
}

func TestRenderEnvLowercasePrefixUppercased(t *testing.T) {
	parsed := image.Classify("nginx")
	out := renderEnv(parsed, "my_img")
	assert.Contains(t, out, "MY_IMG_PROVIDER=dockerhub\n")
}

func TestRenderParsedUnknownFormat(t *testing.T) {
	_, err := renderParsed(image.ParsedImage{}, "toml", "IMAGE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRenderParsedYAMLKeys(t *testing.T) {
	data, err := renderParsed(image.Classify("myuser/my-app"), formatYAML, "IMAGE")
	require.NoError(t, err)
	out := string(data)
	for _, key := range []string{"provider:", "account:", "region:", "registry:", "repository:", "registry_type:"} {
		assert.Contains(t, out, key)
	}
}
