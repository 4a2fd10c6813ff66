package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesForProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		expected []Type
	}{
		{name: "aws has two product variants", provider: ProviderAWS, expected: []Type{TypeECR, TypeECRPublic}},
		{name: "gcp has two product variants", provider: ProviderGCP, expected: []Type{TypeArtifactRegistry, TypeGCR}},
		{name: "azure", provider: ProviderAzure, expected: []Type{TypeACR}},
		{name: "github", provider: ProviderGitHub, expected: []Type{TypeGHCR}},
		{name: "dockerhub", provider: ProviderDockerHub, expected: []Type{TypeDockerHub}},
		{name: "generic", provider: ProviderGeneric, expected: []Type{TypeGeneric}},
		{name: "unknown provider has no types", provider: Provider("quay"), expected: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TypesForProvider(tc.provider))
		})
	}
}

func TestTypesForProviderReturnsCopy(t *testing.T) {
	types := TypesForProvider(ProviderAWS)
	types[0] = TypeGeneric
	assert.Equal(t, []Type{TypeECR, TypeECRPublic}, TypesForProvider(ProviderAWS))
}

func TestValidPair(t *testing.T) {
	assert.True(t, ValidPair(ProviderAWS, TypeECR))
	assert.True(t, ValidPair(ProviderAWS, TypeECRPublic))
	assert.True(t, ValidPair(ProviderGeneric, TypeGeneric))
	assert.False(t, ValidPair(ProviderAWS, TypeGCR))
	assert.False(t, ValidPair(ProviderDockerHub, TypeGeneric))
	assert.False(t, ValidPair(Provider(""), Type("")))
}

func TestEveryTypeBelongsToExactlyOneProvider(t *testing.T) {
	owners := make(map[Type][]Provider)
	for _, p := range Providers() {
		for _, typ := range TypesForProvider(p) {
			owners[typ] = append(owners[typ], p)
		}
	}
	assert.Len(t, owners, 8, "expected the eight enumerated registry types")
	for typ, providers := range owners {
		assert.Len(t, providers, 1, "type %q claimed by more than one provider", typ)
	}
}

func TestTypeDescriptionsCoverAllTypes(t *testing.T) {
	for _, p := range Providers() {
		for _, typ := range TypesForProvider(p) {
			assert.NotEmpty(t, TypeDescriptions[typ], "missing description for %q", typ)
		}
	}
}
