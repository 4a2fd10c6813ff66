// Package registry defines the closed set of registry families the classifier
// can produce: cloud providers, their registry product types, and the fixed
// invariant tying the two together. The set is static; callers never extend it
// at runtime.
package registry

// Provider identifies the cloud or service hosting a registry.
type Provider string

// Known providers.
const (
	// ProviderAWS covers Amazon ECR and ECR Public.
	ProviderAWS Provider = "aws"
	// ProviderGCP covers Artifact Registry and legacy Container Registry.
	ProviderGCP Provider = "gcp"
	// ProviderAzure covers Azure Container Registry.
	ProviderAzure Provider = "azure"
	// ProviderGitHub covers GitHub Container Registry.
	ProviderGitHub Provider = "github"
	// ProviderDockerHub covers Docker Hub in all its spellings.
	ProviderDockerHub Provider = "dockerhub"
	// ProviderGeneric covers self-hosted and unrecognized registries.
	ProviderGeneric Provider = "generic"
)

// Type is the fine-grained registry product tag distinguishing variants under
// one provider (e.g. ecr vs ecr-public).
type Type string

// Known registry types.
const (
	TypeECR              Type = "ecr"
	TypeECRPublic        Type = "ecr-public"
	TypeArtifactRegistry Type = "artifact-registry"
	TypeGCR              Type = "gcr"
	TypeACR              Type = "acr"
	TypeGHCR             Type = "ghcr"
	TypeDockerHub        Type = "dockerhub"
	TypeGeneric          Type = "generic"
)

// Well-known host and namespace constants shared by the matcher rules.
const (
	// DockerHubRegistry is the canonical Docker Hub host.
	DockerHubRegistry = "docker.io"
	// ECRPublicHost is the single global ECR Public endpoint.
	ECRPublicHost = "public.ecr.aws"
	// GHCRHost is the GitHub Container Registry host.
	GHCRHost = "ghcr.io"
	// GCRHost is the legacy Google Container Registry host.
	GCRHost = "gcr.io"
	// ACRHostSuffix is the Azure Container Registry host suffix.
	ACRHostSuffix = ".azurecr.io"
	// OfficialNamespace is Docker Hub's reserved namespace for official images.
	OfficialNamespace = "library"

	// ECRPublicRegion is the region aliased to the global ECR Public endpoint.
	ECRPublicRegion = "us-east-1"
	// GCRDefaultRegion is the region implied by an unprefixed gcr.io host.
	GCRDefaultRegion = "us"
)

// typesForProvider is the fixed provider to registry-type mapping. Exactly one
// provider and one type are assigned per classification; this table is the
// authority on which pairs are legal.
var typesForProvider = map[Provider][]Type{
	ProviderAWS:       {TypeECR, TypeECRPublic},
	ProviderGCP:       {TypeArtifactRegistry, TypeGCR},
	ProviderAzure:     {TypeACR},
	ProviderGitHub:    {TypeGHCR},
	ProviderDockerHub: {TypeDockerHub},
	ProviderGeneric:   {TypeGeneric},
}

// TypeDescriptions maps registry types to their human-readable descriptions.
var TypeDescriptions = map[Type]string{
	TypeECR:              "Amazon Elastic Container Registry",
	TypeECRPublic:        "Amazon Elastic Container Registry Public",
	TypeArtifactRegistry: "Google Artifact Registry",
	TypeGCR:              "Google Container Registry (legacy)",
	TypeACR:              "Azure Container Registry",
	TypeGHCR:             "GitHub Container Registry",
	TypeDockerHub:        "Docker Hub",
	TypeGeneric:          "Generic container registry",
}

// String returns the string value of the provider.
func (p Provider) String() string {
	return string(p)
}

// String returns the string value of the registry type.
func (t Type) String() string {
	return string(t)
}

// TypesForProvider returns the registry types a provider may produce. The
// returned slice is a copy; mutating it does not affect the mapping.
func TypesForProvider(p Provider) []Type {
	types, ok := typesForProvider[p]
	if !ok {
		return nil
	}
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

// ValidPair reports whether the provider/type combination is one the
// classifier is allowed to produce.
func ValidPair(p Provider, t Type) bool {
	for _, allowed := range typesForProvider[p] {
		if allowed == t {
			return true
		}
	}
	return false
}

// Providers returns all known providers in a stable order.
func Providers() []Provider {
	return []Provider{
		ProviderAWS,
		ProviderGCP,
		ProviderAzure,
		ProviderGitHub,
		ProviderDockerHub,
		ProviderGeneric,
	}
}
