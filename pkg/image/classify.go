package image

import (
	"regexp"
	"strings"

	log "github.com/lucas-albers-lz4/ric/pkg/log"
	"github.com/lucas-albers-lz4/ric/pkg/registry"
)

// matcher pairs a predicate recognizing one registry family's URL shape with
// the extractor producing the output fields for it. Matchers are built once
// at package init and never mutated, so Classify is safe for concurrent use.
type matcher struct {
	name    string
	match   func(ref string) bool
	extract func(ref string) ParsedImage
}

// Compiled host-shape patterns for the regex-driven matchers. Submatch
// layout is documented per pattern; all are anchored on both ends.
var (
	// <12-digit-account>.dkr.ecr.<region>.amazonaws.com/<repo...>
	ecrPattern = regexp.MustCompile(`^(\d{12})\.dkr\.ecr\.([a-z0-9-]+)\.amazonaws\.com/(.+)$`)
	// public.ecr.aws/<alias>/<repo...>
	ecrPublicPattern = regexp.MustCompile(`^public\.ecr\.aws/([^/]+)/(.+)$`)
	// <location>-docker.pkg.dev/<project>/<repo-name>/<image...>
	// The location label may itself contain hyphens (us, us-central1).
	artifactRegistryPattern = regexp.MustCompile(`^([a-z0-9-]+)-docker\.pkg\.dev/([^/]+)/([^/]+)/(.+)$`)
	// [<region>.]gcr.io/<project>/<image...> with the optional region a
	// single dotless label. Multi-label prefixes (foo.bar.gcr.io) are not
	// GCR hosts and fall through to the generic matcher.
	gcrPattern = regexp.MustCompile(`^(?:([a-z0-9-]+)\.)?gcr\.io/([^/]+)/(.+)$`)
	// <name>.azurecr.io/<repo...> where <name> contains no dot.
	acrPattern = regexp.MustCompile(`^([^./:]+)\.azurecr\.io/(.+)$`)
	// ghcr.io/<owner>/<repo...>
	ghcrPattern = regexp.MustCompile(`^ghcr\.io/([^/]+)/(.+)$`)
	// docker.io/<user>/<repo...>
	dockerHubPattern = regexp.MustCompile(`^docker\.io/([^/]+)/(.+)$`)
)

// matchers is the ordered matcher chain. Order is authoritative: a reference
// satisfying more than one predicate always resolves via the earliest entry.
// Artifact Registry must precede legacy GCR, and the explicit-host rules must
// precede the generic host rule, which in turn must precede the implicit
// Docker Hub rules.
var matchers = []matcher{
	{name: "aws-ecr", match: regexMatch(ecrPattern), extract: extractECR},
	{name: "aws-ecr-public", match: regexMatch(ecrPublicPattern), extract: extractECRPublic},
	{name: "gcp-artifact-registry", match: regexMatch(artifactRegistryPattern), extract: extractArtifactRegistry},
	{name: "gcp-gcr", match: regexMatch(gcrPattern), extract: extractGCR},
	{name: "azure-acr", match: regexMatch(acrPattern), extract: extractACR},
	{name: "github-ghcr", match: regexMatch(ghcrPattern), extract: extractGHCR},
	{name: "dockerhub-explicit", match: regexMatch(dockerHubPattern), extract: extractDockerHubExplicit},
	{name: "generic-host", match: matchGenericHost, extract: extractGenericHost},
	{name: "dockerhub-namespaced", match: matchDockerHubNamespaced, extract: extractDockerHubNamespaced},
	{name: "dockerhub-official", match: matchDockerHubOfficial, extract: extractDockerHubOfficial},
}

func regexMatch(re *regexp.Regexp) func(string) bool {
	return re.MatchString
}

// Classify maps an image reference to a structured description of its
// hosting registry. It is total: every string input, including the empty
// string, yields a ParsedImage and no call can fail. The input must not
// carry a :tag or @digest suffix; callers holding a full reference strip it
// first with SplitTagDigest.
func Classify(image string) ParsedImage {
	parsed, name := classify(NormalizeScheme(image))
	log.Debug("classified image reference",
		"matcher", name,
		"provider", parsed.Provider,
		"registry", parsed.Registry,
		"repository", parsed.Repository)
	return parsed
}

// classify runs the matcher chain and reports which matcher won, for
// diagnostics and tests. The input is already scheme-normalized.
func classify(ref string) (ParsedImage, string) {
	for _, m := range matchers {
		if m.match(ref) {
			return m.extract(ref), m.name
		}
	}
	// Only slash-bearing paths whose first segment has no dot or port reach
	// this point (e.g. a/b/c, or a dotted host with nothing after the
	// slash). They describe no recognizable registry: classify as generic
	// with an empty registry and the whole input as the repository.
	return ParsedImage{
		Provider:     registry.ProviderGeneric,
		Repository:   ref,
		RegistryType: registry.TypeGeneric,
	}, "unrecognized"
}

func extractECR(ref string) ParsedImage {
	m := ecrPattern.FindStringSubmatch(ref)
	return ParsedImage{
		Provider:     registry.ProviderAWS,
		Account:      m[1],
		Region:       m[2],
		Registry:     m[1] + ".dkr.ecr." + m[2] + ".amazonaws.com",
		Repository:   m[3],
		RegistryType: registry.TypeECR,
	}
}

func extractECRPublic(ref string) ParsedImage {
	m := ecrPublicPattern.FindStringSubmatch(ref)
	// ECR Public is a single global endpoint aliased to us-east-1; the
	// alias segment is part of the registry identity.
	return ParsedImage{
		Provider:     registry.ProviderAWS,
		Account:      m[1],
		Region:       registry.ECRPublicRegion,
		Registry:     registry.ECRPublicHost + "/" + m[1],
		Repository:   m[2],
		RegistryType: registry.TypeECRPublic,
	}
}

func extractArtifactRegistry(ref string) ParsedImage {
	m := artifactRegistryPattern.FindStringSubmatch(ref)
	// The project and repo-name segments belong to the registry identity;
	// only the trailing image path is the repository.
	return ParsedImage{
		Provider:     registry.ProviderGCP,
		Account:      m[2],
		Region:       m[1],
		Registry:     m[1] + "-docker.pkg.dev/" + m[2] + "/" + m[3],
		Repository:   m[4],
		RegistryType: registry.TypeArtifactRegistry,
	}
}

func extractGCR(ref string) ParsedImage {
	m := gcrPattern.FindStringSubmatch(ref)
	region := m[1]
	host := registry.GCRHost
	if region == "" {
		region = registry.GCRDefaultRegion
	} else {
		host = m[1] + "." + registry.GCRHost
	}
	return ParsedImage{
		Provider:     registry.ProviderGCP,
		Account:      m[2],
		Region:       region,
		Registry:     host + "/" + m[2],
		Repository:   m[3],
		RegistryType: registry.TypeGCR,
	}
}

func extractACR(ref string) ParsedImage {
	m := acrPattern.FindStringSubmatch(ref)
	// Azure does not encode the region in the registry host.
	return ParsedImage{
		Provider:     registry.ProviderAzure,
		Account:      m[1],
		Registry:     m[1] + registry.ACRHostSuffix,
		Repository:   m[2],
		RegistryType: registry.TypeACR,
	}
}

func extractGHCR(ref string) ParsedImage {
	m := ghcrPattern.FindStringSubmatch(ref)
	return ParsedImage{
		Provider:     registry.ProviderGitHub,
		Account:      m[1],
		Registry:     registry.GHCRHost,
		Repository:   m[2],
		RegistryType: registry.TypeGHCR,
	}
}

func extractDockerHubExplicit(ref string) ParsedImage {
	m := dockerHubPattern.FindStringSubmatch(ref)
	return ParsedImage{
		Provider:     registry.ProviderDockerHub,
		Account:      m[1],
		Registry:     registry.DockerHubRegistry,
		Repository:   m[2],
		RegistryType: registry.TypeDockerHub,
	}
}

// matchGenericHost accepts <host>/<repo...> where the host carries a dot or
// a :port suffix. That distinguishes a real domain from a plain Docker Hub
// namespace, which never contains either.
func matchGenericHost(ref string) bool {
	host, rest, found := strings.Cut(ref, "/")
	if !found || rest == "" {
		return false
	}
	return strings.ContainsAny(host, ".:")
}

func extractGenericHost(ref string) ParsedImage {
	host, rest, _ := strings.Cut(ref, "/")
	parsed := ParsedImage{
		Provider:     registry.ProviderGeneric,
		Registry:     host,
		Repository:   rest,
		RegistryType: registry.TypeGeneric,
	}
	// A nested path means the first segment is an org or project namespace.
	if account, repo, nested := strings.Cut(rest, "/"); nested {
		parsed.Account = account
		parsed.Repository = repo
	}
	return parsed
}

// matchDockerHubNamespaced accepts <namespace>/<repo> with exactly one slash
// and a dotless namespace. Hosts and ports were claimed by earlier rules.
func matchDockerHubNamespaced(ref string) bool {
	namespace, _, found := strings.Cut(ref, "/")
	if !found || strings.Contains(ref[len(namespace)+1:], "/") {
		return false
	}
	return !strings.Contains(namespace, ".")
}

func extractDockerHubNamespaced(ref string) ParsedImage {
	namespace, repo, _ := strings.Cut(ref, "/")
	return ParsedImage{
		Provider:     registry.ProviderDockerHub,
		Account:      namespace,
		Registry:     registry.DockerHubRegistry,
		Repository:   repo,
		RegistryType: registry.TypeDockerHub,
	}
}

// matchDockerHubOfficial accepts any remaining slash-free token, keeping the
// chain total for bare names like nginx and for the empty string.
func matchDockerHubOfficial(ref string) bool {
	return !strings.Contains(ref, "/")
}

func extractDockerHubOfficial(ref string) ParsedImage {
	return ParsedImage{
		Provider:     registry.ProviderDockerHub,
		Account:      registry.OfficialNamespace,
		Registry:     registry.DockerHubRegistry,
		Repository:   ref,
		RegistryType: registry.TypeDockerHub,
	}
}
