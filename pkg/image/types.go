package image

import (
	"github.com/lucas-albers-lz4/ric/pkg/registry"
)

// ParsedImage is the structured description of where an image reference is
// hosted. It is constructed once per classification and never mutated; all
// fields are plain strings and absence is always the empty string, matching
// the environment-variable contract where every field must serialize to a
// (possibly empty) value.
type ParsedImage struct {
	// Provider is the cloud or service hosting the registry.
	Provider registry.Provider `json:"provider" yaml:"provider"`
	// Account is the provider-specific tenant identifier: AWS account ID,
	// GCP project, Azure registry name, org/user namespace. Empty when the
	// input does not encode one.
	Account string `json:"account" yaml:"account"`
	// Region is the cloud region or location. Empty when the registry family
	// has no region concept or the URL does not encode it.
	Region string `json:"region" yaml:"region"`
	// Registry is the canonical registry host, including any path prefix
	// that is part of the registry identity (e.g. the ECR Public alias or
	// an Artifact Registry project/repo prefix).
	Registry string `json:"registry" yaml:"registry"`
	// Repository is the remaining path identifying the image within the
	// registry. It may contain further slashes.
	Repository string `json:"repository" yaml:"repository"`
	// RegistryType is the fine-grained registry product tag.
	RegistryType registry.Type `json:"registry_type" yaml:"registry_type"`
}

// Reference reconstructs the image reference this record describes:
// Registry + "/" + Repository, modulo any stripped scheme prefix. When no
// registry was recognized only the repository is returned.
func (p ParsedImage) Reference() string {
	if p.Registry == "" {
		return p.Repository
	}
	if p.Repository == "" {
		return p.Registry
	}
	return p.Registry + "/" + p.Repository
}

// Validate checks the fixed provider/registry-type invariant. A ParsedImage
// produced by Classify always passes; the check exists for records built or
// decoded elsewhere.
func (p ParsedImage) Validate() error {
	if !registry.ValidPair(p.Provider, p.RegistryType) {
		return ErrProviderTypeMismatch
	}
	return nil
}
