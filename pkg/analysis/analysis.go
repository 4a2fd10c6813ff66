// Package analysis walks Helm chart values looking for container image
// references. It recognizes the two shapes charts conventionally use: a
// single string under an image-suggesting key, and the
// {registry, repository, tag} map convention. The found patterns feed the
// classifier; no rewriting or validation happens here.
package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// PatternType distinguishes how an image reference was spelled in the values.
type PatternType string

const (
	// PatternTypeString is a single string value, e.g. image: "nginx:1.25".
	PatternTypeString PatternType = "string"
	// PatternTypeMap is the registry/repository/tag map convention.
	PatternTypeMap PatternType = "map"
)

// ImagePattern is one image reference found in a values tree.
type ImagePattern struct {
	// Path is the dotted values path where the pattern was found, with
	// [i] suffixes for array elements.
	Path string `json:"path" yaml:"path"`
	// Type records which shape the chart used.
	Type PatternType `json:"type" yaml:"type"`
	// Value is the assembled image reference, possibly still carrying a
	// tag suffix.
	Value string `json:"value" yaml:"value"`
}

// FindImagePatterns walks a coalesced values tree and returns every image
// pattern it recognizes, sorted by path for deterministic output.
func FindImagePatterns(values map[string]interface{}) []ImagePattern {
	w := &walker{}
	w.walkMap(values, "")
	sort.Slice(w.patterns, func(i, j int) bool {
		return w.patterns[i].Path < w.patterns[j].Path
	})
	return w.patterns
}

type walker struct {
	patterns []ImagePattern
}

func (w *walker) walkMap(values map[string]interface{}, prefix string) {
	for key, value := range values {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		w.walkValue(key, value, path)
	}
}

func (w *walker) walkValue(key string, value interface{}, path string) {
	switch v := value.(type) {
	case map[string]interface{}:
		if isImageMap(v) {
			if ref, ok := assembleMapReference(v); ok {
				w.patterns = append(w.patterns, ImagePattern{Path: path, Type: PatternTypeMap, Value: ref})
			}
			// An image map is a leaf; its keys never nest further images.
			return
		}
		w.walkMap(v, path)
	case string:
		if isImageString(key, v) {
			w.patterns = append(w.patterns, ImagePattern{Path: path, Type: PatternTypeString, Value: v})
		}
	case []interface{}:
		for i, item := range v {
			w.walkValue(key, item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

// isImageMap reports whether a map follows the image map convention: a
// repository key plus at least one of registry or tag.
func isImageMap(m map[string]interface{}) bool {
	if _, ok := m["repository"]; !ok {
		return false
	}
	_, hasRegistry := m["registry"]
	_, hasTag := m["tag"]
	return hasRegistry || hasTag
}

// assembleMapReference joins an image map back into a single reference
// string. The registry is prepended only when the chart sets one; defaulting
// absent registries is the classifier's job, not the walker's.
func assembleMapReference(m map[string]interface{}) (string, bool) {
	repository, ok := m["repository"].(string)
	if !ok || repository == "" {
		return "", false
	}

	ref := repository
	if registry, ok := m["registry"].(string); ok && registry != "" {
		ref = strings.TrimSuffix(registry, "/") + "/" + repository
	}

	switch tag := m["tag"].(type) {
	case string:
		if tag != "" {
			ref += ":" + tag
		}
	case int:
		ref += fmt.Sprintf(":%d", tag)
	case float64:
		ref += fmt.Sprintf(":%.0f", tag)
	}
	return ref, true
}

// isImageString reports whether a string value under an image-suggesting key
// looks like an image reference: a multi-segment path, or a name carrying a
// tag or digest.
func isImageString(key, value string) bool {
	if !strings.Contains(strings.ToLower(key), "image") || value == "" {
		return false
	}
	if strings.Contains(value, "{{") {
		// Unrendered template expressions are not classifiable references.
		return false
	}
	if strings.Contains(value, "/") {
		return true
	}
	return strings.ContainsAny(value, ":@")
}
