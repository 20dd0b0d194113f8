// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package credential

import (
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
)

// Registry maps version tags to algorithms. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	algorithms map[string]Algorithm
	versions   map[string]*semver.Version
}

// NewRegistry builds a Registry from the given map. Version tags must be
// semantic versions with an optional "v" prefix ("v1", "v1.1", "v2").
// The map is copied; later changes to it have no effect.
func NewRegistry(algorithms map[string]Algorithm) (*Registry, error) {
	if len(algorithms) == 0 {
		return nil, oops.Code("CREDENTIAL_REGISTRY_EMPTY").Errorf("at least one algorithm version is required")
	}

	r := &Registry{
		algorithms: make(map[string]Algorithm, len(algorithms)),
		versions:   make(map[string]*semver.Version, len(algorithms)),
	}
	for tag, alg := range algorithms {
		if strings.ContainsAny(tag, "{}") {
			return nil, oops.Code("CREDENTIAL_INVALID_VERSION").With("version", tag).Errorf("version tag cannot contain braces")
		}
		v, err := semver.NewVersion(tag)
		if err != nil {
			return nil, oops.Code("CREDENTIAL_INVALID_VERSION").With("version", tag).Wrap(err)
		}
		if alg == nil {
			return nil, oops.Code("CREDENTIAL_INVALID_VERSION").With("version", tag).Errorf("algorithm is nil")
		}
		r.algorithms[tag] = alg
		r.versions[tag] = v
	}
	return r, nil
}

// Lookup returns the algorithm registered for version.
func (r *Registry) Lookup(version string) (Algorithm, bool) {
	alg, ok := r.algorithms[version]
	return alg, ok
}

// Versions returns all registered tags, oldest first.
func (r *Registry) Versions() []string {
	tags := slices.Collect(maps.Keys(r.algorithms))
	slices.SortFunc(tags, func(a, b string) int {
		return r.versions[a].Compare(r.versions[b])
	})
	return tags
}

// Latest returns the highest registered version tag.
func (r *Registry) Latest() string {
	tags := r.Versions()
	return tags[len(tags)-1]
}

// Older reports whether version a precedes version b. Unknown tags are never
// older.
func (r *Registry) Older(a, b string) bool {
	va, okA := r.versions[a]
	vb, okB := r.versions[b]
	if !okA || !okB {
		return false
	}
	return va.LessThan(vb)
}
