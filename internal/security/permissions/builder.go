// Copyright (c) 2026 Cordell Calitz

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package permissions

import (
	"log/slog"
	"sort"
)

// Builder composes an identity's effective permission tree from raw
// permission maps. A session's authority is the union of all its grants
// intersected with explicit prohibitions, computed once per identity and
// cached by the caller since group membership rarely changes within a
// session's lifetime.
type Builder struct {
	logger   *slog.Logger
	template Template
}

// NewBuilder creates a permission-set builder using template to expand
// templated raw paths.
func NewBuilder(
	logger *slog.Logger,
	template Template,
) *Builder {
	return &Builder{
		logger:   logger,
		template: template,
	}
}

// Build expands every raw path for identity and assembles the resulting
// tree. A path that fails template expansion is logged at warning level and
// skipped; one malformed entry never invalidates the whole set. Multiple
// raw paths expanding to the same concrete path merge by action-array union
// with denies preserved.
func (b *Builder) Build(
	raw map[string]Permission,
	identity Identity,
) *Tree {
	tree := NewTree()

	// Deterministic insertion order keeps merge results stable.
	rawPaths := make([]string, 0, len(raw))
	for rawPath := range raw {
		rawPaths = append(rawPaths, rawPath)
	}
	sort.Strings(rawPaths)

	for _, rawPath := range rawPaths {
		parsed, err := b.template.ParsePermissionPaths(rawPath, identity)
		if err != nil {
			b.logger.Warn("failed creating permission set entry",
				slog.String("path", rawPath),
				slog.String("username", identity.Username),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, path := range parsed {
			tree.Insert(path, raw[rawPath])
		}
	}

	return tree
}

// MergeRaw folds source into dest per path using most-restrictive
// semantics: action arrays union, so denies contributed by either side
// survive. It is used to combine group grants with user-attached
// permissions before building a tree.
func MergeRaw(
	dest map[string]Permission,
	source map[string]Permission,
) {
	for path, perm := range source {
		existing, ok := dest[path]
		if !ok {
			dest[path] = perm
			continue
		}

		existing.Actions = unionActions(existing.Actions, perm.Actions)
		if existing.Description == "" {
			existing.Description = perm.Description
		}
		existing.Remove = existing.Remove || perm.Remove
		dest[path] = existing
	}
}
