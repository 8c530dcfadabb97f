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

// Package permissions implements the hierarchical, wildcard-capable
// permission index consulted by the authorization pipeline: slash-delimited
// paths mapping to sets of action verbs, with deny entries vetoing allows.
package permissions

import "slices"

// Wildcard is the path segment and action verb matching everything.
const Wildcard = "*"

// Permission grants or denies a set of action verbs on one path. An action
// prefixed with "!" is an explicit deny and vetoes any matching allow; "!*"
// denies everything on the path.
type Permission struct {
	Actions     []string `json:"actions"`
	Description string   `json:"description,omitempty"`
	// Remove deletes the path from the permission set it is applied to.
	Remove bool `json:"remove,omitempty"`
}

// Allows reports whether the permission's actions include action or the
// wildcard. Deny entries are ignored here; the tree applies them.
func (p Permission) Allows(action string) bool {
	return slices.Contains(p.Actions, action) || slices.Contains(p.Actions, Wildcard)
}

// Denies reports whether the permission explicitly denies action.
func (p Permission) Denies(action string) bool {
	return slices.Contains(p.Actions, "!"+action) || slices.Contains(p.Actions, "!"+Wildcard)
}

// mentions reports whether the permission is relevant to action in any
// form: allow, deny, or wildcard.
func (p Permission) mentions(action string) bool {
	return p.Allows(action) || p.Denies(action)
}

// unionActions merges two action lists preserving order of first
// appearance. Duplicate verbs collapse.
func unionActions(
	a []string,
	b []string,
) []string {
	merged := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, action := range a {
		if !seen[action] {
			seen[action] = true
			merged = append(merged, action)
		}
	}
	for _, action := range b {
		if !seen[action] {
			seen[action] = true
			merged = append(merged, action)
		}
	}
	return merged
}

// CountOccurrences returns how many times ch appears in s.
func CountOccurrences(
	s string,
	ch rune,
) int {
	var count int
	for _, r := range s {
		if r == ch {
			count++
		}
	}
	return count
}
