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
	"regexp"
	"sort"
	"strings"
)

// Tree indexes permissions by slash-delimited path. Literal paths are held
// for O(1) exact hits; wildcard paths are compiled once into anchored
// patterns and scanned on search. A built tree is treated as immutable:
// concurrent readers need no locking, and updates replace the whole tree.
type Tree struct {
	exact map[string]Permission
	wild  map[string]wildEntry
}

type wildEntry struct {
	perm Permission
	re   *regexp.Regexp
}

// Entry is one stored path and its permission, as returned by searches that
// report where a match came from.
type Entry struct {
	Path       string     `json:"path"`
	Permission Permission `json:"permission"`
}

// NewTree creates an empty permission tree.
func NewTree() *Tree {
	return &Tree{
		exact: make(map[string]Permission),
		wild:  make(map[string]wildEntry),
	}
}

// Normalize prepares a path for storage: an empty path becomes the
// universal wildcard, and adjacent duplicate wildcard segments collapse to
// one.
func Normalize(path string) string {
	if path == "" {
		return Wildcard
	}
	if !strings.Contains(path, Wildcard) {
		return path
	}

	segments := strings.Split(path, "/")
	kept := segments[:0]
	for _, segment := range segments {
		if segment == Wildcard && len(kept) > 0 && kept[len(kept)-1] == Wildcard {
			continue
		}
		kept = append(kept, segment)
	}

	return strings.Join(kept, "/")
}

// compilePattern converts a wildcard path into an anchored regular
// expression; each wildcard matches zero or more subsequent characters,
// spanning segment boundaries.
func compilePattern(path string) *regexp.Regexp {
	literals := strings.Split(path, Wildcard)
	quoted := make([]string, len(literals))
	for i, literal := range literals {
		quoted[i] = regexp.QuoteMeta(literal)
	}

	return regexp.MustCompile("^" + strings.Join(quoted, ".*") + "$")
}

// Insert stores permission under path. Re-inserting an existing path merges
// by action-array union, so repeated identical inserts are idempotent and a
// deny contributed by either write survives. A permission with Remove set
// deletes the path instead.
func (t *Tree) Insert(
	path string,
	permission Permission,
) {
	path = Normalize(path)

	if permission.Remove {
		delete(t.exact, path)
		delete(t.wild, path)
		return
	}

	if strings.Contains(path, Wildcard) {
		existing, ok := t.wild[path]
		if ok {
			existing.perm.Actions = unionActions(existing.perm.Actions, permission.Actions)
			t.wild[path] = existing
			return
		}
		t.wild[path] = wildEntry{perm: permission, re: compilePattern(path)}
		return
	}

	existing, ok := t.exact[path]
	if ok {
		existing.Actions = unionActions(existing.Actions, permission.Actions)
		t.exact[path] = existing
		return
	}
	t.exact[path] = permission
}

// Search returns every permission matching the concrete path, most specific
// first: the exact entry when present, then wildcard entries ordered by
// ascending wildcard count and descending literal length. No matches means
// the path is unauthorized.
func (t *Tree) Search(path string) []Permission {
	path = Normalize(path)

	var matched []Entry
	if perm, ok := t.exact[path]; ok {
		matched = append(matched, Entry{Path: path, Permission: perm})
	}

	var wildMatched []Entry
	for stored, we := range t.wild {
		if we.re.MatchString(path) {
			wildMatched = append(wildMatched, Entry{Path: stored, Permission: we.perm})
		}
	}
	sortBySpecificity(wildMatched)
	matched = append(matched, wildMatched...)

	permissions := make([]Permission, 0, len(matched))
	for _, e := range matched {
		permissions = append(permissions, e.Permission)
	}

	return permissions
}

// Authorized evaluates action against the permissions matched on path with
// deny-overrides-allow: any matched "!action" or "!*" vetoes the action
// regardless of allows, and no matches at all is a denial.
func (t *Tree) Authorized(
	path string,
	action string,
) bool {
	permissions := t.Search(path)
	if len(permissions) == 0 {
		return false
	}

	var allowed bool
	for _, perm := range permissions {
		if perm.Denies(action) {
			return false
		}
		if perm.Allows(action) {
			allowed = true
		}
	}

	return allowed
}

// WildcardPathSearch returns every stored entry whose path could interact
// with the query path, which may itself contain wildcards, restricted to
// entries that mention the action in allow, deny, or wildcard form. It is
// an introspection aid and touches no caches.
func (t *Tree) WildcardPathSearch(
	path string,
	action string,
) []Entry {
	path = Normalize(path)
	queryRe := compilePattern(path)

	var relevant []Entry
	for stored, perm := range t.exact {
		if !perm.mentions(action) {
			continue
		}
		if stored == path || queryRe.MatchString(stored) {
			relevant = append(relevant, Entry{Path: stored, Permission: perm})
		}
	}
	for stored, we := range t.wild {
		if !we.perm.mentions(action) {
			continue
		}
		if queryRe.MatchString(stored) || we.re.MatchString(path) {
			relevant = append(relevant, Entry{Path: stored, Permission: we.perm})
		}
	}

	sortBySpecificity(relevant)

	return relevant
}

// Merge returns a new tree holding the union of both trees. Paths present
// on both sides resolve most-restrictive: action arrays union, so an
// explicit deny from either side survives into the merged entry.
func (t *Tree) Merge(other *Tree) *Tree {
	merged := NewTree()
	for _, entry := range t.Entries() {
		merged.Insert(entry.Path, entry.Permission)
	}
	if other != nil {
		for _, entry := range other.Entries() {
			merged.Insert(entry.Path, entry.Permission)
		}
	}

	return merged
}

// Entries returns every stored entry, sorted most specific first.
func (t *Tree) Entries() []Entry {
	entries := make([]Entry, 0, len(t.exact)+len(t.wild))
	for path, perm := range t.exact {
		entries = append(entries, Entry{Path: path, Permission: perm})
	}
	for path, we := range t.wild {
		entries = append(entries, Entry{Path: path, Permission: we.perm})
	}
	sortBySpecificity(entries)

	return entries
}

// Size returns the number of stored paths.
func (t *Tree) Size() int {
	return len(t.exact) + len(t.wild)
}

// sortBySpecificity orders entries by ascending wildcard count, breaking
// ties by descending path length and then lexically for stable output.
func sortBySpecificity(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		wi := CountOccurrences(entries[i].Path, '*')
		wj := CountOccurrences(entries[j].Path, '*')
		if wi != wj {
			return wi < wj
		}
		if len(entries[i].Path) != len(entries[j].Path) {
			return len(entries[i].Path) > len(entries[j].Path)
		}
		return entries[i].Path < entries[j].Path
	})
}
