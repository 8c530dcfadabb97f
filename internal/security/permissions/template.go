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
	"fmt"
	"regexp"
	"strings"
)

// Identity carries the attributes templated permission paths may
// substitute.
type Identity struct {
	Username string
	Groups   []string
}

// Template expands a raw, possibly templated permission path into zero or
// more concrete paths for one identity. Expansion may fail per path; the
// permission-set builder isolates such failures.
type Template interface {
	ParsePermissionPaths(rawPath string, identity Identity) ([]string, error)
}

// templateToken matches one {{...}} substitution token.
var templateToken = regexp.MustCompile(`\{\{\s*([\w.]+)\s*\}\}`)

// ensure IdentityTemplate implements Template at compile time.
var _ Template = (*IdentityTemplate)(nil)

// IdentityTemplate is the built-in template expander. It substitutes
// {{user.username}} with the identity's username and fans
// {{user.groups}} out into one path per group; any other token fails the
// path.
type IdentityTemplate struct{}

// NewIdentityTemplate creates the built-in template expander.
func NewIdentityTemplate() *IdentityTemplate {
	return &IdentityTemplate{}
}

// ParsePermissionPaths expands rawPath for identity.
func (t *IdentityTemplate) ParsePermissionPaths(
	rawPath string,
	identity Identity,
) ([]string, error) {
	tokens := templateToken.FindAllStringSubmatch(rawPath, -1)
	if len(tokens) == 0 {
		return []string{rawPath}, nil
	}

	paths := []string{rawPath}
	for _, token := range tokens {
		placeholder, field := token[0], token[1]

		switch field {
		case "user.username":
			for i, path := range paths {
				paths[i] = strings.ReplaceAll(path, placeholder, identity.Username)
			}
		case "user.groups":
			expanded := make([]string, 0, len(paths)*len(identity.Groups))
			for _, path := range paths {
				for _, group := range identity.Groups {
					expanded = append(expanded, strings.ReplaceAll(path, placeholder, group))
				}
			}
			paths = expanded
		default:
			return nil, fmt.Errorf("unknown permission template token: %s", placeholder)
		}
	}

	return paths, nil
}
