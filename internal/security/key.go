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

package security

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// PermissionSetKey derives the stable identifier for a user's effective
// permission set: the same username and group membership always yield the
// same key, so cached sets survive across sessions for one identity.
func PermissionSetKey(user *User) string {
	groups := make([]string, 0, len(user.Groups))
	for name := range user.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	sum := sha256.Sum256([]byte(user.Username + "/" + strings.Join(groups, "/")))

	return hex.EncodeToString(sum[:])
}
