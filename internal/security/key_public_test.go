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

package security_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cordellcalitz/happner-suite/internal/security"
)

type KeyPublicTestSuite struct {
	suite.Suite
}

func (s *KeyPublicTestSuite) TestPermissionSetKeyStable() {
	a := &security.User{
		Username: "alice",
		Groups:   map[string]bool{"operators": true, "auditors": true},
	}
	b := &security.User{
		Username: "alice",
		Groups:   map[string]bool{"auditors": true, "operators": true},
	}

	// Group iteration order must not influence the key.
	s.Equal(security.PermissionSetKey(a), security.PermissionSetKey(b))
}

func (s *KeyPublicTestSuite) TestPermissionSetKeyDistinguishesIdentities() {
	alice := &security.User{Username: "alice", Groups: map[string]bool{"operators": true}}
	bob := &security.User{Username: "bob", Groups: map[string]bool{"operators": true}}
	demoted := &security.User{Username: "alice"}

	s.NotEqual(security.PermissionSetKey(alice), security.PermissionSetKey(bob))
	s.NotEqual(security.PermissionSetKey(alice), security.PermissionSetKey(demoted))
}

func (s *KeyPublicTestSuite) TestPermissionSetKeyIsHex() {
	key := security.PermissionSetKey(&security.User{Username: "alice"})

	s.Len(key, 64)
}

func TestKeyPublicTestSuite(t *testing.T) {
	suite.Run(t, new(KeyPublicTestSuite))
}
