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

// Package security holds the identity model shared by the authorization
// pipeline: sessions, per-session-type policies, users and groups, and the
// contracts of the external collaborators the pipeline consults.
package security

import (
	"errors"
	"time"

	"github.com/cordellcalitz/happner-suite/internal/security/permissions"
)

// ErrAccessDenied marks authorization failures that are hard errors rather
// than policy denials, such as a token referencing a deleted user.
var ErrAccessDenied = errors.New("access denied")

// Reason is a stable code describing why a session-policy check denied an
// action. Denials are data, not errors; callers branch on the code without
// learning internal state.
type Reason string

// Denial reasons produced by the session-policy guard sequence.
const (
	ReasonNoPolicySession         Reason = "NO_POLICY_SESSION"
	ReasonNoPolicySessionType     Reason = "NO_POLICY_SESSION_TYPE"
	ReasonExpiredToken            Reason = "EXPIRED_TOKEN"
	ReasonInactivityThreshold     Reason = "INACTIVITY_THRESHOLD_REACHED"
	ReasonSessionUsage            Reason = "SESSION_USAGE"
	ReasonTokenPermissionsLimited Reason = "token permissions limited"
)

// Session types recognized by policy lookups.
const (
	SessionTypeBasic  = 0
	SessionTypeActive = 1
)

// Policy holds the per-session-type rules evaluated on every request.
type Policy struct {
	// TTL bounds the session lifetime from its start. Zero means no
	// expiry.
	TTL time.Duration `json:"ttl"`
	// InactivityThreshold fails authorization when the session has been
	// idle longer than this. Zero disables the check.
	InactivityThreshold time.Duration `json:"inactivity_threshold"`
	// UsageLimit caps the number of authorized actions for the session.
	// Zero disables the check.
	UsageLimit int64 `json:"usage_limit"`
	// Permissions, when present, scope the session to exactly these
	// grants, bypassing the user's full permission set.
	Permissions map[string]permissions.Permission `json:"permissions,omitempty"`
}

// Session is a connected client's identity and transient authorization
// context. Sessions are created by the session service at connect time and
// destroyed at disconnect; the authorization pipeline only reads them.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// User is the resolved user record, carrying group membership and
	// any directly attached permissions.
	User *User `json:"user,omitempty"`
	// Type selects which policy applies to this session.
	Type int `json:"type"`
	// Policies maps session type to the policy evaluated for it.
	Policies map[int]*Policy `json:"policy,omitempty"`
	// Timestamp is the session start.
	Timestamp time.Time `json:"timestamp"`
	// TTL is the session validity window from Timestamp.
	TTL time.Duration `json:"ttl"`
	// IsToken marks sessions restored from a signed token rather than a
	// live login.
	IsToken bool `json:"is_token"`
	// PermissionSetKey identifies the session's effective permission
	// set; stable across requests for the same identity.
	PermissionSetKey string `json:"permission_set_key"`
}

// Policy returns the policy for the session's declared type, or nil.
func (s *Session) Policy() *Policy {
	if s.Policies == nil {
		return nil
	}
	return s.Policies[s.Type]
}

// Identity converts the session into the reduced identity the permission
// template layer substitutes into templated paths.
func (s *Session) Identity() permissions.Identity {
	ident := permissions.Identity{Username: s.Username}
	if s.User != nil {
		for name := range s.User.Groups {
			ident.Groups = append(ident.Groups, name)
		}
	}
	return ident
}

// User is a stored user record.
type User struct {
	Username string `json:"username"`
	// Groups the user belongs to.
	Groups map[string]bool `json:"groups,omitempty"`
	// Permissions attached directly to the user, merged over group
	// grants when building the effective permission set.
	Permissions map[string]permissions.Permission `json:"permissions,omitempty"`
}

// Group is a stored group record.
type Group struct {
	Name        string                            `json:"name"`
	Permissions map[string]permissions.Permission `json:"permissions,omitempty"`
}
