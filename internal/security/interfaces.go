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

import "context"

// UserStore is the persistent user record store. Calls may block on I/O and
// honor ctx cancellation.
type UserStore interface {
	// GetUser returns the user record for username, or nil when no such
	// user exists.
	GetUser(ctx context.Context, username string) (*User, error)
	// AttachPermissions merges any externally attached dynamic
	// permissions onto the user record and returns it.
	AttachPermissions(ctx context.Context, user *User) (*User, error)
}

// GroupStore is the persistent group record store.
type GroupStore interface {
	// GetGroup returns the group record for name, or nil when no such
	// group exists.
	GetGroup(ctx context.Context, name string) (*Group, error)
}

// LookupTables is the external dynamic permission source consulted when
// static permission matching is inconclusive. Its own contract bounds how
// long a call may take; the authorization pipeline does not add a timeout.
type LookupTables interface {
	// Authorize decides the action dynamically. Errors are downgraded to
	// denials by the caller.
	Authorize(ctx context.Context, session *Session, path, action string) (bool, error)
}
