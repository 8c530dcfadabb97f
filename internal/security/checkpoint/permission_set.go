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

package checkpoint

import (
	"context"
	"fmt"

	"github.com/cordellcalitz/happner-suite/internal/cache"
	"github.com/cordellcalitz/happner-suite/internal/security"
	"github.com/cordellcalitz/happner-suite/internal/security/permissions"
)

// constructPermissionSet resolves the session's effective permission tree.
// Token sessions re-fetch a fresh user record and re-derive the permission
// set key, since the user may have changed or been deleted after the token
// was issued.
func (cp *Checkpoint) constructPermissionSet(
	ctx context.Context,
	session *security.Session,
) (*permissions.Tree, error) {
	if !session.IsToken {
		return cp.loadPermissionSet(ctx, session)
	}

	user, err := cp.deps.Users.GetUser(ctx, session.Username)
	if err != nil {
		return nil, fmt.Errorf("fetch user %q: %w", session.Username, err)
	}
	if user == nil {
		return nil, fmt.Errorf(
			"user %s has been deleted or does not exist: %w",
			session.Username, security.ErrAccessDenied,
		)
	}

	return cp.loadPermissionSet(ctx, &security.Session{
		ID:               session.ID,
		Username:         user.Username,
		User:             user,
		IsToken:          true,
		PermissionSetKey: security.PermissionSetKey(user),
	})
}

// loadPermissionSet returns the cached permission tree for the identity,
// building it from group and user grants on a miss. Concurrent misses for
// one identity may both build; the computation is idempotent and the cache
// write last-write-wins with identical results.
func (cp *Checkpoint) loadPermissionSet(
	ctx context.Context,
	identity *security.Session,
) (*permissions.Tree, error) {
	store := cp.permissionSetStore(identity)
	storeKey := identity.PermissionSetKey + ":" + identity.Username

	if v, ok := store.Get(storeKey); ok {
		if tree, isTree := v.(*permissions.Tree); isTree {
			return tree, nil
		}
	}

	raw := make(map[string]permissions.Permission)

	if identity.User != nil {
		for groupName := range identity.User.Groups {
			group, err := cp.deps.Groups.GetGroup(ctx, groupName)
			if err != nil {
				return nil, fmt.Errorf("fetch group %q: %w", groupName, err)
			}
			if group == nil {
				continue
			}
			permissions.MergeRaw(raw, group.Permissions)
		}

		prepared, err := cp.deps.Users.AttachPermissions(ctx, identity.User)
		if err != nil {
			return nil, fmt.Errorf("attach permissions for %q: %w", identity.Username, err)
		}
		if prepared != nil {
			permissions.MergeRaw(raw, prepared.Permissions)
		}
	}

	tree := cp.builder.Build(raw, identity.Identity())
	_ = store.Set(storeKey, tree)

	return tree, nil
}

// permissionSetStore picks the permission-set cache for the identity. A
// token's effective set is computed from a freshly fetched user record, so
// it is cached apart from live-session sets.
func (cp *Checkpoint) permissionSetStore(identity *security.Session) cache.Strategy {
	if identity.IsToken {
		return cp.permSetsToken
	}
	return cp.permSets
}
