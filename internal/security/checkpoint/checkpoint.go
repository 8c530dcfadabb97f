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

// Package checkpoint implements the authorization decision engine: given a
// session, a path, and an action it evaluates session policy, consults the
// decision caches, resolves the session's permission set, and falls back to
// the dynamic lookup-table collaborator.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cordellcalitz/happner-suite/internal/cache"
	"github.com/cordellcalitz/happner-suite/internal/security"
	"github.com/cordellcalitz/happner-suite/internal/security/permissions"
)

// Cache names registered by the checkpoint.
const (
	cacheAuthorization      = "checkpoint_cache_authorization"
	cacheAuthorizationToken = "checkpoint_cache_authorization_token"
	cacheUsageLimit         = "checkpoint_usage_limit"
	cacheInactivity         = "checkpoint_inactivity_threshold"
	cachePermissionSet      = "checkpoint_permissionset"
	cachePermissionSetToken = "checkpoint_permissionset_token"
)

// actionLogin is the action a token may replay to re-establish a session
// without traversing full permission resolution.
const actionLogin = "login"

// MostRestrictivePolicy is the only supported group-permission merge
// policy. The config knob exists as an extension point.
const MostRestrictivePolicy = "most_restrictive"

// ErrUnknownMergePolicy rejects configurations naming a group-permission
// merge policy other than MostRestrictivePolicy.
var ErrUnknownMergePolicy = errors.New("unknown group permissions policy")

// Config bounds the checkpoint's decision caches.
type Config struct {
	// AuthCacheMax bounds both authorization decision caches.
	AuthCacheMax int
	// AuthCacheMaxAge is the decision caches' default entry TTL. Zero
	// keeps decisions until evicted.
	AuthCacheMaxAge time.Duration
	// GroupPermissionsPolicy selects how group grants merge. Only
	// MostRestrictivePolicy is implemented; empty defaults to it.
	GroupPermissionsPolicy string
}

// Dependencies are the external collaborators the checkpoint consults.
type Dependencies struct {
	Users    security.UserStore
	Groups   security.GroupStore
	Lookup   security.LookupTables
	Template permissions.Template
}

// Checkpoint is the authorization engine. Each decision is a pure function
// of session, policy, and cache contents; the checkpoint never owns session
// lifetime, it only reads sessions handed to it.
type Checkpoint struct {
	logger  *slog.Logger
	deps    Dependencies
	builder *permissions.Builder

	authCache       cache.Strategy
	authCacheToken  cache.Strategy
	usageCache      cache.Strategy
	inactivityCache cache.Strategy
	permSets        cache.Strategy
	permSetsToken   cache.Strategy
}

// New creates a Checkpoint and registers its caches with the cache
// service. A checkpoint owns its cache names exclusively: building a
// second one on the same service fails with cache.ErrCacheExists.
// Configuration problems fail here, never at request time.
func New(
	logger *slog.Logger,
	cacheSvc *cache.Service,
	deps Dependencies,
	config Config,
) (*Checkpoint, error) {
	switch config.GroupPermissionsPolicy {
	case "", MostRestrictivePolicy:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMergePolicy, config.GroupPermissionsPolicy)
	}
	if config.AuthCacheMax == 0 {
		config.AuthCacheMax = cache.DefaultLRUMax
	}

	cp := &Checkpoint{
		logger:  logger,
		deps:    deps,
		builder: permissions.NewBuilder(logger, deps.Template),
	}

	authOpts := cache.Options{
		Kind:   cache.KindLRU,
		Max:    config.AuthCacheMax,
		MaxAge: config.AuthCacheMaxAge,
	}

	var err error
	if cp.authCache, err = cacheSvc.Create(cacheAuthorization, authOpts); err != nil {
		return nil, err
	}
	if cp.authCacheToken, err = cacheSvc.Create(cacheAuthorizationToken, authOpts); err != nil {
		return nil, err
	}
	if cp.usageCache, err = cacheSvc.Create(cacheUsageLimit, cache.Options{}); err != nil {
		return nil, err
	}
	if cp.inactivityCache, err = cacheSvc.Create(cacheInactivity, cache.Options{}); err != nil {
		return nil, err
	}
	if cp.permSets, err = cacheSvc.Create(cachePermissionSet, cache.Options{}); err != nil {
		return nil, err
	}
	if cp.permSetsToken, err = cacheSvc.Create(cachePermissionSetToken, cache.Options{}); err != nil {
		return nil, err
	}

	return cp, nil
}

// AuthorizeSession evaluates the session-policy guard sequence for an
// action on a path, short-circuiting on the first failing guard. When
// bypass is true the caller must skip full permission resolution: either a
// token-scoped grant authorized the action terminally, or a token login
// re-attempt passed through.
func (cp *Checkpoint) AuthorizeSession(
	session *security.Session,
	path string,
	action string,
) (authorized bool, reason security.Reason, bypass bool, err error) {
	if session.Policies == nil {
		return false, security.ReasonNoPolicySession, false, nil
	}

	policy := session.Policy()
	if policy == nil {
		return false, security.ReasonNoPolicySessionType, false, nil
	}

	now := time.Now()
	if policy.TTL > 0 && now.After(session.Timestamp.Add(policy.TTL)) {
		return false, security.ReasonExpiredToken, false, nil
	}

	if !cp.checkInactivity(session, policy, now) {
		return false, security.ReasonInactivityThreshold, false, nil
	}

	if ok, err := cp.checkUsageLimit(session, policy, now); err != nil {
		return false, "", false, err
	} else if !ok {
		return false, security.ReasonSessionUsage, false, nil
	}

	if len(policy.Permissions) > 0 {
		// A token scoped to specific grants is terminal either way: a
		// matching grant circumvents further security-layer calls, and a
		// non-matching one never falls back to the user's full
		// permission set.
		scoped := cp.builder.Build(policy.Permissions, session.Identity())
		if scoped.Authorized(path, action) {
			return true, "", true, nil
		}
		return false, security.ReasonTokenPermissionsLimited, false, nil
	}

	if action == actionLogin {
		return true, "", true, nil
	}

	return true, "", false, nil
}

// checkInactivity passes when no threshold applies or the session has been
// active within it, refreshing the self-expiring liveness marker on
// success. Elapsed idle time counts from the later of the last recorded
// activity and the session start.
func (cp *Checkpoint) checkInactivity(
	session *security.Session,
	policy *security.Policy,
	now time.Time,
) bool {
	if policy.InactivityThreshold <= 0 {
		return true
	}

	idle := now.Sub(session.Timestamp)
	if v, ok := cp.inactivityCache.Get(session.ID); ok {
		if last, isTime := v.(time.Time); isTime {
			idle = now.Sub(last)
		}
	}

	if idle > policy.InactivityThreshold {
		return false
	}

	_ = cp.inactivityCache.Set(session.ID, now, cache.WithTTL(policy.InactivityThreshold))

	return true
}

// checkUsageLimit passes when no limit applies or the session's usage
// counter, after this use, is still within it. The decision rides on the
// atomic increment's return value, so concurrent requests racing toward
// the limit each observe a distinct count and at most UsageLimit of them
// pass. The counter expires with the session's remaining validity window.
func (cp *Checkpoint) checkUsageLimit(
	session *security.Session,
	policy *security.Policy,
	now time.Time,
) (bool, error) {
	if policy.UsageLimit <= 0 {
		return true, nil
	}

	var remaining time.Duration
	if session.TTL > 0 {
		remaining = session.TTL - now.Sub(session.Timestamp)
		if remaining < 0 {
			remaining = 0
		}
	}

	// Seed the counter so it carries the session-scoped expiry; a
	// concurrent increment already in the cache wins over the seed.
	_, _ = cp.usageCache.Get(session.ID, cache.WithDefault(int64(0), remaining))

	used, err := cp.usageCache.Increment(session.ID, 1)
	if err != nil {
		return false, fmt.Errorf("increment usage counter: %w", err)
	}

	return used <= policy.UsageLimit, nil
}

// AuthorizeUser resolves the action against the session's full permission
// set, consulting the decision cache first and delegating to the
// lookup-table collaborator when static matching is inconclusive.
func (cp *Checkpoint) AuthorizeUser(
	ctx context.Context,
	session *security.Session,
	path string,
	action string,
) (bool, error) {
	if v, ok := cp.decisionCache(session).Get(cp.decisionKey(session, path, action)); ok {
		authorized, _ := v.(bool)
		return authorized, nil
	}

	permissionSet, err := cp.constructPermissionSet(ctx, session)
	if err != nil {
		return false, err
	}

	if !permissionSet.Authorized(path, action) {
		return cp.lookupAuthorize(ctx, session, path, action)
	}

	cp.cacheDecision(session, path, action, true)

	return true, nil
}

// lookupAuthorize delegates to the lookup-table collaborator. Collaborator
// errors are logged and downgraded to a denial; a broken dynamic-lookup
// integration must not take down the broker. Results, positive or
// negative, are cached exactly as static results are.
func (cp *Checkpoint) lookupAuthorize(
	ctx context.Context,
	session *security.Session,
	path string,
	action string,
) (bool, error) {
	authorized, err := cp.deps.Lookup.Authorize(ctx, session, path, action)
	if err != nil {
		cp.logger.Warn("lookup table authorization failed",
			slog.String("session", session.ID),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	cp.cacheDecision(session, path, action, authorized)

	return authorized, nil
}

// ListRelevantPermissions returns every permission entry whose path could
// interact with the possibly-wildcarded query path. It reads no decision
// cache and writes nothing.
func (cp *Checkpoint) ListRelevantPermissions(
	ctx context.Context,
	session *security.Session,
	path string,
	action string,
) ([]permissions.Entry, error) {
	permissionSet, err := cp.constructPermissionSet(ctx, session)
	if err != nil {
		return nil, err
	}

	return permissionSet.WildcardPathSearch(path, action), nil
}

// OnClientDisconnect evicts the session's liveness and usage entries so
// the throttling caches do not leak entries for sessions that no longer
// exist.
func (cp *Checkpoint) OnClientDisconnect(
	sessionID string,
) {
	cp.usageCache.Remove(sessionID)
	cp.inactivityCache.Remove(sessionID)
}

// ClearCaches flushes the decision caches and permission-set stores, e.g.
// after permission or group changes.
func (cp *Checkpoint) ClearCaches() error {
	for _, c := range []cache.Strategy{
		cp.authCache,
		cp.authCacheToken,
		cp.permSets,
		cp.permSetsToken,
	} {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clear cache %q: %w", c.Name(), err)
		}
	}

	return nil
}

// Stop clears every checkpoint cache.
func (cp *Checkpoint) Stop() {
	for _, c := range []cache.Strategy{
		cp.authCache,
		cp.authCacheToken,
		cp.usageCache,
		cp.inactivityCache,
		cp.permSets,
		cp.permSetsToken,
	} {
		_ = c.Clear()
		c.Stop()
	}
}

// decisionCache picks the authorization cache for the session. Token
// sessions cache separately since tokens revoke independently of live
// sessions.
func (cp *Checkpoint) decisionCache(session *security.Session) cache.Strategy {
	if session.IsToken {
		return cp.authCacheToken
	}
	return cp.authCache
}

func (cp *Checkpoint) decisionKey(
	session *security.Session,
	path string,
	action string,
) string {
	return session.ID + ":" + path + ":" + action
}

func (cp *Checkpoint) cacheDecision(
	session *security.Session,
	path string,
	action string,
	authorized bool,
) {
	_ = cp.decisionCache(session).Set(cp.decisionKey(session, path, action), authorized)
}
