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

// Package config declares the YAML configuration schema. Bad configuration
// fails fast at setup, never at request time.
package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Security Security `mapstructure:"security"`
	NATS     NATS     `mapstructure:"nats"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Security configuration for the authorization core.
type Security struct {
	// SigningKey is the HMAC key session tokens are signed with.
	SigningKey string `mapstructure:"signing_key"`
	// ExpiryGraceSeconds is the clock leeway allowed when validating
	// session token expiry.
	ExpiryGraceSeconds int        `mapstructure:"expiry_grace" validate:"gte=0"`
	Checkpoint         Checkpoint `mapstructure:"checkpoint"`
}

// Checkpoint configuration for the authorization decision caches.
type Checkpoint struct {
	CacheAuthorization CacheBounds `mapstructure:"cache_checkpoint_authorization"`
	// GroupPermissionsPolicy selects how group permissions merge.
	// Only "most_restrictive" is implemented; the knob is an extension
	// point.
	GroupPermissionsPolicy string `mapstructure:"group_permissions_policy" validate:"omitempty,oneof=most_restrictive"`
}

// CacheBounds limits one bounded cache.
type CacheBounds struct {
	// Max is the entry capacity. Zero takes the built-in default.
	Max int `mapstructure:"max"     validate:"gte=0"`
	// MaxAge is the default entry TTL as a Go duration string, e.g.
	// "5m". Empty or "0" keeps entries until evicted.
	MaxAge string `mapstructure:"max_age"`
}

// NATS configuration for the durable cache backing store.
type NATS struct {
	// URL of the NATS server hosting the KeyValue bucket.
	URL string `mapstructure:"url"`
	// CacheBucket is the KV bucket persisted caches write through to.
	CacheBucket string `mapstructure:"cache_bucket"`
}
