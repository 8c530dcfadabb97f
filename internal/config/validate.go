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

package config

import (
	"fmt"
	"time"

	"github.com/cordellcalitz/happner-suite/internal/validation"
)

// DefaultExpiryGraceSeconds applies when no expiry grace is configured.
const DefaultExpiryGraceSeconds = 60

// Validate checks the configuration, applying defaults for absent values.
func Validate(cfg *Config) error {
	if cfg.Security.ExpiryGraceSeconds == 0 {
		cfg.Security.ExpiryGraceSeconds = DefaultExpiryGraceSeconds
	}

	if msg, ok := validation.Struct(cfg); !ok {
		return fmt.Errorf("invalid configuration: %s", msg)
	}

	if _, err := cfg.Security.Checkpoint.CacheAuthorization.MaxAgeDuration(); err != nil {
		return err
	}

	return nil
}

// ExpiryGrace returns the token expiry leeway as a duration.
func (s Security) ExpiryGrace() time.Duration {
	return time.Duration(s.ExpiryGraceSeconds) * time.Second
}

// MaxAgeDuration parses the MaxAge TTL string. Empty means no expiry.
func (b CacheBounds) MaxAgeDuration() (time.Duration, error) {
	if b.MaxAge == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(b.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid cache max_age %q: %w", b.MaxAge, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid cache max_age %q: must not be negative", b.MaxAge)
	}

	return d, nil
}
