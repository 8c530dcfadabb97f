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
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cordellcalitz/happner-suite/internal/validation"
)

// SessionClaims is the JWT claim set carried by a signed session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	SessionID        string `json:"sid"              validate:"required"`
	Username         string `json:"username"         validate:"required"`
	SessionType      int    `json:"session_type"`
	SessionTTL       int64  `json:"session_ttl"` // milliseconds, 0 = no expiry
	PermissionSetKey string `json:"permission_set_key,omitempty"`
}

// Token signs and restores session tokens. A restored session is marked
// IsToken so the checkpoint applies token-specific caching and re-fetches
// the user record when resolving permissions.
type Token struct {
	logger *slog.Logger
}

// New creates a Token manager.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{logger: logger}
}

// Generate signs a token for session with the given HMAC key.
func (t *Token) Generate(
	signingKey string,
	session *Session,
) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       session.ID,
			Subject:  session.Username,
			IssuedAt: jwt.NewNumericDate(session.Timestamp),
		},
		SessionID:        session.ID,
		Username:         session.Username,
		SessionType:      session.Type,
		SessionTTL:       session.TTL.Milliseconds(),
		PermissionSetKey: session.PermissionSetKey,
	}
	if session.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(session.Timestamp.Add(session.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Validate parses and validates a session token, allowing expiryGrace of
// clock leeway, and restores the session it describes.
func (t *Token) Validate(
	tokenString string,
	signingKey string,
	expiryGrace time.Duration,
) (*Session, error) {
	claims := &SessionClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(signingKey), nil
		},
		jwt.WithLeeway(expiryGrace),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	if err := validation.Instance().Struct(claims); err != nil {
		return nil, err
	}

	session := &Session{
		ID:               claims.SessionID,
		Username:         claims.Username,
		Type:             claims.SessionType,
		TTL:              time.Duration(claims.SessionTTL) * time.Millisecond,
		IsToken:          true,
		PermissionSetKey: claims.PermissionSetKey,
	}
	if claims.IssuedAt != nil {
		session.Timestamp = claims.IssuedAt.Time
	}

	return session, nil
}
