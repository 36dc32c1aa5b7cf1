// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package authpayload shapes the opaque "auth" handshake payload exchanged
// on WebSocket connect. It only builds/parses the token's shape; the
// binding between an authenticated session and a stored user_id is an
// explicit open question this package does not decide.
package authpayload

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the opaque handshake payload's shape.
type Claims struct {
	jwt.RegisteredClaims
	GameTag string `json:"game_tag"`
}

// Signer builds and verifies handshake tokens with a single HMAC secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner builds a Signer. ttl bounds how long a handshake token is
// accepted after issuance; it has no bearing on session lifetime.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Signer{secret: secret, ttl: ttl}
}

// Issue produces a signed handshake token for gameTag.
func (s *Signer) Issue(gameTag string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		GameTag: gameTag,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("authpayload: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies and decodes a handshake token previously produced by Issue.
func (s *Signer) Parse(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("authpayload: parse: %w", err)
	}
	return claims, nil
}
