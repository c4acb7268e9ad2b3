// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the two halves of a token pair. It is stored in
// the "token_type" claim so that a refresh token can never be used as an
// access token and vice versa.
type TokenType string

const (
	AccessTokenType  TokenType = "access"
	RefreshTokenType TokenType = "refresh"
)

// TokenClaims is the claim set of every token issued by the backend.
type TokenClaims struct {
	jwt.RegisteredClaims

	TokenType TokenType `json:"token_type"`
}

// Token is a signed or parsed JWT.
type Token struct {
	Claims TokenClaims

	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string

	// UserID is the parsed "sub" claim.
	UserID int64
}

// GetUserID parses the "sub" claim as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the response of the token obtain endpoint.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// AccessToken is the response of the token refresh endpoint.
type AccessToken struct {
	Access string `json:"access"`
}
