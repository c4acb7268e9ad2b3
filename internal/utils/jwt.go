// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/dashboard-api/models"
)

// BearerScheme is the only accepted Authorization scheme.
const BearerScheme = "Bearer"

var (
	// ErrAuthorizationHeaderMissing means the request carries no credentials
	// this backend understands: no header, or a scheme other than Bearer.
	ErrAuthorizationHeaderMissing = errors.New("authorization header is missing")

	// ErrAuthorizationHeaderInvalid means a Bearer header is malformed.
	ErrAuthorizationHeaderInvalid = errors.New("authorization header must contain two space-delimited values")

	// ErrWrongTokenType is returned when an access token is presented where a
	// refresh token is expected or vice versa.
	ErrWrongTokenType = errors.New("token has wrong type")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer     (iss): identifies the service that issued the token
//   - Subject    (sub): the user ID encoded as a string
//   - ID         (jti): a random UUID
//   - IssuedAt   (iat): the current time
//   - ExpiresAt  (exp): the current time plus tokenDuration
//   - token_type      : "access" or "refresh"
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("my-service", 42, models.AccessTokenType, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, tokenType models.TokenType, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenType == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        NewUUIDGenerator().Generate(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: tokenType,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - token_type claim check against expectedType
//   - Subject (sub) claim presence and conversion to int64 UserID
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, expectedType models.TokenType) (models.Token, error) {
	claims := models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.TokenType != expectedType {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, expectedType)
	}

	token := models.Token{Claims: claims, SignedString: tokenString}
	if token.UserID, err = token.GetUserID(); err != nil {
		return models.Token{}, err
	}

	return token, nil
}

// ParseBearerToken extracts the token from an Authorization header value.
//
// An empty header or a non-Bearer scheme yields
// [ErrAuthorizationHeaderMissing]; "Bearer" without a token, or with extra
// parts, yields [ErrAuthorizationHeaderInvalid].
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) == 0 || parts[0] != BearerScheme {
		return "", ErrAuthorizationHeaderMissing
	}
	if len(parts) != 2 {
		return "", ErrAuthorizationHeaderInvalid
	}
	return parts[1], nil
}
