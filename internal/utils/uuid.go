// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// IDGenerator produces unique string identifiers (token "jti" claims,
// request trace IDs).
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator yields time-ordered UUIDv7 strings. When the v7 generator
// fails it falls back to a random UUIDv4.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
