// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password bounds enforced wherever a password is set. bcrypt reads at most
// 72 bytes, so anything longer is refused instead of silently truncated.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// PasswordCost is the bcrypt work factor. Tests lower it to [bcrypt.MinCost].
var PasswordCost = bcrypt.DefaultCost

// ErrPasswordTooLong is returned by [HashPassword] for inputs over [MaxPasswordLength] bytes.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether plainTextPassword matches existingHash.
// A malformed hash never matches.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if existingHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}
