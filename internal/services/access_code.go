package services

import (
	"math/rand"
	"strconv"
)

// Join codes are 6 numeric characters, drawn uniformly from
// [100000, 999999] so they never carry a leading zero.
const (
	accessCodeMin    = 100000
	accessCodeSpan   = 900000
	accessCodeLength = 6
)

// Uniqueness is enforced by the database index, not by the generator: publish
// retries on a duplicate-key conflict up to this many times.
const maxAccessCodeAttempts = 5

// GenerateAccessCode returns one candidate join code. Collisions are expected
// to be rare and are resolved by the caller's retry loop.
func GenerateAccessCode() string {
	return strconv.Itoa(accessCodeMin + rand.Intn(accessCodeSpan))
}
