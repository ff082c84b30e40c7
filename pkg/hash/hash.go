package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n hex characters of SHA256(input). Used to
// bucket rate-limit keys and correlate requests in logs without ever
// writing a raw client IP.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) {
		return full
	}
	return full[:n]
}

// SaltedHash hashes the input with a salt so identical values across
// deployments do not produce comparable hashes.
func SaltedHash(input, salt string) string {
	return SHA256Hex(salt + input)
}
