// Package accountnumber produces the human-legible identifiers printed on
// account representations, format ACC-XXXXXXXX.
package accountnumber

import (
	"crypto/rand"
	"fmt"
)

const (
	prefix = "ACC-"
	length = 8

	// Uppercase alphanumerics with the ambiguous 0/O and 1/I pairs removed.
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Generate draws a fresh candidate account number. With 32^8 possible values a
// collision against the store is astronomically unlikely; the account service
// still retries creation on a duplicate, so uniqueness never rests on luck.
func Generate() (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}

	return prefix + string(out), nil
}
