// Package random generates the opaque identifiers used for tokens and order
// ids.
package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// charset deliberately sticks to lowercase alphanumerics so identifiers are
// safe as file names in every collection.
const charset = "abcdefghijklmnopqrstuvwxyz1234567890"

// String returns a cryptographically random string of the requested length
// drawn from the lowercase alphanumeric charset.
func String(length int) (string, error) {
	if length <= 0 || length > 1024 {
		return "", fmt.Errorf("length must be between 1 and 1024")
	}

	max := big.NewInt(int64(len(charset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read randomness: %w", err)
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf), nil
}
