// Package runid generates sortable identifiers for analysis runs: a UUIDv7
// rendered as 26 characters of Crockford base32.
package runid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// New returns a fresh run ID.
func New() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("runid: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID as a 26-character base32 string. The encoding
// keeps the byte order, so UUIDv7 IDs sort by creation time.
func Encode(u uuid.UUID) string {
	result := make([]byte, 26)
	// 130 bits of output: two leading zero bits, then the 128 UUID bits.
	for i := 0; i < 26; i++ {
		var value uint8
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			value <<= 1
			if bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				value |= 1
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id has 26 base32 characters and fits in 128 bits.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("run ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
