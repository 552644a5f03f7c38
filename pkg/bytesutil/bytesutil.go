// Package bytesutil provides the small byte and hex helpers shared by the
// frame codec, the SAM engine and their tests.
package bytesutil

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Hex constructs a byte slice from a series of hex strings.
// Spaces are allowed to make fixtures readable ("80 BE 00 B1").
// It panics on malformed input: fixtures are author-controlled.
func Hex(parts ...string) []byte {
	fullHex := strings.Join(parts, "")
	cleanHex := strings.ReplaceAll(fullHex, " ", "")

	data, err := hex.DecodeString(cleanHex)
	if err != nil {
		panic(fmt.Sprintf("invalid input '%s': %v", cleanHex, err))
	}
	return data
}

// ToHex returns the upper-case hexadecimal representation of data.
func ToHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// ExtractUint reads n bytes (1 to 4) starting at offset off and returns
// their big-endian unsigned value.
func ExtractUint(data []byte, off, n int) (int, error) {
	if n < 1 || n > 4 {
		return 0, fmt.Errorf("invalid extraction width %d (1 to 4 bytes)", n)
	}
	if off < 0 || off+n > len(data) {
		return 0, fmt.Errorf("extraction of %d bytes at offset %d exceeds data length %d", n, off, len(data))
	}

	value := 0
	for _, b := range data[off : off+n] {
		value = value<<8 | int(b)
	}
	return value, nil
}
