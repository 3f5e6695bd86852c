package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"
)

// Sum returns the hex SHA-256 digest of data
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// JSON hashes the JSON encoding of v. Map keys are sorted, so equal values
// hash equally.
func JSON(v interface{}) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return Sum(data), nil
}

// ETag returns a strong entity tag for v built from the first 16 hex
// characters of its JSON hash
func ETag(v interface{}) (string, error) {
	sum, err := JSON(v)
	if err != nil {
		return "", err
	}
	return `"` + sum[:16] + `"`, nil
}
