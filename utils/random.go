// utils/random.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns a short uppercase reference string,
// used for human-readable ledger entry references
func GenerateRandomString(length int) string {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			result[i] = referenceAlphabet[0]
			continue
		}
		result[i] = referenceAlphabet[n.Int64()]
	}
	return string(result)
}
