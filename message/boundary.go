package message

import (
	"crypto/rand"
	"math/big"
)

var boundaryLetters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// BoundaryLength is the length of a generated boundary.
const BoundaryLength = 30

// GenerateBoundary returns a random boundary made of letters and digits.
func GenerateBoundary() string {
	max := big.NewInt(int64(len(boundaryLetters)))
	b := make([]byte, BoundaryLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = boundaryLetters[n.Int64()]
	}
	return string(b)
}
