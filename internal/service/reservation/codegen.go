package reservation

import (
	"crypto/rand"
	"math/big"
)

// Reservation codes are the human-facing identifier printed on tickets and
// read over the phone, so the alphabet is uppercase alphanumeric only.
const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
)

// NewCode samples an 8-character uppercase-alphanumeric code. Uniqueness is
// not guaranteed here; the store's unique index rejects collisions and the
// caller retries with a fresh code.
func NewCode() string {
	max := big.NewInt(int64(len(codeAlphabet)))

	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}

	return string(b)
}
