package ticket

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewBarcode derives a ticket barcode from its reservation code plus a
// 4-digit random suffix. The store's unique index rejects collisions and
// the caller retries with a fresh suffix.
func NewBarcode(reservationCode string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		panic(err)
	}

	return fmt.Sprintf("B%s%d", reservationCode, 1000+n.Int64())
}
