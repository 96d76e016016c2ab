package ticket

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBarcode(t *testing.T) {
	re := regexp.MustCompile(`^BAB12CD34\d{4}$`)

	for i := 0; i < 1_000; i++ {
		barcode := NewBarcode("AB12CD34")

		assert.Regexp(t, re, barcode)

		suffix := barcode[len(barcode)-4:]
		assert.GreaterOrEqual(t, suffix, "1000")
		assert.LessOrEqual(t, suffix, "9999")
	}
}
