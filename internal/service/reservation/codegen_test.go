package reservation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCode(t *testing.T) {
	seen := make(map[string]struct{}, 10_000)

	for i := 0; i < 10_000; i++ {
		code := NewCode()

		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q in %s", r, code)
		}

		seen[code] = struct{}{}
	}

	// 36^8 codes; 10k samples colliding down to under 9990 distinct values
	// would indicate a broken sampler, not bad luck.
	assert.Greater(t, len(seen), 9_990)
}
