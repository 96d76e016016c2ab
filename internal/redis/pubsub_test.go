package redisx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeFlightChanged(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		id, ok := decodeFlightChanged(`{"type":"flight_changed","flight_id":42,"ts_unix":1756380000}`)
		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("zero flight id dropped", func(t *testing.T) {
		_, ok := decodeFlightChanged(`{"type":"flight_changed","flight_id":0}`)
		assert.False(t, ok)
	})

	t.Run("garbage dropped", func(t *testing.T) {
		_, ok := decodeFlightChanged(`not json`)
		assert.False(t, ok)
	})
}
