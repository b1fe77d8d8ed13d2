package store

import (
	"math"
	"testing"

	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IDAllocator_Next(t *testing.T) {
	testCases := []struct {
		name     string
		floor    uint32
		expected []uint32
	}{
		{name: "Fresh session", floor: 0, expected: []uint32{1, 2, 3}},
		{name: "After load", floor: 41, expected: []uint32{42, 43}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			a := NewIDAllocator(tc.floor)
			// when
			var got []uint32
			for range tc.expected {
				id, err := a.Next()
				require.NoError(t, err)
				got = append(got, id)
			}
			// then
			assert.Equal(t, tc.expected, got)
		})
	}
}

func Test_IDAllocator_Exhausted(t *testing.T) {
	// given
	a := NewIDAllocator(math.MaxUint32 - 1)
	last, err := a.Next()
	require.NoError(t, err)
	// when
	_, err = a.Next()
	// then
	assert.Equal(t, uint32(math.MaxUint32), last)
	assert.ErrorIs(t, err, inverrors.ErrIDExhausted)
	_, err = a.Next()
	assert.ErrorIs(t, err, inverrors.ErrIDExhausted, "exhaustion is permanent")
}
