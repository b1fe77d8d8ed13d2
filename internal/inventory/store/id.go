package store

import (
	"fmt"
	"math"

	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
)

// IDAllocator hands out record ids in increasing order, starting above its floor.
// Ids are never handed out twice by the same allocator, even after the record is deleted.
type IDAllocator struct {
	last uint32
}

// NewIDAllocator creates an allocator whose first id is floor+1.
// After a load, pass the store's MaxID as floor.
func NewIDAllocator(floor uint32) *IDAllocator {
	return &IDAllocator{last: floor}
}

// Next returns the next unused id.
// Returns ErrIDExhausted once the uint32 range is used up.
func (a *IDAllocator) Next() (uint32, error) {
	if a.last == math.MaxUint32 {
		return 0, fmt.Errorf("%w: last id %d", inverrors.ErrIDExhausted, a.last)
	}
	a.last++
	return a.last, nil
}
