// Package service contains domain services shared by all frames.
package service

import "sync/atomic"

// DefaultZBase is the first z-index handed out.
const DefaultZBase int64 = 1000

// ZOrder is the process-wide z-index arbiter. Values are strictly increasing
// and never reused, so the frame brought to front last always draws on top.
type ZOrder struct {
	last atomic.Int64
}

// NewZOrder creates an arbiter whose first value is base.
func NewZOrder(base int64) *ZOrder {
	z := &ZOrder{}
	z.last.Store(base - 1)
	return z
}

// Next reserves and returns the next z-index.
func (z *ZOrder) Next() int64 {
	return z.last.Add(1)
}
