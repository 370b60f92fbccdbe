package state

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// runNamespace scopes the IDs of strokes derived from an erased parent.
var runNamespace = uuid.MustParse("9b0f6c1e-3d0a-4c51-8f9e-6a7d2b1c4e35")

// Clock supplies millisecond timestamps.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}

// IDSource supplies identifiers for newly committed strokes.
type IDSource func() string

// RandomID returns a fresh random UUID string.
func RandomID() string {
	return uuid.NewString()
}

// DerivedID names run index of an erased parent stroke. The same parent
// and index always give the same ID.
func DerivedID(parentID string, index int) string {
	return uuid.NewSHA1(runNamespace, []byte(parentID+"/"+strconv.Itoa(index))).String()
}
