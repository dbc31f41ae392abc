package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for all reactive primitives.
// IDs double as scheduling order: an effect created before another always
// has the smaller ID, which is how parent components flush before children.
var globalIDCounter uint64

// nextID returns the next unique ID for a reactive primitive.
// IDs are monotonically increasing and never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
