package observer

// SubscriptionID identifies one registry entry of a Subject. Ids are allocated in increasing order and never reused.
type SubscriptionID uint64

// IDAllocator hands out SubscriptionIDs.
// An IDAllocator can be shared by all Subjects of a Context; ids stay increasing within every registry either way.
type IDAllocator struct {
	last SubscriptionID
}

// NewIDAllocator creates a new IDAllocator. The first id it returns is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a new id.
func (a *IDAllocator) Next() SubscriptionID {
	a.last++
	return a.last
}

// Last returns the most recently allocated id, or 0 if none was allocated.
func (a *IDAllocator) Last() SubscriptionID {
	return a.last
}
