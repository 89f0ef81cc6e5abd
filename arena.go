package sprout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned by NewArena for a capacity of zero or one
	// that would reach the NoIndex sentinel.
	ErrInvalidCapacity = errors.New("sprout: invalid arena capacity")
	// ErrArenaFull is returned when no free slot remains.
	ErrArenaFull = errors.New("sprout: arena full")
)

// Arena is a fixed-capacity store of nodes with O(1) allocate and free.
// Free slots are kept on a LIFO stack: the most recently freed index is the
// next one handed out. The arena never grows.
//
// Arena is not safe for concurrent use. Growth (Advance) must finish before
// geometry is extracted.
type Arena struct {
	nodes []Node
	inUse []bool

	// free[:freeTop] holds the currently free indices; free[freeTop-1] is next.
	free    []Index
	freeTop int

	sink EventSink
	tick uint64

	// Reused per-call buffers (high-water mark, never shrink).
	visit []Index
	stack []geomFrame
}

// NewArena creates an arena of the given capacity with every slot free.
// Fresh slots are handed out in ascending index order.
func NewArena(capacity int) (*Arena, error) {
	if capacity <= 0 || uint64(capacity) >= uint64(NoIndex) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	a := &Arena{
		nodes:   make([]Node, capacity),
		inUse:   make([]bool, capacity),
		free:    make([]Index, capacity),
		freeTop: capacity,
	}
	for i := range a.nodes {
		a.nodes[i] = NewNode()
		a.free[capacity-1-i] = Index(i)
	}
	return a, nil
}

// Cap returns the fixed number of slots.
func (a *Arena) Cap() int {
	return len(a.nodes)
}

// Len returns the number of allocated slots.
func (a *Arena) Len() int {
	return len(a.nodes) - a.freeTop
}

// Get returns a copy of the node at i. Panics if i is out of range.
func (a *Arena) Get(i Index) Node {
	return *a.at(i)
}

// Set overwrites the node at i. Panics if i is out of range.
func (a *Arena) Set(i Index, n Node) {
	*a.at(i) = n
}

// IsAllocated reports whether i is a currently allocated slot.
// Out-of-range indices, including NoIndex, report false.
func (a *Arena) IsAllocated(i Index) bool {
	return int64(i) < int64(len(a.nodes)) && a.inUse[i]
}

// Allocate reserves a free slot and returns its index. The slot still holds
// a Garbage node; the caller must initialize it (including Status) with Set.
// Returns ErrArenaFull without modifying the arena when no slot is free.
func (a *Arena) Allocate() (Index, error) {
	if a.freeTop == 0 {
		return NoIndex, ErrArenaFull
	}
	a.freeTop--
	i := a.free[a.freeTop]
	a.inUse[i] = true
	return i, nil
}

// Free marks the slot at i as Garbage and returns it to the free stack.
// Links held by other nodes are not touched; detach i first.
// Panics if i is out of range or not currently allocated.
func (a *Arena) Free(i Index) {
	n := a.at(i)
	if !a.inUse[i] {
		panic(fmt.Sprintf("sprout: free of unallocated index %d", i))
	}
	if a.freeTop == len(a.free) {
		panic("sprout: free stack overflow")
	}
	n.Status = StatusGarbage
	a.inUse[i] = false
	a.free[a.freeTop] = i
	a.freeTop++
}

// Plant allocates an alive, visible root node anchored at pos and growing
// straight up with the given length.
func (a *Arena) Plant(pos Vec3, length float64) (Index, error) {
	i, err := a.Allocate()
	if err != nil {
		return NoIndex, err
	}
	n := NewNode()
	n.Status = StatusAlive
	n.Visible = true
	n.Length = length
	n.AbsolutePosition = pos
	a.nodes[i] = n
	return i, nil
}

// SetEventSink sets the optional receiver for growth events.
func (a *Arena) SetEventSink(sink EventSink) {
	a.sink = sink
}

// Tick returns the number of completed Advance passes.
func (a *Arena) Tick() uint64 {
	return a.tick
}

// at returns a pointer to the slot at i, panicking when i is out of range.
func (a *Arena) at(i Index) *Node {
	if int64(i) >= int64(len(a.nodes)) {
		panic(fmt.Sprintf("sprout: index %d out of range [0, %d)", i, len(a.nodes)))
	}
	return &a.nodes[i]
}

// emit forwards e to the event sink, if any.
func (a *Arena) emit(e GrowthEvent) {
	if a.sink != nil {
		a.sink.EmitEvent(e)
	}
}
