package sprout

import "fmt"

// --- Tree manipulation ---

// AttachLeft sets parent's left child to child and, unless child is NoIndex,
// points child back at parent. Whatever parent previously held on the left
// is not modified.
func (a *Arena) AttachLeft(parent, child Index) {
	a.at(parent).Left = child
	if child != NoIndex {
		a.at(child).Parent = parent
	}
}

// AttachRight sets parent's right child to child and, unless child is NoIndex,
// points child back at parent.
func (a *Arena) AttachRight(parent, child Index) {
	a.at(parent).Right = child
	if child != NoIndex {
		a.at(child).Parent = parent
	}
}

// SplitSegment divides node i into two colinear segments end to end. A new
// node takes the upper (1-f) share of the length together with all of i's
// children, and becomes i's left child with an identity transform; i keeps
// the lower f share and an empty right slot, ready for a lateral branch.
//
// Returns the new node's index, or ErrArenaFull with i unchanged.
// Panics if f is not in (0, 1).
func (a *Arena) SplitSegment(f float64, i Index) (Index, error) {
	if !(f > 0 && f < 1) {
		panic(fmt.Sprintf("sprout: split fraction %v not in (0, 1)", f))
	}
	n := a.at(i)
	m, err := a.Allocate()
	if err != nil {
		return NoIndex, err
	}

	upper := *n
	upper.Length = (1 - f) * n.Length
	upper.Transform = Identity
	a.nodes[m] = upper
	n.Length = f * n.Length

	a.AttachLeft(m, upper.Left)
	a.AttachRight(m, upper.Right)

	a.AttachLeft(i, m)
	a.AttachRight(i, NoIndex)

	a.emit(GrowthEvent{Type: EventSplit, Tick: a.tick, Node: i, Child: m})
	return m, nil
}

// Branch inserts child as a lateral branch at fraction f along node parent:
// the segment is split and child becomes parent's right child.
// Returns the index of the continuation node created by the split.
func (a *Arena) Branch(parent Index, f float64, child Index) (Index, error) {
	m, err := a.SplitSegment(f, parent)
	if err != nil {
		return NoIndex, err
	}
	a.AttachRight(parent, child)
	a.emit(GrowthEvent{Type: EventBranch, Tick: a.tick, Node: parent, Child: child})
	return m, nil
}

// Depth returns the number of links between i and its root.
func (a *Arena) Depth(i Index) int {
	depth := 0
	for p := a.at(i).Parent; p != NoIndex; p = a.at(p).Parent {
		depth++
		if depth > len(a.nodes) {
			panic(fmt.Sprintf("sprout: parent cycle through index %d", i))
		}
	}
	return depth
}

// Roots appends the indices of all allocated, non-Garbage roots in ascending
// order to dst and returns the extended slice.
func (a *Arena) Roots(dst []Index) []Index {
	for i := range a.nodes {
		n := &a.nodes[i]
		if a.inUse[i] && n.Status != StatusGarbage && n.Parent == NoIndex {
			dst = append(dst, Index(i))
		}
	}
	return dst
}
