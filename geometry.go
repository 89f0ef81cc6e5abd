package sprout

import "fmt"

// geomFrame is one pending node on the extraction work stack.
type geomFrame struct {
	index  Index
	start  Vec3
	parent Mat4
}

// Geometry returns the plant skeleton as line segments. See AppendGeometry.
func (a *Arena) Geometry() []Segment {
	return a.AppendGeometry(nil)
}

// AppendGeometry walks every root in ascending index order, depth first with
// left children before right, and appends one segment per visible node to
// dst. Each node starts where its parent ends; its end point is its length
// along +Y carried through the accumulated world transform. Garbage nodes
// and anything hanging below them are skipped.
//
// The walk uses an explicit stack, so tree depth is bounded only by the
// arena's capacity. Panics if the links contain a cycle.
func (a *Arena) AppendGeometry(dst []Segment) []Segment {
	visited := 0
	for r := range a.nodes {
		root := &a.nodes[r]
		if !a.inUse[r] || root.Status == StatusGarbage || root.Parent != NoIndex {
			continue
		}

		a.stack = append(a.stack[:0], geomFrame{index: Index(r), start: root.AbsolutePosition, parent: Identity})
		for len(a.stack) > 0 {
			f := a.stack[len(a.stack)-1]
			a.stack = a.stack[:len(a.stack)-1]

			visited++
			if visited > len(a.nodes) {
				panic(fmt.Sprintf("sprout: link cycle reached from root %d", r))
			}

			n := &a.nodes[f.index]
			world := f.parent.Mul(n.Transform)
			end := f.start.Add(world.TransformVector(UnitY.Scale(n.Length)))
			if n.Visible {
				dst = append(dst, Segment{
					Start:      f.start,
					End:        end,
					StartColor: SegmentStartColor,
					EndColor:   SegmentEndColor,
				})
			}

			// Right is pushed first so left is popped first.
			if a.live(n.Right) {
				a.stack = append(a.stack, geomFrame{index: n.Right, start: end, parent: world})
			}
			if a.live(n.Left) {
				a.stack = append(a.stack, geomFrame{index: n.Left, start: end, parent: world})
			}
		}
	}
	return dst
}

// live reports whether i refers to an allocated, non-Garbage node.
func (a *Arena) live(i Index) bool {
	return i != NoIndex && a.IsAllocated(i) && a.nodes[i].Status != StatusGarbage
}
