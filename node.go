package sprout

// Status is the lifecycle state of a node slot.
type Status uint8

const (
	StatusGarbage    Status = iota // free slot; skipped by growth and geometry
	StatusDead                     // was alive, no longer ages; reserved for rot
	StatusAlive                    // growing
	StatusNeverAlive               // structural node that lengthens but never ages or dies
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusGarbage:
		return "garbage"
	case StatusDead:
		return "dead"
	case StatusAlive:
		return "alive"
	case StatusNeverAlive:
		return "never-alive"
	default:
		return "unknown"
	}
}

// Node is one segment of the plant skeleton. Nodes live in an Arena and are
// identified by their slot Index; all links are indices into the same arena.
type Node struct {
	// Hierarchy
	Left   Index
	Right  Index
	Parent Index

	Status    Status
	Age       uint32 // ticks spent alive
	Archetype ArchetypeIndex

	Area   float64
	Length float64

	Visible bool

	// AbsolutePosition anchors a root in world space. Ignored when Parent is set.
	AbsolutePosition Vec3
	// Transform orients this node relative to its parent's end point.
	Transform Mat4
}

// NewNode returns a detached Garbage node with no archetype and an identity transform.
func NewNode() Node {
	return Node{
		Left:      NoIndex,
		Right:     NoIndex,
		Parent:    NoIndex,
		Status:    StatusGarbage,
		Archetype: NoArchetype,
		Transform: Identity,
	}
}

// IsRoot reports whether n has no parent.
func (n Node) IsRoot() bool {
	return n.Parent == NoIndex
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoIndex && n.Right == NoIndex
}

// grows reports whether growth applies to a node in this state.
// Every status but Garbage lengthens; only Alive nodes age.
func (n Node) grows() bool {
	return n.Status != StatusGarbage
}
