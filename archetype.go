package sprout

import "math"

// ArchetypeIndex addresses an entry in an ArchetypeTable.
type ArchetypeIndex uint32

// NoArchetype is the reserved "no archetype" index.
const NoArchetype ArchetypeIndex = math.MaxUint32

// Archetype describes a plant species. Nodes record the index of their
// archetype, but growth does not consult it yet.
type Archetype struct {
	Name string
}

// ArchetypeTable is an append-only list of archetypes.
type ArchetypeTable struct {
	entries []Archetype
}

// Register appends a and returns its index.
func (t *ArchetypeTable) Register(a Archetype) ArchetypeIndex {
	if uint64(len(t.entries)) >= uint64(NoArchetype) {
		panic("sprout: archetype table full")
	}
	t.entries = append(t.entries, a)
	return ArchetypeIndex(len(t.entries) - 1)
}

// Get returns the archetype at i. ok is false for NoArchetype or an unknown index.
func (t *ArchetypeTable) Get(i ArchetypeIndex) (a Archetype, ok bool) {
	if i == NoArchetype || int(i) >= len(t.entries) {
		return Archetype{}, false
	}
	return t.entries[i], true
}

// Len returns the number of registered archetypes.
func (t *ArchetypeTable) Len() int {
	return len(t.entries)
}
