// Package sprout grows a procedural plant skeleton and turns it into line
// segments for rendering.
//
// The plant is a binary tree of segments stored in a fixed-capacity [Arena].
// Nodes never point at each other directly: parent, left and right links are
// [Index] values into the same arena, with [NoIndex] meaning "none". Slots
// are allocated and freed in O(1) from a LIFO free stack.
//
// # Quick start
//
// The simplest way to watch a plant grow is [Run], which creates a window
// and game loop for you:
//
//	sim, err := sprout.NewSimulation(sprout.DefaultSimConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sprout.Run(sim, sprout.RunConfig{
//		Title: "sprout", Width: 800, Height: 800, ShowStats: true,
//	}); err != nil {
//		log.Fatal(err)
//	}
//
// Without a window, call [Simulation.Step] once per tick and
// [Simulation.Segments] to read the geometry.
//
// # Building trees by hand
//
// Allocate a slot, initialize it with [Arena.Set] and wire it up with
// [Arena.AttachLeft] / [Arena.AttachRight]. Attach is the only way links
// should change: it keeps every child's Parent in step with its parent's
// link.
//
//	a, _ := sprout.NewArena(64)
//	root, _ := a.Plant(sprout.Vec3{}, 0.4)
//	leaf, _ := a.Allocate()
//	n := sprout.NewNode()
//	n.Status = sprout.StatusAlive
//	n.Visible = true
//	n.Length = 0.1
//	n.Transform = sprout.RotationZ(0.3)
//	a.Set(leaf, n)
//	a.Branch(root, 0.5, leaf)
//
// # Growth
//
// [Arena.Advance] grows every live node by [GrowthConfig.GrowthRate] and
// occasionally inserts a new branch halfway up a segment. Randomness comes
// only from the *rand.Rand passed in, so a seeded source reproduces a plant
// exactly. A full arena silently skips branching; it is not an error.
//
// # Geometry
//
// [Arena.AppendGeometry] walks each root depth first, left before right,
// accumulating transforms. Every visible node contributes one [Segment]
// from its start point to start + world × (0, Length, 0).
//
// # ECS
//
// Growth events can be forwarded to a [Donburi] world with the adapter in
// sprout/ecs.
//
// [Donburi]: https://github.com/yohamta/donburi
package sprout
