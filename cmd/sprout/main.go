// Sprout grows a procedural plant and renders it as a wireframe.
//
// By default a window opens and the plant grows one tick per frame. Use
// -headless to grow a fixed number of ticks without graphics and print a
// summary, which is handy for profiling and for checking a seed.
//
// Controls: arrows orbit, W/S dolly, A/D and Q/E pan, Space pauses, N steps
// while paused, F frames the plant, P takes a screenshot.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/phanxgames/sprout"
)

var (
	capacity     = flag.Int("capacity", 10000, "Maximum number of plant nodes")
	seed         = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	settingsPath = flag.String("settings", "", "JSON file with environment settings")
	scriptPath   = flag.String("script", "", "JSON growth script to run in the window")
	headless     = flag.Bool("headless", false, "Run without graphics and print a summary")
	ticks        = flag.Int("ticks", 10000, "Ticks to grow in headless mode")
	steps        = flag.Int("steps", 1, "Growth ticks per frame")
	debug        = flag.Bool("debug", false, "Check invariants and log timings every tick")
	width        = flag.Int("width", 800, "Window width")
	height       = flag.Int("height", 800, "Window height")
)

func main() {
	flag.Parse()

	cfg := sprout.DefaultSimConfig()
	cfg.Capacity = *capacity
	cfg.Seed = *seed
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if *settingsPath != "" {
		data, err := os.ReadFile(*settingsPath)
		if err != nil {
			log.Fatal(err)
		}
		if cfg.Settings, err = sprout.LoadSettings(data); err != nil {
			log.Fatal(err)
		}
	}

	sim, err := sprout.NewSimulation(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sim.SetDebugMode(*debug)

	if *headless {
		runHeadless(sim, cfg.Seed)
		return
	}

	rc := sprout.RunConfig{
		Title:         "sprout",
		Width:         *width,
		Height:        *height,
		StepsPerFrame: *steps,
		ShowStats:     true,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if rc.Script, err = sprout.LoadScript(data); err != nil {
			log.Fatal(err)
		}
	}
	if err := sprout.Run(sim, rc); err != nil {
		log.Fatal(err)
	}
}

// runHeadless grows the plant for -ticks ticks and prints totals.
func runHeadless(sim *sprout.Simulation, seed uint64) {
	var total sprout.GrowthStats
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		st := sim.Step()
		total.Branched += st.Branched
		total.Skipped += st.Skipped
	}
	elapsed := time.Since(start)

	a := sim.Arena()
	fmt.Printf("seed:      %d\n", seed)
	fmt.Printf("ticks:     %d (%v, %v/tick)\n", sim.Tick(), elapsed, elapsed/time.Duration(max(*ticks, 1)))
	fmt.Printf("nodes:     %d/%d\n", a.Len(), a.Cap())
	fmt.Printf("segments:  %d\n", len(sim.Segments()))
	fmt.Printf("branched:  %d\n", total.Branched)
	fmt.Printf("skipped:   %d\n", total.Skipped)
}
