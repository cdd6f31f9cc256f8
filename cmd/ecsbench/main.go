// Command ecsbench spawns a large population of entities and runs a
// movement system's query over them for a number of scheduler steps
// under a memory profile, as a quick way
// to see allocator pressure from store growth and query scans.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/jcorbin/ecsworld"
	"github.com/pkg/profile"
)

func main() {
	entityCount := flag.Int("entities", 100000, "entities to spawn")
	steps := flag.Int("steps", 100, "scheduler steps to run")
	profPath := flag.String("profile-path", ".", "directory to write the profile into")
	flag.Parse()

	stop := profile.Start(profile.MemProfileAllocs, profile.ProfilePath(*profPath), profile.NoShutdownHook)
	defer stop.Stop()

	w := ecs.NewWorld()
	position := w.RegisterComponent("position")
	velocity := w.RegisterComponent("velocity")
	hostile := w.RegisterTag("hostile")

	for i := 0; i < *entityCount; i++ {
		e := w.Spawn()
		w.Set(e, position, [2]float64{float64(i), 0})
		if i%2 == 0 {
			w.Set(e, velocity, [2]float64{1, 0})
		}
		if i%10 == 0 {
			w.Add(e, hostile, nil)
		}
	}

	w.Scheduler().Register(moveSystem{position: position, velocity: velocity})

	start := time.Now()
	for i := 0; i < *steps; i++ {
		w.Scheduler().Step(16 * time.Millisecond)
	}
	fmt.Printf("spawned=%d steps=%d elapsed=%s\n", *entityCount, *steps, time.Since(start))
}

type moveSystem struct {
	position, velocity ecs.ComponentID
}

func (moveSystem) Name() string        { return "move" }
func (moveSystem) Phase() ecs.Phase    { return ecs.PhaseUpdate }
func (s moveSystem) Update(w *ecs.World, dt time.Duration) {
	q := w.NewQuery(s.position, s.velocity)
	it := q.Iter()
	for it.Next() {
		pos := it.Value(0).([2]float64)
		vel := it.Value(1).([2]float64)
		pos[0] += vel[0] * dt.Seconds()
		pos[1] += vel[1] * dt.Seconds()
		w.Set(it.Entity(), s.position, pos)
	}
}
