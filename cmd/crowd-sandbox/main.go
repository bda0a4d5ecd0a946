// crowd-sandbox runs levels headless with a scripted attacker and prints the outcome
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/system"
	"github.com/lixenwraith/cutin-killer/vmath"
)

var (
	levelFlag  = flag.String("level", "", "level id, empty runs every built-in level")
	attackFlag = flag.String("attack", "bodyslam", "attack name")
	seedFlag   = flag.Uint64("seed", 1, "simulation seed")
	stepFlag   = flag.Duration("step", time.Second/60, "simulation step")
	everyFlag  = flag.Duration("every", 2*time.Second, "attack period, 0 disables the attacker")
	jsonFlag   = flag.Bool("json", false, "print results as JSON")
	verbose    = flag.Bool("v", false, "log simulation events to stderr")
)

type report struct {
	Result  engine.Result      `json:"result"`
	Metrics map[string]float64 `json:"metrics"`
	Wall    time.Duration      `json:"wall"`
}

func main() {
	flag.Parse()

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	registry := level.NewRegistry()
	ids := registry.IDs()
	if *levelFlag != "" {
		if !registry.Has(*levelFlag) {
			fmt.Fprintf(os.Stderr, "unknown level %q\n", *levelFlag)
			os.Exit(2)
		}
		ids = []string{*levelFlag}
	}

	var reports []report
	for _, id := range ids {
		atk, err := attack.ByName(*attackFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		reports = append(reports, simulate(registry.ByID(id), atk, log))
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(reports)
		return
	}
	for _, r := range reports {
		printReport(r)
	}
}

// simulate runs l to completion as fast as possible
func simulate(l level.Level, atk attack.Attack, log zerolog.Logger) report {
	world := engine.NewWorld(log, *seedFlag)
	system.Register(world)
	game := engine.NewGameContext(world, *stepFlag)
	game.Start(l, atk)

	start := time.Now()
	var sinceAttack time.Duration
	for game.Step(*stepFlag) {
		sinceAttack += *stepFlag
		if *everyFlag <= 0 || sinceAttack < *everyFlag {
			continue
		}
		if target, ok := pickTarget(world); ok {
			game.UseAttack(target.X, target.Y)
			sinceAttack = 0
		}
	}

	return report{
		Result:  game.Result(),
		Metrics: world.Status.Values(),
		Wall:    time.Since(start),
	}
}

// pickTarget aims at the disruptive walker closest to any escalator
func pickTarget(world *engine.World) (vmath.Vec2, bool) {
	var (
		target vmath.Vec2
		found  bool
		best   float64
	)
	world.RunSafe(func() {
		for _, n := range world.NPCs() {
			if !n.IsWalking() || n.Disposition != component.Disruptive {
				continue
			}
			for _, e := range world.Escalators() {
				d := vmath.DistanceSq(n.Position(), e.Position)
				if !found || d < best {
					target, best, found = n.Position(), d, true
				}
			}
		}
	})
	return target, found
}

func printReport(r report) {
	res := r.Result
	fmt.Printf("== %s  score %d  (%s simulated in %s)\n", res.LevelID, res.Score, res.Elapsed, r.Wall.Round(time.Millisecond))
	fmt.Printf("   spawned %d  disruptive hit %d  compliant hit %d  exited %d  escaped %d\n",
		res.Spawned, res.DisruptiveHit, res.CompliantHit, res.CompliantExited, res.DisruptiveEscaped)

	keys := make([]string, 0, len(r.Metrics))
	for k := range r.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("   %-24s %g\n", k, r.Metrics[k])
	}
}
