package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/status"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// GameContext owns one level run: the world, the score and the step clock
// Created at level start and dropped at level end; every mutation goes through World.RunSafe
type GameContext struct {
	// ===== Immutable After Init =====

	World *World
	step  time.Duration

	// ===== Guarded by World.RunSafe =====

	State     GameState
	listeners []func(Event)

	// ===== Cached metric cells =====

	statActive *atomic.Int64
	statScore  *atomic.Int64
	statFrame  *atomic.Int64
	statQueued *atomic.Int64
	statDt     *status.AtomicFloat
}

// NewGameContext wraps a world whose systems are already registered
// step is the nominal simulation step, zero selects parameter.SimulationStep
func NewGameContext(world *World, step time.Duration) *GameContext {
	if step <= 0 {
		step = parameter.SimulationStep
	}
	reg := world.Status
	return &GameContext{
		World:      world,
		step:       step,
		statActive: reg.Ints.Get("npc.active"),
		statScore:  reg.Ints.Get("game.score"),
		statFrame:  reg.Ints.Get("sim.frame"),
		statQueued: reg.Ints.Get("queue.total"),
		statDt:     reg.Floats.Get("sim.dt_ms"),
	}
}

// Subscribe registers fn for every consumed event; called on the simulation goroutine
func (g *GameContext) Subscribe(fn func(Event)) {
	g.World.RunSafe(func() {
		g.listeners = append(g.listeners, fn)
	})
}

// NominalStep returns the configured simulation step
func (g *GameContext) NominalStep() time.Duration {
	return g.step
}

// Start loads l, arms atk and resets the score
func (g *GameContext) Start(l level.Level, atk attack.Attack) {
	g.World.RunSafe(func() {
		g.World.LoadLevel(l)
		g.World.Attack = atk
		if atk != nil {
			atk.Reset()
		}
		g.State = GameState{
			Duration: l.Duration,
			Running:  true,
		}
		g.World.InitSystems()
		g.publish()

		g.World.Log.Info().
			Str("level", l.ID).
			Int("escalators", len(l.Escalators)).
			Int("tracks", len(l.TrainStops)).
			Dur("duration", l.Duration).
			Msg("level started")
	})
}

// Step advances the simulation by one clamped step of elapsed wall time
// Returns false once the level is over
func (g *GameContext) Step(elapsed time.Duration) bool {
	running := false
	g.World.RunSafe(func() {
		if !g.State.Running {
			return
		}
		dt := ClampDelta(elapsed, g.step)
		if dt > 0 {
			g.World.Time.Advance(dt)
			g.World.UpdateLocked()
			g.State.Elapsed += dt
			g.statDt.Set(float64(dt) / float64(time.Millisecond))
		}
		g.dispatch()

		if g.State.Elapsed >= g.State.Duration {
			g.finish()
		}
		g.publish()
		running = g.State.Running
	})
	return running
}

// UseAttack fires the armed attack at (x, y); safe at any time, cooldown-gated
func (g *GameContext) UseAttack(x, y float64) []attack.Hit {
	var hits []attack.Hit
	g.World.RunSafe(func() {
		w := g.World
		if !g.State.Running || w.Attack == nil {
			return
		}
		p := vmath.V(x, y)
		var ok bool
		hits, ok = w.Attack.Use(p, w)
		if !ok {
			return
		}
		w.PushEventAt(EventAttackUsed, p)
		if len(hits) > 0 {
			w.SyncQueues()
		}
		for _, h := range hits {
			w.Events.Push(Event{
				Type:        EventNPCEliminated,
				NPC:         h.ID,
				Disposition: h.Disposition,
				Position:    h.Position,
				Frame:       w.Time.FrameNumber,
			})
		}
		g.dispatch()
		g.publish()

		w.Log.Debug().
			Str("attack", w.Attack.Name()).
			Float64("x", x).
			Float64("y", y).
			Int("hits", len(hits)).
			Msg("attack used")
	})
	return hits
}

// Stop ends the run early
func (g *GameContext) Stop() Result {
	var r Result
	g.World.RunSafe(func() {
		if g.State.Running {
			g.finish()
		}
		r = g.result()
	})
	return r
}

// Running reports whether the level is still in progress
func (g *GameContext) Running() bool {
	var running bool
	g.World.RunSafe(func() { running = g.State.Running })
	return running
}

// Result returns the current score summary
func (g *GameContext) Result() Result {
	var r Result
	g.World.RunSafe(func() { r = g.result() })
	return r
}

func (g *GameContext) result() Result {
	s := &g.State
	return Result{
		LevelID:           g.World.Level.ID,
		Score:             s.Score,
		Elapsed:           s.Elapsed,
		Spawned:           s.Spawned,
		DisruptiveHit:     s.Eliminated[1],
		CompliantHit:      s.Eliminated[0],
		CompliantExited:   s.Exited[0],
		DisruptiveEscaped: s.Exited[1],
	}
}

func (g *GameContext) finish() {
	g.State.Running = false
	g.State.Over = true
	g.World.PushEventAt(EventGameOver, vmath.Vec2{})
	g.dispatch()

	g.World.Log.Info().
		Str("level", g.World.Level.ID).
		Int("score", g.State.Score).
		Dur("elapsed", g.State.Elapsed).
		Msg("game over")
}

// dispatch folds buffered events into the score and fans them out
func (g *GameContext) dispatch() {
	for _, ev := range g.World.Events.Consume() {
		g.State.apply(ev)
		for _, fn := range g.listeners {
			fn(ev)
		}
	}
}

func (g *GameContext) publish() {
	w := g.World
	g.statActive.Store(int64(w.ActiveCount()))
	g.statScore.Store(int64(g.State.Score))
	g.statFrame.Store(w.Time.FrameNumber)
	queued := 0
	for _, e := range w.Escalators() {
		queued += e.QueueLen()
	}
	g.statQueued.Store(int64(queued))
}
