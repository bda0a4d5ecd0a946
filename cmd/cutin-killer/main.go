package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/audio"
	"github.com/lixenwraith/cutin-killer/config"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/logging"
	"github.com/lixenwraith/cutin-killer/network"
	"github.com/lixenwraith/cutin-killer/render"
	"github.com/lixenwraith/cutin-killer/status"
	"github.com/lixenwraith/cutin-killer/storage"
	"github.com/lixenwraith/cutin-killer/system"
)

// screen is package level so the crash handler can restore the terminal
var screen tcell.Screen

func main() {
	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCUTIN-KILLER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cutin-killer: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.NewFlagSet("cutin-killer")
	scores := fs.Bool("scores", false, "print high scores and exit")
	clearScores := fs.Bool("clear-scores", false, "delete all high scores and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	configDir, _ := fs.GetString("config")

	if err := config.Load(configDir); err != nil {
		return err
	}
	if err := config.BindFlags(fs); err != nil {
		return err
	}
	settings, err := config.Current()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	levels, err := settings.Registry()
	if err != nil {
		return err
	}

	opts := logging.Options{Enabled: true, Dir: settings.LogsDir, Level: settings.LogLevel}
	if settings.Debug {
		opts.Level = "debug"
	}
	log, logCloser, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	if f := config.ConfigFile(); f != "" {
		log.Info().Str("file", f).Msg("config loaded")
	}

	store, err := storage.Open(settings.Storage, log)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case *clearScores:
		return store.Clear()
	case *scores:
		return printScores(store)
	}

	lvl := levels.ByID(settings.Level)
	atk, err := attack.ByName(settings.Attack)
	if err != nil {
		return err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	world := engine.NewWorld(log, seed)
	system.Register(world)
	game := engine.NewGameContext(world, settings.Step())

	exporter := status.NewExporter(settings.OTel.Enabled)
	defer exporter.Close()

	if settings.Audio.Enabled {
		player := audio.NewPlayer(settings.Audio.Volume, log)
		if err := player.Start(); err != nil {
			log.Warn().Err(err).Msg("audio start failed, continuing without audio")
		} else {
			defer player.Stop()
			game.Subscribe(player.Handle)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var commands <-chan network.Command
	if settings.Stream.Enabled {
		cfg := network.DefaultConfig()
		cfg.Address = settings.Stream.Address
		cfg.Interval = settings.Stream.Interval()
		srv := network.NewServer(cfg, log)
		if err := srv.Start(); err != nil {
			return err
		}
		defer srv.Stop()
		game.Subscribe(srv.BroadcastEvent)
		go srv.Run(ctx, game.Snapshot)
		commands = srv.Commands()
	}

	game.Start(lvl, atk)
	// Gauges bind to metrics present after the first level load
	if err := exporter.Bind(world.Status); err != nil {
		log.Warn().Err(err).Msg("metrics export disabled")
	}

	best, err := storage.BestScore(store, lvl.ID)
	if err != nil {
		log.Warn().Err(err).Msg("high score lookup failed")
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	orchestrator := render.NewDefaultOrchestrator(screen)
	input := render.NewInput(orchestrator.Canvas())

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(game.NominalStep())
	defer ticker.Stop()
	last := time.Now()
	submitted := false

	for {
		select {
		case ev := <-eventChan:
			act := input.Translate(ev)
			switch act.Kind {
			case render.ActionQuit:
				// Abandoned runs are not recorded
				game.Stop()
				return nil
			case render.ActionAttack:
				game.UseAttack(act.Target.X, act.Target.Y)
			case render.ActionResize:
				orchestrator.Resize()
			}

		case cmd := <-commands:
			game.UseAttack(cmd.Target.X, cmd.Target.Y)

		case now := <-ticker.C:
			running := game.Step(now.Sub(last))
			last = now

			snap := game.Snapshot()
			orchestrator.Render(&snap)

			if !running && !submitted {
				submitted = true
				submit(store, game.Result(), best, log)
			}
		}
	}
}

// submit stores r as a high score when it beats the stored record
func submit(store storage.Store, r engine.Result, best int, log zerolog.Logger) {
	stored, err := store.Submit(storage.Record{
		LevelID:       r.LevelID,
		Score:         r.Score,
		DisruptiveHit: r.DisruptiveHit,
		CompliantHit:  r.CompliantHit,
		Exited:        r.CompliantExited + r.DisruptiveEscaped,
	})
	if err != nil {
		log.Error().Err(err).Msg("high score not saved")
		return
	}
	log.Info().
		Str("level", r.LevelID).
		Int("score", r.Score).
		Int("previous", best).
		Bool("record", stored).
		Msg("run finished")
}

func printScores(store storage.Store) error {
	records, err := store.All()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("no high scores yet")
	}
	for _, r := range records {
		fmt.Printf("%-12s %6d  hits %d/%d  exited %d  %s\n",
			r.LevelID, r.Score, r.DisruptiveHit, r.CompliantHit, r.Exited,
			r.Achieved.Format(time.DateOnly))
	}
	return nil
}
