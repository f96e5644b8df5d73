package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slingshot/config"
	"github.com/lixenwraith/slingshot/engine"
	"github.com/lixenwraith/slingshot/input"
	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
	"github.com/lixenwraith/slingshot/render"
)

var (
	debugFlag = flag.Bool("debug", false, "Write logs to logs/slingshot.log")
	envFlag   = flag.String("env", "", "Env file to read (default .env when present)")
	rowsFlag  = flag.Int("rows", -1, "Pyramid rows, overrides SLINGSHOT_ROWS")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *rowsFlag >= 0 {
		cfg.Game.Rows = *rowsFlag
	}
	cfg = cfg.Normalize()

	logger, logFile := setupLogging(cfg.Debug, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	// Panic recovery: restore the terminal before printing the stack
	defer func() {
		if r := recover(); r != nil {
			handleCrash(screen, logger, r)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	if err := run(screen, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("game exited")
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns the game loop until the player quits
func run(screen tcell.Screen, cfg config.Config, logger zerolog.Logger) error {
	renderer := render.NewRenderer(screen)
	world := physics.NewWorld(physics.DefaultOptions())

	tracker := input.NewTracker(world, logger)
	cols, _ := screen.Size()
	tracker.SetResetButton(render.ResetButton(cols))

	ctrl := engine.NewController(cfg.Game, func() engine.World { return world }, engine.NewMonotonicTimeProvider(), logger)
	width, height := renderer.Viewport()
	if err := ctrl.Start(engine.Viewport{Width: width, Height: height}, tracker); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	defer ctrl.Teardown()

	eventChan := make(chan tcell.Event, parameter.InputChannelSize)
	// Input polling blocks on the terminal, it never touches game state
	goSafe(screen, logger, func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	physicsTicker := time.NewTicker(parameter.PhysicsStepInterval)
	defer physicsTicker.Stop()
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	last := time.Now()
	var lag time.Duration

	for {
		select {
		case ev := <-eventChan:
			switch tracker.HandleEvent(ev) {
			case input.ActionQuit:
				logger.Info().Int("score", ctrl.Score()).Msg("quit")
				return nil
			case input.ActionReset:
				tracker.Cancel()
				ctrl.RequestReset()
			case input.ActionResize:
				screen.Sync()
				cols, _ := screen.Size()
				tracker.SetResetButton(render.ResetButton(cols))
			}
			// Dispatch input-driven events without waiting for the next step
			ctrl.Tick()

		case now := <-physicsTicker.C:
			lag += now.Sub(last)
			last = now
			steps := 0
			for lag >= parameter.PhysicsStepInterval && steps < parameter.MaxStepsPerTick {
				if err := world.Step(parameter.PhysicsStepInterval); err != nil {
					return fmt.Errorf("physics step: %w", err)
				}
				ctrl.Tick()
				lag -= parameter.PhysicsStepInterval
				steps++
			}
			if steps == parameter.MaxStepsPerTick {
				// fell behind, drop the backlog
				lag = 0
			}

		case <-frameTicker.C:
			snap := ctrl.Snapshot()
			renderer.Draw(world, render.HUD{Score: snap.Score, State: snap.State.String()})
		}
	}
}
