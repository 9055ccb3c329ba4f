// Command ecs-stress drives the control and movement systems over a large
// population with synthetic input and entity churn, then prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/config"
	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
	"github.com/plus3/hearth/logging"
	"github.com/plus3/hearth/system"
	"github.com/plus3/hearth/vmath"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	duration := flag.Duration("duration", 10*time.Second, "total run time")
	entityCount := flag.Int("entities", 10000, "initial number of entities")
	controlled := flag.Float64("controlled", 0.1, "fraction of entities steered by input")
	churn := flag.Int("churn", 10, "entities destroyed and respawned per frame")
	parallel := flag.Bool("parallel", false, "run independent systems concurrently")
	profileMode := flag.String("profile", "", "write a profile: cpu, mem, block or trace")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "include GC pause metrics in the report")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	log, err := logging.New(config.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if *profileMode != "" {
		mode, err := profileOption(*profileMode)
		if err != nil {
			return err
		}
		defer profile.Start(mode, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))

	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(log.Named("scheduler")), ecs.WithParallel(*parallel))
	system.Register(scheduler)
	if err := scheduler.Build(); err != nil {
		return err
	}

	translator := input.NewTranslator(input.WithLogger(log.Named("input")))
	ecs.InsertResource(storage.Resources(), gametime.GameTime{})
	ecs.InsertResource(storage.Resources(), input.Events(nil))

	log.Info("populating", zap.Int("entities", *entityCount))
	live := make([]ecs.EntityId, 0, *entityCount)
	for range *entityCount {
		live = append(live, spawn(storage, rng, *controlled))
	}
	storage.Maintain()

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Controlled:     *controlled,
		Churn:          *churn,
		Parallel:       *parallel,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	clock := gametime.NewClock()
	script := newInputScript()
	start := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		frameStart := time.Now()
		now := clock.Tick()
		for _, raw := range script.next(now.Frame) {
			translator.TranslateEvent(raw, now)
		}
		ecs.InsertResource(storage.Resources(), now)
		ecs.InsertResource(storage.Resources(), translator.GetEvents(now))

		scheduler.Once(now.ElapsedSeconds())

		for range min(*churn, len(live)) {
			i := rng.IntN(len(live))
			storage.DestroyEntity(live[i])
			live[i] = spawn(storage, rng, *controlled)
		}
		storage.Maintain()

		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(frameStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	report.Storage = storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("finished", zap.Int64("updates", report.TotalUpdates))
	return report.Generate(os.Stdout)
}

func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "block":
		return profile.BlockProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	}
	return nil, fmt.Errorf("unknown profile mode %q", mode)
}

func spawn(storage *ecs.Storage, rng *rand.Rand, controlled float64) ecs.EntityId {
	pos := component.Position{Vec2: vmath.V2(rng.Float64()*1000, rng.Float64()*1000)}
	vel := component.Velocity{Vec2: vmath.V2(rng.Float64()*20-10, rng.Float64()*20-10)}
	b := storage.CreateEntity().With(pos, vel, component.NewRectangle(4, 4, color.RGBA{R: 200, G: 40, B: 40, A: 255}))
	if rng.Float64() < controlled {
		b = b.With(component.NewControl(controller.NewHuman()))
	}
	return b.Build()
}

// inputScript presses and releases the arrow keys in a fixed rotation so
// every repeat class shows up in the event stream.
type inputScript struct {
	keys []input.Key
	hold uint64
}

func newInputScript() *inputScript {
	return &inputScript{
		keys: []input.Key{input.KeyRight, input.KeyDown, input.KeyLeft, input.KeyUp},
		hold: 30,
	}
}

func (s *inputScript) next(frame uint64) []input.RawEvent {
	if frame%s.hold != 0 {
		return nil
	}
	turn := frame / s.hold
	prev := s.keys[(turn+uint64(len(s.keys))-1)%uint64(len(s.keys))]
	cur := s.keys[turn%uint64(len(s.keys))]
	return []input.RawEvent{
		input.KeyboardInput{State: input.Released, Key: prev},
		input.KeyboardInput{State: input.Pressed, Key: cur},
	}
}
