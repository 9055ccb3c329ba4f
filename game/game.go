// Package game wires the world together and advances it one frame at a time.
package game

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/config"
	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
	"github.com/plus3/hearth/system"
	"github.com/plus3/hearth/vmath"
)

// Command names understood by the game.
const (
	CommandQuit  = "quit"
	CommandReset = "reset"
)

// Game owns the world and the per-frame pipeline from raw input to
// applied structural changes.
type Game struct {
	cfg        *config.Config
	logger     *zap.Logger
	clock      *gametime.Clock
	registry   *ecs.ComponentRegistry
	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	translator *input.Translator
	bindings   *input.InputMap
	frames     *gametime.FrameCounter

	quit  input.Command
	reset input.Command

	newController func() controller.Controller
	plugins       []Plugin

	player        ecs.EntityId
	lastEvents    input.Events
	quitRequested bool
}

// Option configures a Game.
type Option func(*Game)

// WithTimeSource drives the frame clock from source.
func WithTimeSource(source gametime.TimeSource) Option {
	return func(g *Game) {
		g.clock = newClock(g.cfg, source)
	}
}

// WithController replaces the player's controller. newController is called
// for every player spawn, including resets.
func WithController(newController func() controller.Controller) Option {
	return func(g *Game) {
		g.newController = newController
	}
}

// Plugin extends the world with its own components and systems.
type Plugin interface {
	RegisterComponents(registry *ecs.ComponentRegistry)
	Setup(storage *ecs.Storage, scheduler *ecs.Scheduler)
}

// WithPlugin installs p before the scheduler is built.
func WithPlugin(p Plugin) Option {
	return func(g *Game) {
		g.plugins = append(g.plugins, p)
	}
}

func newClock(cfg *config.Config, source gametime.TimeSource) *gametime.Clock {
	return gametime.NewClock(gametime.WithTimeSource(source), gametime.WithMaxDelta(cfg.Sim.MaxDelta))
}

// New builds the world described by cfg and spawns the player.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		registry: ecs.NewComponentRegistry(),
		frames:   gametime.NewFrameCounter(120),
	}
	g.newController = func() controller.Controller {
		return &controller.Human{Rate: cfg.Control.AccelerationRate}
	}
	g.clock = newClock(cfg, gametime.SystemSource{})
	for _, opt := range opts {
		opt(g)
	}

	component.Register(g.registry)
	for _, p := range g.plugins {
		p.RegisterComponents(g.registry)
	}
	g.storage = ecs.NewStorage(g.registry)
	g.translator = input.NewTranslator(
		input.WithTextRepeat(cfg.Input.TextRepeat),
		input.WithLogger(logger.Named("input")),
	)

	directory := input.NewCommandDirectory()
	g.quit = directory.Register(CommandQuit)
	g.reset = directory.Register(CommandReset)
	g.bindings = input.NewInputMap(directory)
	for _, name := range slices.Sorted(maps.Keys(cfg.Input.Bindings)) {
		if err := g.bindings.BindString(cfg.Input.Bindings[name], name); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}

	g.scheduler = ecs.NewScheduler(g.storage,
		ecs.WithLogger(logger.Named("scheduler")),
		ecs.WithParallel(cfg.Sim.Parallel),
	)
	system.Register(g.scheduler)
	for _, p := range g.plugins {
		p.Setup(g.storage, g.scheduler)
	}
	if err := g.scheduler.Build(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	ecs.InsertResource(g.storage.Resources(), gametime.GameTime{})
	ecs.InsertResource(g.storage.Resources(), input.Events(nil))

	g.player = g.spawnPlayer()
	g.storage.Maintain()

	logger.Info("world ready",
		zap.Stringer("player", g.player),
		zap.Strings("systems", g.scheduler.Order()),
		zap.Int("bindings", g.bindings.Len()),
	)
	return g, nil
}

func (g *Game) spawnPlayer() ecs.EntityId {
	p := g.cfg.Player
	centre := vmath.V2(
		float64(g.cfg.Window.Width)/2-p.Width/2,
		float64(g.cfg.Window.Height)/2-p.Height/2,
	)
	render := component.NewRectangle(p.Width, p.Height, rgba(p.Color))
	render.Glyph = g.cfg.PlayerGlyph()

	return g.storage.CreateEntity().With(
		component.Position{Vec2: centre},
		component.Velocity{},
		component.NewControl(g.newController()),
		render,
	).Build()
}

func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Step runs one frame over the raw events gathered since the previous one.
// It reports false once the window has been closed or quit was requested.
func (g *Game) Step(raw []input.RawEvent) bool {
	now := g.clock.Tick()
	for _, ev := range raw {
		g.translator.TranslateEvent(ev, now)
	}
	closed := g.translator.CloseRequested()

	resources := g.storage.Resources()
	ecs.InsertResource(resources, now)
	events := g.translator.GetEvents(now)
	ecs.InsertResource(resources, events)
	g.lastEvents = events

	for _, cmd := range g.bindings.Commands(events) {
		g.handle(cmd)
	}

	g.scheduler.Once(now.ElapsedSeconds())
	g.storage.Maintain()
	g.frames.Tick(now)

	if closed {
		g.logger.Info("close requested", zap.Uint64("frame", now.Frame))
	}
	return !closed && !g.quitRequested
}

func (g *Game) handle(cmd input.Command) {
	g.logger.Debug("command", zap.String("name", cmd.Name))
	switch cmd.ID {
	case g.quit.ID:
		g.quitRequested = true
	case g.reset.ID:
		g.storage.DestroyEntity(g.player)
		g.player = g.spawnPlayer()
	default:
		g.logger.Debug("unhandled command", zap.String("name", cmd.Name))
	}
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Storage returns the world storage.
func (g *Game) Storage() *ecs.Storage { return g.storage }

// Scheduler returns the system scheduler.
func (g *Game) Scheduler() *ecs.Scheduler { return g.scheduler }

// Translator returns the input translator.
func (g *Game) Translator() *input.Translator { return g.translator }

// Bindings returns the command bindings.
func (g *Game) Bindings() *input.InputMap { return g.bindings }

// Frames returns the frame timing history.
func (g *Game) Frames() *gametime.FrameCounter { return g.frames }

// Player returns the current player entity. After a reset the new id is
// live from the next frame.
func (g *Game) Player() ecs.EntityId { return g.player }

// Time returns the timing of the latest frame.
func (g *Game) Time() gametime.GameTime { return g.clock.Current() }

// Events returns the event batch of the latest frame.
func (g *Game) Events() input.Events { return g.lastEvents }

// QuitRequested reports whether the quit command has fired.
func (g *Game) QuitRequested() bool { return g.quitRequested }
