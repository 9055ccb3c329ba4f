package game_test

import (
	"testing"
	"time"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/config"
	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/game"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
	"github.com/plus3/hearth/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const frame = 100 * time.Millisecond

func newGame(t *testing.T, opts ...game.Option) (*game.Game, *gametime.ManualSource) {
	t.Helper()
	source := gametime.NewManualSource(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	g, err := game.New(config.Defaults(), zaptest.NewLogger(t), append([]game.Option{game.WithTimeSource(source)}, opts...)...)
	require.NoError(t, err)
	return g, source
}

func step(g *game.Game, source *gametime.ManualSource, raw ...input.RawEvent) bool {
	source.Advance(frame)
	return g.Step(raw)
}

func playerState(t *testing.T, g *game.Game) (pos, vel vmath.Vec2) {
	t.Helper()
	p, ok := ecs.ReadComponent[component.Position](g.Storage(), g.Player())
	require.True(t, ok)
	v, ok := ecs.ReadComponent[component.Velocity](g.Storage(), g.Player())
	require.True(t, ok)
	return p.Vec2, v.Vec2
}

func TestNew(t *testing.T) {
	g, _ := newGame(t)

	assert.True(t, g.Storage().Alive(g.Player()))
	assert.Equal(t, 1, g.Storage().EntityCount())
	assert.Equal(t, []string{"control", "movement"}, g.Scheduler().Order())
	assert.Equal(t, 2, g.Bindings().Len())

	pos, vel := playerState(t, g)
	assert.Equal(t, vmath.V2(575, 375), pos)
	assert.True(t, vel.IsZero())

	render, ok := ecs.ReadComponent[component.Render](g.Storage(), g.Player())
	require.True(t, ok)
	assert.Equal(t, 50.0, render.Rect.Width)
	assert.Equal(t, '@', render.Glyph)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sim.TPS = 0
	_, err := game.New(cfg, nil)
	assert.ErrorContains(t, err, "sim.tps")
}

func TestStep(t *testing.T) {
	t.Run("idle frames keep the player still", func(t *testing.T) {
		g, source := newGame(t)
		for range 5 {
			require.True(t, step(g, source))
		}
		pos, _ := playerState(t, g)
		assert.Equal(t, vmath.V2(575, 375), pos)
		assert.Equal(t, uint64(5), g.Time().Frame)
		assert.Equal(t, 5*frame, g.Time().Total)
	})

	t.Run("a held arrow key accelerates every frame", func(t *testing.T) {
		g, source := newGame(t)

		require.True(t, step(g, source, input.KeyboardInput{State: input.Pressed, Key: input.KeyRight}))
		assert.Equal(t, input.Events{
			input.VirtKeyEvent(input.KeyRight, input.Modifiers{}, input.NoRepeat()),
		}, g.Events())
		pos, vel := playerState(t, g)
		assert.InDelta(t, 40, vel.X, 1e-9)
		assert.InDelta(t, 579, pos.X, 1e-9)

		require.True(t, step(g, source))
		assert.Equal(t, input.Events{
			input.VirtKeyEvent(input.KeyRight, input.Modifiers{}, input.EarlyRepeat(frame)),
		}, g.Events())
		pos, vel = playerState(t, g)
		assert.InDelta(t, 80, vel.X, 1e-9)
		assert.InDelta(t, 587, pos.X, 1e-9)

		require.True(t, step(g, source, input.KeyboardInput{State: input.Released, Key: input.KeyRight}))
		assert.Empty(t, g.Events())
		pos, vel = playerState(t, g)
		assert.InDelta(t, 80, vel.X, 1e-9)
		assert.InDelta(t, 595, pos.X, 1e-9)
		assert.Equal(t, 375.0, pos.Y)
	})

	t.Run("focus loss stops acceleration", func(t *testing.T) {
		g, source := newGame(t)
		step(g, source, input.KeyboardInput{State: input.Pressed, Key: input.KeyDown})
		step(g, source, input.Focused{Focused: false})

		assert.Empty(t, g.Events())
		assert.Empty(t, g.Translator().Held())
	})

	t.Run("close request ends the loop", func(t *testing.T) {
		g, source := newGame(t)
		assert.False(t, step(g, source, input.CloseRequested{}))
		assert.False(t, g.Translator().CloseRequested())
	})

	t.Run("quit binding ends the loop", func(t *testing.T) {
		g, source := newGame(t)
		require.True(t, step(g, source, input.KeyboardInput{State: input.Pressed, Key: input.KeyA}))
		assert.False(t, step(g, source, input.KeyboardInput{State: input.Pressed, Key: input.KeyEscape}))
		assert.True(t, g.QuitRequested())
	})

	t.Run("reset respawns the player", func(t *testing.T) {
		g, source := newGame(t)
		step(g, source, input.KeyboardInput{State: input.Pressed, Key: input.KeyLeft})
		step(g, source, input.KeyboardInput{State: input.Released, Key: input.KeyLeft})
		old := g.Player()

		require.True(t, step(g, source, input.ReceivedCharacter{Char: 'r'}))
		assert.NotEqual(t, old, g.Player())
		assert.False(t, g.Storage().Alive(old))
		assert.True(t, g.Storage().Alive(g.Player()))
		assert.Equal(t, 1, g.Storage().EntityCount())

		pos, vel := playerState(t, g)
		assert.Equal(t, vmath.V2(575, 375), pos)
		assert.True(t, vel.IsZero())
	})

	t.Run("custom controller", func(t *testing.T) {
		g, source := newGame(t, game.WithController(func() controller.Controller {
			return controller.Func(func(_ ecs.EntityId, _ gametime.GameTime, vel *vmath.Vec2, _ input.Events) {
				vel.Y = 10
			})
		}))
		step(g, source)
		pos, _ := playerState(t, g)
		assert.InDelta(t, 376, pos.Y, 1e-9)
	})

	t.Run("frame history", func(t *testing.T) {
		g, source := newGame(t)
		for range 3 {
			step(g, source)
		}
		assert.Equal(t, frame, g.Frames().AverageFrameTime())
	})
}

type ticks struct{ N int }

type tickSystem struct {
	Counters ecs.Query[struct {
		Ticks *ticks `ecs:"write"`
	}]
}

func (s *tickSystem) Execute(*ecs.UpdateFrame) {
	for c := range s.Counters.Values() {
		c.Ticks.N++
	}
}

type tickPlugin struct {
	counter ecs.EntityId
}

func (p *tickPlugin) RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ticks](registry)
}

func (p *tickPlugin) Setup(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	scheduler.Register(&tickSystem{}, ecs.WithName("ticks"), ecs.RunsAfterNamed("movement"))
	p.counter = storage.CreateEntity().With(ticks{}).Build()
}

func TestPlugin(t *testing.T) {
	plugin := &tickPlugin{}
	g, source := newGame(t, game.WithPlugin(plugin))

	assert.Equal(t, []string{"control", "movement", "ticks"}, g.Scheduler().Order())
	assert.Equal(t, 2, g.Storage().EntityCount())
	require.True(t, g.Storage().Alive(plugin.counter))

	step(g, source)
	step(g, source)

	n, ok := ecs.ReadComponent[ticks](g.Storage(), plugin.counter)
	require.True(t, ok)
	assert.Equal(t, 2, n.N)
}
