package component_test

import (
	"image/color"
	"testing"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewControl(t *testing.T) {
	assert.Panics(t, func() { component.NewControl(nil) })

	human := controller.NewHuman()
	c := component.NewControl(human)
	assert.Same(t, human, c.Controller)
}

func TestRender(t *testing.T) {
	r := component.NewRectangle(50, 20, color.RGBA{A: 255})
	assert.Equal(t, 50.0, r.Rect.Width)
	assert.Equal(t, '#', r.RuneOrDefault())
	assert.Equal(t, "Rectangle(50x20)", r.String())

	r.Glyph = '@'
	assert.Equal(t, '@', r.RuneOrDefault())
}

func TestRegister(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	component.Register(registry)

	storage := ecs.NewStorage(registry)
	id := storage.CreateEntity().With(
		component.Position{Vec2: vmath.V2(1, 2)},
		component.Velocity{},
		component.NewControl(controller.None{}),
		component.NewRectangle(10, 10, color.RGBA{}),
	).Build()
	storage.Maintain()

	pos, ok := ecs.ReadComponent[component.Position](storage, id)
	require.True(t, ok)
	assert.Equal(t, vmath.V2(1, 2), pos.Vec2)

	ctrl, ok := ecs.ReadComponent[component.Control](storage, id)
	require.True(t, ok)
	assert.Equal(t, controller.None{}, ctrl.Controller)
}
