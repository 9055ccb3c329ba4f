package render_test

import (
	"image/color"
	"testing"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/render"
	"github.com/plus3/hearth/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneCollect(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	storage := ecs.NewStorage(registry)

	red := color.RGBA{R: 255, A: 255}
	box := storage.CreateEntity().With(
		component.Position{Vec2: vmath.V2(10, 20)},
		component.NewRectangle(5, 6, red),
	).Build()
	storage.CreateEntity().With(component.Position{Vec2: vmath.V2(1, 1)}).Build()
	storage.Maintain()

	scene := render.NewScene(storage)
	rects := scene.Collect()
	require.Len(t, rects, 1)
	assert.Equal(t, render.Rect{
		Entity: box, X: 10, Y: 20, Width: 5, Height: 6, Color: red, Glyph: '#',
	}, rects[0])

	storage.DestroyEntity(box)
	storage.Maintain()
	assert.Empty(t, scene.Collect())
}
