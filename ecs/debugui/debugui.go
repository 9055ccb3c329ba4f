// Package debugui provides Dear ImGui debug panels for a running world.
// Panels are ImguiItem entities; ImguiSystem defers their render functions
// to the end of maintenance so they run inside the backend's frame.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a resource reporting whether ImGui wants the mouse or
// keyboard this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CaptureFunc reports ImGui's current input capture state.
type CaptureFunc func() ImguiInputState

// CurrentCapture reads the capture flags from the active ImGui context.
func CurrentCapture() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// ImguiSystem queues every ImguiItem's render function and refreshes the
// ImguiInputState resource.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Write[ImguiInputState]

	// Capture defaults to CurrentCapture.
	Capture CaptureFunc
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	capture := i.Capture
	if capture == nil {
		capture = CurrentCapture
	}
	*i.InputState.Get() = capture()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// Source is what the panels observe besides the storage.
type Source interface {
	Translator() *input.Translator
	Frames() *gametime.FrameCounter
	Time() gametime.GameTime
}

// Panels installs the stock debug windows into a world. Install it as a
// plugin, then Attach the running game once it exists; until then the
// windows render nothing.
type Panels struct {
	// Capture is handed to the ImguiSystem.
	Capture CaptureFunc

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	system    *ImguiSystem

	browser   *EntityBrowser
	inspector *ComponentInspector
	queries   *QueryDebugger
	stats     *PerformanceStats
	input     *InputViewer
}

func NewPanels() *Panels {
	return &Panels{
		browser:   NewEntityBrowser(50),
		inspector: NewComponentInspector(),
		queries:   NewQueryDebugger(),
	}
}

func (p *Panels) RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

func (p *Panels) Setup(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	p.storage = storage
	p.scheduler = scheduler

	ecs.InsertResource(storage.Resources(), ImguiInputState{})
	p.system = &ImguiSystem{Capture: p.Capture}
	scheduler.Register(p.system, ecs.WithName("imgui"))

	for _, render := range []func(){p.renderEntities, p.renderQueries, p.renderStats, p.renderInput} {
		storage.CreateEntity().With(ImguiItem{Render: render}).Build()
	}
}

// Attach wires the panels that need more than the storage.
func (p *Panels) Attach(src Source) {
	p.stats = NewPerformanceStats(src.Frames(), p.scheduler)
	p.input = NewInputViewer(src.Translator(), func() time.Duration { return src.Time().FrameStart })
}

func (p *Panels) renderEntities() {
	p.browser.Render(p.storage)
	p.inspector.Render(p.storage, p.browser.Selected())
}

func (p *Panels) renderQueries() {
	p.queries.Render(p.storage)
}

func (p *Panels) renderStats() {
	if p.stats != nil {
		p.stats.Render(p.storage)
	}
}

func (p *Panels) renderInput() {
	if p.input != nil {
		p.input.Render(p.storage)
	}
}
