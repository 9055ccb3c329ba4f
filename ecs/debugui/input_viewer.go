package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/input"
)

// HeldButton is one row of the input viewer.
type HeldButton struct {
	Button input.Button
	Held   time.Duration
}

// InputSnapshot is what the input viewer shows for one frame.
type InputSnapshot struct {
	Modifiers input.Modifiers
	Held      []HeldButton
	Events    []string
}

// SnapshotInput reads the translator's held table at frameStart together
// with the frame's published Events resource, if any.
func SnapshotInput(tr *input.Translator, storage *ecs.Storage, frameStart time.Duration) InputSnapshot {
	snap := InputSnapshot{Modifiers: tr.Modifiers()}
	for _, b := range tr.Held() {
		since, _ := tr.HeldSince(b)
		snap.Held = append(snap.Held, HeldButton{Button: b, Held: frameStart - since})
	}
	if ecs.HasResource[input.Events](storage.Resources()) {
		for _, e := range ecs.ReadResource[input.Events](storage.Resources()) {
			snap.Events = append(snap.Events, e.String())
		}
	}
	return snap
}

// InputViewer shows held buttons and the latest event batch.
type InputViewer struct {
	translator *input.Translator
	frameStart func() time.Duration
}

// NewInputViewer creates the panel. frameStart reports the current frame's start time.
func NewInputViewer(tr *input.Translator, frameStart func() time.Duration) *InputViewer {
	return &InputViewer{translator: tr, frameStart: frameStart}
}

func (iv *InputViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Input", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	snap := SnapshotInput(iv.translator, storage, iv.frameStart())
	imgui.Text("Modifiers: " + snap.Modifiers.String())
	imgui.Text(fmt.Sprintf("Text repeat after: %s", iv.translator.TextRepeat()))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("HeldTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Held")
		imgui.TableSetupColumn("For")
		imgui.TableHeadersRow()
		for _, h := range snap.Held {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(h.Button.String())
			imgui.TableNextColumn()
			imgui.Text(h.Held.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr(fmt.Sprintf("Events (%d)", len(snap.Events))) {
		for _, e := range snap.Events {
			imgui.BulletText(e)
		}
		imgui.TreePop()
	}
}
