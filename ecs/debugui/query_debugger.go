package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hearth/ecs"
)

// QueryDebugger previews which archetypes a query over a chosen set of
// registered component types would visit.
type QueryDebugger struct {
	selected map[reflect.Type]bool
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selected: make(map[reflect.Type]bool)}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()
	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	registered := storage.Registry().Types()
	var types []reflect.Type
	for _, t := range registered {
		on := qd.selected[t]
		if imgui.Checkbox(t.String(), &on) {
			qd.selected[t] = on
		}
		if qd.selected[t] {
			types = append(types, t)
		}
	}
	imgui.Separator()

	if len(types) == 0 {
		imgui.Text("No component types selected")
		return
	}

	matches, total := MatchArchetypes(storage, types)
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matches)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", total))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("All Components")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		for _, m := range matches {
			imgui.TableNextRow()
			imgui.TableSetColumnIndex(0)
			imgui.Text(fmt.Sprintf("0x%X", m.ArchetypeID))
			imgui.TableSetColumnIndex(1)
			imgui.Text(fmt.Sprintf("%v", m.ComponentTypes))
			imgui.TableSetColumnIndex(2)
			imgui.Text(fmt.Sprintf("%d", m.EntityCount))
		}
		imgui.EndTable()
	}
}
