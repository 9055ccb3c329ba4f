package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hearth/ecs"
)

// ComponentInspector shows and edits the components of one entity.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, id ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if id.IsZero() {
		imgui.Text("No entity selected")
		return
	}
	archetype, ok := storage.EntityArchetype(id)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s is not alive", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component, ok := storage.GetComponent(id, compType)
		if !ok {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component).Elem()
			for _, field := range globalReflectionCache.GetFields(compType) {
				ci.renderField(storage, id, compType, field, val.FieldByIndex(field.Index))
			}
			imgui.TreePop()
		}
	}
}

func (ci *ComponentInspector) renderField(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type, field FieldInfo, val reflect.Value) {
	name := field.Name
	label := "##" + compType.String() + fmt.Sprint(field.Index)

	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Elem().Interface()))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.label(name)
		if imgui.InputInt(label, &v) {
			SetField(storage, id, compType, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.label(name)
		if imgui.InputInt(label, &v) && v >= 0 {
			SetField(storage, id, compType, field.Index, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.label(name)
		if imgui.InputFloat(label, &v) {
			SetField(storage, id, compType, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) {
			SetField(storage, id, compType, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		ci.label(name)
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			SetField(storage, id, compType, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nested := range globalReflectionCache.GetFields(val.Type()) {
				nested.Index = append(append([]int(nil), field.Index...), nested.Index...)
				ci.renderField(storage, id, compType, nested, val.FieldByIndex(nested.Index[len(field.Index):]))
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Interface:
		if val.IsNil() {
			imgui.Text(name + ": nil")
			return
		}
		imgui.Text(fmt.Sprintf("%s: %T", name, val.Interface()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ci *ComponentInspector) label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
