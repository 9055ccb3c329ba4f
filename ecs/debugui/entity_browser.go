package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/hearth/ecs"
)

// EntityBrowser lists live entities and tracks the selected one.
type EntityBrowser struct {
	entities      []EntityInfo
	lastEntities  int
	lastArchetype int
	selected      ecs.EntityId
	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	page          int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	if perPage < 1 {
		perPage = 100
	}
	return &EntityBrowser{perPage: perPage, sortAscending: true}
}

// Selected returns the selected entity, or zero.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(storage)
	if !storage.Alive(eb.selected) {
		eb.selected = 0
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.page = 0
	}

	filtered := FilterEntities(eb.entities, eb.filterText)
	pages := max(1, (len(filtered)+eb.perPage-1)/eb.perPage)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.page * eb.perPage
		end := min(start+eb.perPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// refresh rebuilds the row cache when the entity or archetype count changed.
func (eb *EntityBrowser) refresh(storage *ecs.Storage) {
	entities, archetypes := storage.EntityCount(), len(storage.GetArchetypes())
	if eb.entities != nil && entities == eb.lastEntities && archetypes == eb.lastArchetype {
		return
	}
	eb.lastEntities, eb.lastArchetype = entities, archetypes
	eb.entities = CollectEntities(storage)
	if eb.entities == nil {
		eb.entities = []EntityInfo{}
	}
	SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
}
