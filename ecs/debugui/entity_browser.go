package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowser is a filterable, sortable, paged list of every entity.
type EntityBrowser struct {
	entities    []EntityInfo
	selectedRef *ecs.EntityRef

	filterText        string
	filterArchetypeId *uint32
	pageSize          int
	currentPage       int
	sortColumn        int
	sortAscending     bool

	// Selected follows the selected entity across archetype moves and is 0
	// once it is deleted.
	Selected ecs.EntityId
}

func NewEntityBrowser(pageSize int) *EntityBrowser {
	return &EntityBrowser{
		pageSize:      max(1, pageSize),
		sortAscending: true,
	}
}

// CollectEntities lists every live entity with its component type names.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	entities := make([]EntityInfo, 0, 1024)
	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return entities
}

// SortEntities orders entities by column: 0 id, 1 archetype, 2 component
// names, 3 component count.
func SortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 3:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// FilterEntities keeps entities whose id, archetype id, or component names
// contain text (case-insensitive), restricted to archetype when non-nil.
func FilterEntities(entities []EntityInfo, text string, archetype *uint32) []EntityInfo {
	if text == "" && archetype == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	needle := strings.ToLower(text)
	for _, entity := range entities {
		if archetype != nil && entity.ArchetypeID != *archetype {
			continue
		}
		if needle != "" {
			id := fmt.Sprintf("%d", entity.ID)
			arch := fmt.Sprintf("0x%x", entity.ArchetypeID)
			comps := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
			if !strings.Contains(id, needle) && !strings.Contains(arch, needle) && !strings.Contains(comps, needle) {
				continue
			}
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

// PageRange returns the [start, end) slice bounds of page and the page
// count. page is clamped into range.
func PageRange(total, page, size int) (start, end, pages int) {
	size = max(1, size)
	pages = max(1, (total+size-1)/size)
	page = min(max(0, page), pages-1)
	start = page * size
	end = min(total, start+size)
	return start, end, pages
}

// Refresh rebuilds the entity list and re-resolves the selection.
func (eb *EntityBrowser) Refresh(storage *ecs.Storage) {
	eb.entities = CollectEntities(storage)
	SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	id, ok := storage.ResolveEntityRef(eb.selectedRef)
	if !ok {
		eb.selectedRef = nil
	}
	eb.Selected = id
}

// Select makes id the selected entity; 0 clears the selection.
func (eb *EntityBrowser) Select(storage *ecs.Storage, id ecs.EntityId) {
	eb.selectedRef = storage.CreateEntityRef(id)
	eb.Selected = 0
	if eb.selectedRef != nil {
		eb.Selected = eb.selectedRef.Id
	}
}

// FilterArchetype restricts the list to one archetype; nil clears it.
func (eb *EntityBrowser) FilterArchetype(id *uint32) {
	eb.filterArchetypeId = id
	eb.currentPage = 0
}

func (eb *EntityBrowser) Visible() []EntityInfo {
	return FilterEntities(eb.entities, eb.filterText, eb.filterArchetypeId)
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	eb.Refresh(storage)

	if imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil) {
		eb.currentPage = 0
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.FilterArchetype(nil)
	}
	if eb.filterArchetypeId != nil {
		imgui.Text(fmt.Sprintf("Archetype 0x%X only", *eb.filterArchetypeId))
	}

	visible := eb.Visible()
	start, end, pages := PageRange(len(visible), eb.currentPage, eb.pageSize)
	eb.currentPage = start / eb.pageSize

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
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

		for _, entity := range visible[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), eb.Selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(storage, entity.ID)
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
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(visible)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(visible)))
	}
}
