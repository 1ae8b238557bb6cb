package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

// ArchetypeViewer tables every archetype with its population. Clicking a
// row selects it as the entity browser's archetype filter.
type ArchetypeViewer struct {
	selected      *uint32
	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: 2}
}

// SortArchetypes orders archetypes by column: 0 id, 1 component names,
// 2 entity count.
func SortArchetypes(archetypes []ecs.ArchetypeStats, column int, ascending bool) {
	slices.SortStableFunc(archetypes, func(a, b ecs.ArchetypeStats) int {
		var c int
		switch column {
		case 1:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case 2:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
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

// Render draws the table and reports whether the selection changed.
func (av *ArchetypeViewer) Render(stats *ecs.StorageStats) (*uint32, bool) {
	archetypes := slices.Clone(stats.ArchetypeBreakdown)
	SortArchetypes(archetypes, av.sortColumn, av.sortAscending)

	maxEntityCount := 0
	for _, arch := range archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	changed := false
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if isSelected {
					av.selected = nil
				} else {
					id := arch.ID
					av.selected = &id
				}
				changed = true
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}
	return av.selected, changed
}
