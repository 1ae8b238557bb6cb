package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

// QueryDebugger previews which archetypes a query over a chosen set of
// component types would visit.
type QueryDebugger struct {
	selected map[reflect.Type]bool
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selected: make(map[reflect.Type]bool)}
}

// ComponentTypes lists every component type present in some archetype,
// ordered by name.
func ComponentTypes(storage *ecs.Storage) []reflect.Type {
	seen := make(map[reflect.Type]bool)
	var types []reflect.Type
	for _, archetype := range storage.GetArchetypes() {
		for _, t := range archetype.Types() {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
	return types
}

// MatchArchetypes returns the archetypes holding every type in required.
func MatchArchetypes(storage *ecs.Storage, required []reflect.Type) []*ecs.Archetype {
	var matching []*ecs.Archetype
	for _, archetype := range storage.GetArchetypes() {
		if !slices.ContainsFunc(required, func(t reflect.Type) bool { return !archetype.HasComponent(t) }) {
			matching = append(matching, archetype)
		}
	}
	return matching
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	var required []reflect.Type
	for _, t := range ComponentTypes(storage) {
		selected := qd.selected[t]
		if imgui.Checkbox(t.String(), &selected) {
			qd.selected[t] = selected
		}
		if qd.selected[t] {
			required = append(required, t)
		}
	}
	imgui.Separator()

	if len(required) == 0 {
		imgui.Text("No component types selected")
		return
	}

	matching := MatchArchetypes(storage, required)
	total := 0
	for _, arch := range matching {
		total += arch.Len()
	}
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", total))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("All Components")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		for _, arch := range matching {
			names := make([]string, len(arch.Types()))
			for i, t := range arch.Types() {
				names[i] = t.String()
			}

			imgui.TableNextRow()
			imgui.TableSetColumnIndex(0)
			imgui.Text(fmt.Sprintf("0x%X", arch.ID()))
			imgui.TableSetColumnIndex(1)
			imgui.Text(strings.Join(names, ", "))
			imgui.TableSetColumnIndex(2)
			imgui.Text(fmt.Sprintf("%d", arch.Len()))
		}

		imgui.EndTable()
	}
}
