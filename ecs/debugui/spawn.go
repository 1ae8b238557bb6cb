package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

// WorldInspector is the set of debug windows over one storage.
type WorldInspector struct {
	Browser    *EntityBrowser
	Inspector  *ComponentInspector
	Archetypes *ArchetypeViewer
	Queries    *QueryDebugger
	Perf       *PerformanceStats

	storage    *ecs.Storage
	schedulers []NamedScheduler
	timer      *FrameTimer
}

func NewWorldInspector(storage *ecs.Storage, schedulers ...NamedScheduler) *WorldInspector {
	return &WorldInspector{
		Browser:    NewEntityBrowser(100),
		Inspector:  NewComponentInspector(),
		Archetypes: NewArchetypeViewer(),
		Queries:    NewQueryDebugger(),
		Perf:       NewPerformanceStats(120),
		storage:    storage,
		schedulers: schedulers,
		timer:      NewFrameTimer(),
	}
}

// Render builds every inspector window for the current frame.
func (wi *WorldInspector) Render() {
	wi.Perf.Record(wi.timer.GetDeltaTime())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(460, 420), imgui.CondOnce)
	if imgui.BeginV("World Inspector", nil, imgui.WindowFlagsNone) {
		wi.Browser.Render(wi.storage)

		if imgui.TreeNodeStr("Archetypes") {
			if id, changed := wi.Archetypes.Render(wi.storage.CollectStats()); changed {
				wi.Browser.FilterArchetype(id)
			}
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Singletons") {
			for t, value := range wi.storage.Singletons() {
				if imgui.TreeNodeStr(t.String()) {
					wi.Inspector.RenderValue(t.String(), value)
					imgui.TreePop()
				}
			}
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Query Debugger") {
			wi.Queries.Render(wi.storage)
			imgui.TreePop()
		}
	}
	imgui.End()

	imgui.SetNextWindowPosV(imgui.NewVec2(480, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 420), imgui.CondOnce)
	if imgui.BeginV("Entity", nil, imgui.WindowFlagsNone) {
		if next := wi.Inspector.Render(wi.storage, wi.Browser.Selected); next != wi.Browser.Selected {
			wi.Browser.Select(wi.storage, next)
		}
	}
	imgui.End()

	imgui.SetNextWindowPosV(imgui.NewVec2(830, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 320), imgui.CondOnce)
	if imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		wi.Perf.Render(wi.storage, wi.schedulers)
	}
	imgui.End()
}

// SpawnWorldInspector adds an ImguiItem that renders a WorldInspector every
// frame the ImguiSystem runs.
func SpawnWorldInspector(storage *ecs.Storage, schedulers ...NamedScheduler) ecs.EntityId {
	inspector := NewWorldInspector(storage, schedulers...)
	return storage.Spawn(ImguiItem{Render: inspector.Render})
}
