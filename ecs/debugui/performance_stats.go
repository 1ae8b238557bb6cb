package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

// PerformanceStats keeps a ring of recent frame times and shows them along
// with storage and scheduler statistics.
type PerformanceStats struct {
	frameHistory []float32
	frameIndex   int
	samples      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frameHistory: make([]float32, max(1, historyFrames)),
	}
}

// Record adds one frame time in seconds.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)
	ps.samples = min(ps.samples+1, len(ps.frameHistory))
}

// AverageFrameTime is the mean of the recorded frame times, in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.samples == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.samples)
}

// NamedScheduler labels a scheduler in the performance window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// Render draws the statistics. Each scheduler gets its own table.
func (ps *PerformanceStats) Render(storage *ecs.Storage, schedulers []NamedScheduler) {
	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.AverageFrameTime(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	for _, s := range schedulers {
		if s.Scheduler == nil {
			continue
		}
		if imgui.TreeNodeStr(s.Name + " systems") {
			renderSchedulerStats(s.Name, s.Scheduler.GetStats())
			imgui.TreePop()
		}
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}
}

func renderSchedulerStats(name string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStats##"+name, 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(formatDuration(sys.LastDuration))
		imgui.TableNextColumn()
		imgui.Text(formatDuration(sys.AvgDuration))
		imgui.TableNextColumn()
		imgui.Text(formatDuration(sys.MaxDuration))
	}
	imgui.EndTable()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d.Microseconds())/1000)
}

// FrameTimer measures wall time between rendered frames.
type FrameTimer struct {
	clock *ecs.Clock
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{clock: ecs.NewClock()}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	return float32(ft.clock.Tick().Seconds())
}
