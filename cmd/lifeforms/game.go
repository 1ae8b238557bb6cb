package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/lifeforms/config"
	"github.com/plus3/lifeforms/ecs"
	"github.com/plus3/lifeforms/ecs/debugui"
	debugui_ebiten "github.com/plus3/lifeforms/ecs/debugui/ebiten"
	"github.com/plus3/lifeforms/render"
)

// maxFrameDelta caps dt after a stall so the simulation does not jump.
const maxFrameDelta = 0.25

// Game runs the simulation in Update and the renderer in Draw.
type Game struct {
	storage    *ecs.Storage
	simulation *ecs.Scheduler
	input      *ecs.Scheduler
	render     *ecs.Scheduler
	screen     *ecs.Singleton[render.Screen]
	imgui      *ecs.Singleton[debugui_ebiten.ImguiBackend]
	clock      *ecs.Clock
	limit      int
	ticks      int
}

func NewGame(storage *ecs.Storage, simulation *ecs.Scheduler, cfg *config.Config, limit int) *Game {
	g := &Game{
		storage:    storage,
		simulation: simulation,
		render:     newRenderScheduler(storage, cfg),
		screen:     ecs.NewSingleton[render.Screen](storage),
		clock:      ecs.NewClock(),
		limit:      limit,
	}

	if cfg.Inspector.Enabled {
		g.imgui = debugui_ebiten.Attach(storage, debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		ecs.NewSingleton(storage, debugui.ImguiInputState{})
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Simulation.TickRate)

	g.input = ecs.NewScheduler(storage)
	g.input.Register(&render.CameraControlSystem{})
	if g.imgui != nil {
		g.input.Register(&debugui.ImguiSystem{})
		debugui.SpawnWorldInspector(storage,
			debugui.NamedScheduler{Name: "Simulation", Scheduler: g.simulation},
			debugui.NamedScheduler{Name: "Render", Scheduler: g.render},
		)
	}
	return g
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.limit > 0 && g.ticks >= g.limit {
		return ebiten.Termination
	}

	dt := min(g.clock.Tick().Seconds(), maxFrameDelta)
	g.simulation.Once(dt)
	g.ticks++

	if g.imgui != nil {
		g.imgui.Get().Frame(func() {
			g.input.Once(dt)
		})
	} else {
		g.input.Once(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(0)

	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
