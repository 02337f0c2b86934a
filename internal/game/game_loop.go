package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// GameLoop manages the main game update and render cycle
type GameLoop struct {
	game         *RaycastGame
	inputHandler *InputHandler

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *RaycastGame) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
	}
}

// Update handles input and world simulation for one tick
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	dt := 1 / float64(ebiten.TPS())
	if err := gl.inputHandler.HandleInput(dt); err != nil {
		return err
	}

	g := gl.game
	g.threading.PerformanceMonitor.ProfiledUpdate(func() {
		g.world.Update(dt)
	})
	g.elapsed += dt

	g.threading.PerformanceMonitor.UpdateSceneMetrics(int32(g.world.Sprites.Len()), int32(g.world.Entities.Len()))
	gl.maybeLogPerfDrop()
	return nil
}

// Draw renders the first-person view and the overlay for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() { gl.lastDrawDuration = time.Since(start) }()

	g := gl.game
	frameTimer := g.threading.PerformanceMonitor.StartFrame()
	defer frameTimer.EndFrame()

	gl.renderFirstPersonView()

	if g.screenImg == nil {
		g.screenImg = ebiten.NewImage(g.frame.Width, g.frame.Height)
	}
	g.pixels = g.frame.Bytes(g.pixels)
	g.screenImg.WritePixels(g.pixels)
	screen.DrawImage(g.screenImg, nil)

	if g.showFPS {
		m := g.threading.GetPerformanceMetrics()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f\nraycast: %.2fms  threads: %d\nsprites: %d  entities: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), m.RaycastMs,
			g.threading.SceneRenderer.Threads(), m.Sprites, m.Entities,
		))
	}
}

// renderFirstPersonView raycasts the world into the frame buffer
func (gl *GameLoop) renderFirstPersonView() {
	g := gl.game
	raycastTimer := g.threading.PerformanceMonitor.StartRaycast()
	g.threading.SceneRenderer.RaycastScene(
		g.world, g.textures,
		g.camera.GetPosition(), g.camera.Basis(),
		g.frame.Width, g.frame.Height, g.frame.Pix,
		g.config.GetAspect(), g.elapsed,
	)
	raycastTimer.EndRaycast()
	g.threading.SyncPoolMetrics()
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gl.game.frame.Width, gl.game.frame.Height
}
