// Package game hosts the renderer in an ebiten window: it owns the camera,
// reads input, steps the world and uploads each rendered frame.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/render"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/threading"
	"github.com/TrolledWoods/raycaster/internal/world"
)

// RaycastGame implements ebiten.Game
type RaycastGame struct {
	world    *world.World
	textures *texture.Store
	camera   *FirstPersonCamera
	config   *config.Config

	threading *threading.ThreadingComponents
	loop      *GameLoop

	// Frame buffers
	frame     *render.Frame
	pixels    []byte
	screenImg *ebiten.Image

	// Seconds since start, drives texture animation
	elapsed float64

	// UI state
	showFPS bool

	// Performance debugging
	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time
}

// NewRaycastGame creates a game showing w. The camera starts on the map's
// start tile facing cfg.Camera.StartAngle.
func NewRaycastGame(cfg *config.Config, w *world.World, textures *texture.Store) *RaycastGame {
	g := &RaycastGame{
		world:    w,
		textures: textures,
		camera: &FirstPersonCamera{
			X:     w.Start.X,
			Y:     w.Start.Y,
			Angle: cfg.Camera.StartAngle,
		},
		config:           cfg,
		threading:        threading.NewThreadingComponents(cfg),
		frame:            render.NewFrame(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		showFPS:          cfg.Debug.ShowFPS,
		perfDebugEnabled: cfg.Debug.PerfLog,
	}
	g.loop = NewGameLoop(g)
	return g
}

// Update advances the game by one tick
func (g *RaycastGame) Update() error {
	return g.loop.Update()
}

// Draw renders the current frame to screen
func (g *RaycastGame) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

// Layout returns the fixed render resolution; ebiten scales it to the window
func (g *RaycastGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.loop.Layout(outsideWidth, outsideHeight)
}

// Close stops the render workers
func (g *RaycastGame) Close() {
	g.threading.Shutdown()
}
