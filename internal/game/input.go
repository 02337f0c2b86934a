package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/game/keytracker"
	"github.com/TrolledWoods/raycaster/internal/world"
)

// InputHandler handles all user input for the game
type InputHandler struct {
	game      *RaycastGame
	keys      *keytracker.KeyStateTracker
	isPressed func(ebiten.Key) bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *RaycastGame) *InputHandler {
	return &InputHandler{
		game:      game,
		keys:      keytracker.New(),
		isPressed: ebiten.IsKeyPressed,
	}
}

// HandleInput processes all input for a tick of dt seconds. It returns
// ebiten.Termination when the player quits.
func (ih *InputHandler) HandleInput(dt float64) error {
	if ih.isPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	ih.handleMovementInput(dt)
	ih.handleActionInput()
	return nil
}

// handleMovementInput processes movement and camera controls
func (ih *InputHandler) handleMovementInput(dt float64) {
	cam := ih.game.camera
	rot := ih.game.config.GetRotSpeed() * dt
	step := ih.game.config.GetMoveSpeed() * dt

	// Rotation
	if ih.isPressed(ebiten.KeyLeft) || ih.isPressed(ebiten.KeyA) {
		cam.Rotate(rot)
	}
	if ih.isPressed(ebiten.KeyRight) || ih.isPressed(ebiten.KeyD) {
		cam.Rotate(-rot)
	}

	var move vec.Vec2
	forward := vec.Vec2{X: cam.GetForwardX(), Y: cam.GetForwardY()}
	left := vec.Vec2{X: cam.GetLeftX(), Y: cam.GetLeftY()}

	// Forward/backward movement
	if ih.isPressed(ebiten.KeyUp) || ih.isPressed(ebiten.KeyW) {
		move = move.Add(forward)
	}
	if ih.isPressed(ebiten.KeyDown) || ih.isPressed(ebiten.KeyS) {
		move = move.Sub(forward)
	}

	// Strafe left/right
	if ih.isPressed(ebiten.KeyQ) {
		move = move.Add(left)
	}
	if ih.isPressed(ebiten.KeyE) {
		move = move.Sub(left)
	}

	if length := move.Length(); length > 0 {
		ih.moveBy(move.Mul(step / length))
	}
}

func (ih *InputHandler) moveBy(delta vec.Vec2) {
	half := ih.game.config.Movement.PlayerSize / 2
	cam := ih.game.camera
	cam.SetPosition(tryMove(ih.game.world.Tiles, cam.GetPosition(), delta, half))
}

// handleActionInput processes keys that toggle state
func (ih *InputHandler) handleActionInput() {
	if ih.keys.IsKeyJustPressed(ebiten.KeySpace) {
		x, y := ih.game.camera.TileInFront()
		if ih.game.world.ToggleDoor(x, y, ih.game.elapsed) {
			slog.Debug("door toggled", "x", x, "y", y)
		}
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyF3) {
		ih.game.showFPS = !ih.game.showFPS
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyF4) {
		ih.game.perfDebugEnabled = !ih.game.perfDebugEnabled
		ih.game.threading.PerformanceMonitor.EnableDetailedLogging(ih.game.perfDebugEnabled)
	}
}

// tryMove moves a square of half-width half from pos by delta, one axis at a
// time so the player slides along walls. The result stays on the map.
func tryMove(tiles *world.TileMap, pos, delta vec.Vec2, half float64) vec.Vec2 {
	next := vec.Vec2{X: pos.X + delta.X, Y: pos.Y}
	if !tiles.SquareIsColliding(next, half) {
		pos = next
	}
	next = vec.Vec2{X: pos.X, Y: pos.Y + delta.Y}
	if !tiles.SquareIsColliding(next, half) {
		pos = next
	}

	pos.X = clampFloat(pos.X, half, float64(tiles.Width())-half)
	pos.Y = clampFloat(pos.Y, half, float64(tiles.Height())-half)
	return pos
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return min(max(v, lo), hi)
}
