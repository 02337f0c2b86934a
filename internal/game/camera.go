package game

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/mathutil"
)

// FirstPersonCamera is the player's view: a position on the map and a
// heading in radians, with 0 facing +X and positive angles turning to +Y.
type FirstPersonCamera struct {
	X, Y  float64 // Position in world
	Angle float64 // Viewing angle in radians
}

// GetForwardX returns the X component of the forward direction vector
func (c *FirstPersonCamera) GetForwardX() float64 {
	return math.Cos(c.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (c *FirstPersonCamera) GetForwardY() float64 {
	return math.Sin(c.Angle)
}

// GetLeftX returns the X component of the left direction vector, the
// direction screen column 0 looks towards
func (c *FirstPersonCamera) GetLeftX() float64 {
	return -math.Sin(c.Angle)
}

// GetLeftY returns the Y component of the left direction vector
func (c *FirstPersonCamera) GetLeftY() float64 {
	return math.Cos(c.Angle)
}

// GetPosition returns the camera's current position
func (c *FirstPersonCamera) GetPosition() vec.Vec2 {
	return vec.Vec2{X: c.X, Y: c.Y}
}

// SetPosition sets the camera's position
func (c *FirstPersonCamera) SetPosition(pos vec.Vec2) {
	c.X = pos.X
	c.Y = pos.Y
}

// Rotate rotates the camera by the given angle, keeping it in [-pi, pi)
func (c *FirstPersonCamera) Rotate(angle float64) {
	c.Angle = math.Mod(c.Angle+angle+math.Pi, 2*math.Pi)
	if c.Angle < 0 {
		c.Angle += 2 * math.Pi
	}
	c.Angle -= math.Pi
}

// Basis returns the renderer's camera matrix
func (c *FirstPersonCamera) Basis() mathutil.Mat2 {
	return mathutil.CameraBasis(c.Angle)
}

// TileInFront returns the tile one step ahead of the camera
func (c *FirstPersonCamera) TileInFront() (int, int) {
	return int(math.Floor(c.X + c.GetForwardX())), int(math.Floor(c.Y + c.GetForwardY()))
}
