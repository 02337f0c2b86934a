package game

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/game/keytracker"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/threading/monitoring"
	"github.com/TrolledWoods/raycaster/internal/world"
)

func newTestGame(t *testing.T, rows ...string) *RaycastGame {
	t.Helper()

	store := texture.NewStore()
	store.Add("stone", 0, texture.Placeholder(texture.PatternBrick, 100, 100, 100, 8))
	store.Add("door", 0.1, texture.PlaceholderFrames(texture.PatternDoor, 120, 80, 40, 8, 4)...)

	tm := world.NewTileManager()
	err := tm.ApplyConfig(&config.TileConfig{
		TileData: map[string]config.TileData{
			"stone": {Kind: "wall", Letter: "X", Texture: "stone"},
			"door":  {Kind: "door", Letter: "D", Texture: "door"},
			"start": {Kind: "floor", Start: true},
		},
	})
	if err != nil {
		t.Fatalf("Failed to apply tile config: %v", err)
	}
	if err := tm.BindTextures(store); err != nil {
		t.Fatalf("Failed to bind textures: %v", err)
	}
	ml := world.NewMapLoader(tm)
	mapData, err := ml.ParseLines(rows)
	if err != nil {
		t.Fatalf("Failed to parse map: %v", err)
	}

	cfg := config.Default()
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = 32, 16
	cfg.Render.Threads = 1
	g := NewRaycastGame(cfg, ml.Build(mapData, 0), store)
	t.Cleanup(g.Close)
	return g
}

// pressKeys swaps the handler's keyboard for a fixed set of held keys
func pressKeys(ih *InputHandler, keys ...ebiten.Key) map[ebiten.Key]bool {
	down := make(map[ebiten.Key]bool)
	for _, k := range keys {
		down[k] = true
	}
	source := func(k ebiten.Key) bool { return down[k] }
	ih.isPressed = source
	ih.keys = keytracker.NewWithSource(source)
	return down
}

func TestCameraRotateWraps(t *testing.T) {
	cam := &FirstPersonCamera{Angle: 3}
	cam.Rotate(1)
	if cam.Angle < -math.Pi || cam.Angle >= math.Pi {
		t.Fatalf("Expected angle in [-pi, pi), got %v", cam.Angle)
	}
	if math.Abs(cam.Angle-(4-2*math.Pi)) > 1e-12 {
		t.Errorf("Expected %v, got %v", 4-2*math.Pi, cam.Angle)
	}
}

func TestCameraBasisMatchesDirections(t *testing.T) {
	cam := &FirstPersonCamera{Angle: 0.8}
	b := cam.Basis()
	forward := b.Column(1)
	left := b.Column(0)
	if math.Abs(forward.X-cam.GetForwardX()) > 1e-12 || math.Abs(forward.Y-cam.GetForwardY()) > 1e-12 {
		t.Errorf("Expected forward column %v,%v, got %v", cam.GetForwardX(), cam.GetForwardY(), forward)
	}
	if math.Abs(left.X-cam.GetLeftX()) > 1e-12 || math.Abs(left.Y-cam.GetLeftY()) > 1e-12 {
		t.Errorf("Expected left column %v,%v, got %v", cam.GetLeftX(), cam.GetLeftY(), left)
	}
}

func TestCameraTileInFront(t *testing.T) {
	testCases := []struct {
		angle  float64
		tx, ty int
	}{
		{0, 3, 2},
		{math.Pi / 2, 2, 3},
		{math.Pi, 1, 2},
		{-math.Pi / 2, 2, 1},
	}
	for _, tc := range testCases {
		cam := &FirstPersonCamera{X: 2.5, Y: 2.5, Angle: tc.angle}
		x, y := cam.TileInFront()
		if x != tc.tx || y != tc.ty {
			t.Errorf("Angle %v: expected tile (%d,%d), got (%d,%d)", tc.angle, tc.tx, tc.ty, x, y)
		}
	}
}

func TestTryMoveSlidesAlongWalls(t *testing.T) {
	g := newTestGame(t,
		"XXXXX",
		"X+..X",
		"X...X",
		"XXXXX",
	)
	tiles := g.world.Tiles

	// Moving diagonally into the top wall keeps the X component
	got := tryMove(tiles, vec.Vec2{X: 1.5, Y: 1.5}, vec.Vec2{X: 0.3, Y: -0.5}, 0.15)
	if math.Abs(got.X-1.8) > 1e-9 || got.Y != 1.5 {
		t.Errorf("Expected slide to (1.8, 1.5), got %v", got)
	}

	// A free move goes through unchanged
	got = tryMove(tiles, vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 0.2, Y: 0.1}, 0.15)
	if math.Abs(got.X-2.2) > 1e-9 || math.Abs(got.Y-2.1) > 1e-9 {
		t.Errorf("Expected (2.2, 2.1), got %v", got)
	}
}

func TestTryMoveStaysOnMap(t *testing.T) {
	g := newTestGame(t,
		"+..",
		"...",
	)
	got := tryMove(g.world.Tiles, vec.Vec2{X: 0.5, Y: 0.5}, vec.Vec2{X: -2, Y: 5}, 0.15)
	if math.Abs(got.X-0.15) > 1e-12 || math.Abs(got.Y-1.85) > 1e-12 {
		t.Errorf("Expected position clamped to (0.15, 1.85), got %v", got)
	}
}

func TestHandleInputMovesCamera(t *testing.T) {
	g := newTestGame(t,
		"XXXXXXX",
		"X+....X",
		"XXXXXXX",
	)
	ih := NewInputHandler(g)
	pressKeys(ih, ebiten.KeyW)

	startX := g.camera.X
	for i := 0; i < 30; i++ {
		if err := ih.HandleInput(1.0 / 60); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	want := startX + g.config.GetMoveSpeed()*0.5
	if math.Abs(g.camera.X-want) > 1e-9 {
		t.Errorf("Expected camera at x=%v after half a second, got %v", want, g.camera.X)
	}
	if g.camera.Y != 1.5 {
		t.Errorf("Expected y unchanged, got %v", g.camera.Y)
	}
}

func TestHandleInputRotatesTowardsLeft(t *testing.T) {
	g := newTestGame(t, "+")
	ih := NewInputHandler(g)
	pressKeys(ih, ebiten.KeyLeft)

	if err := ih.HandleInput(0.1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := g.config.GetRotSpeed() * 0.1
	if math.Abs(g.camera.Angle-want) > 1e-9 {
		t.Errorf("Expected angle %v, got %v", want, g.camera.Angle)
	}
}

func TestHandleInputEscapeTerminates(t *testing.T) {
	g := newTestGame(t, "+")
	ih := NewInputHandler(g)
	pressKeys(ih, ebiten.KeyEscape)

	if err := ih.HandleInput(0.1); err != ebiten.Termination {
		t.Errorf("Expected ebiten.Termination, got %v", err)
	}
}

func TestHandleInputTogglesDoor(t *testing.T) {
	g := newTestGame(t, "+D.")
	ih := NewInputHandler(g)
	down := pressKeys(ih, ebiten.KeySpace)

	door, _ := g.world.GetTile(1, 0)
	if door.IsOpen() {
		t.Fatal("Expected the door to start closed")
	}

	ih.HandleInput(0.1)
	if !door.IsOpen() {
		t.Error("Expected Space to open the door in front")
	}

	// Holding the key does not toggle again
	ih.HandleInput(0.1)
	if !door.IsOpen() {
		t.Error("Expected the door to stay open while Space is held")
	}

	down[ebiten.KeySpace] = false
	ih.HandleInput(0.1)
	down[ebiten.KeySpace] = true
	ih.HandleInput(0.1)
	if door.IsOpen() {
		t.Error("Expected a second press to close the door")
	}
}

func TestHandleInputTogglesFPS(t *testing.T) {
	g := newTestGame(t, "+")
	ih := NewInputHandler(g)
	pressKeys(ih, ebiten.KeyF3)

	before := g.showFPS
	ih.HandleInput(0.1)
	if g.showFPS == before {
		t.Error("Expected F3 to toggle the FPS overlay")
	}
}

func TestRenderFirstPersonView(t *testing.T) {
	g := newTestGame(t,
		"XXXXX",
		"X+..X",
		"XXXXX",
	)
	g.loop.renderFirstPersonView()

	bg := g.config.GetBackground()
	walls := 0
	for _, px := range g.frame.Pix {
		if px != bg {
			walls++
		}
	}
	if walls == 0 {
		t.Error("Expected walls in the rendered frame")
	}
	if g.threading.PerformanceMonitor.GetCurrentMetrics().CompletedChunks == 0 {
		t.Error("Expected the monitor to see completed chunks")
	}
}

func TestLogPerfSnapshot(t *testing.T) {
	g := newTestGame(t, "+..")
	g.loop.renderFirstPersonView()
	g.loop.lastUpdateDuration = 2 * time.Millisecond

	var out bytes.Buffer
	g.loop.logPerfSnapshot(&out, 25)

	text := out.String()
	if strings.Count(text, "[PERF]") != 4 {
		t.Errorf("Expected 4 perf lines, got:\n%s", text)
	}
	if !strings.Contains(text, "screen=32x16 map=3x1") {
		t.Errorf("Expected screen and map sizes, got:\n%s", text)
	}
}

func TestPerfCauses(t *testing.T) {
	if got := perfCauses(nil); got != "none obvious" {
		t.Errorf("Expected 'none obvious', got %q", got)
	}
	alerts := []monitoring.PerformanceAlert{
		{Type: "low_fps", Value: 20},
		{Type: "slow_raycast", Value: 14.5},
	}
	if got := perfCauses(alerts); got != "slow_raycast (14.5)" {
		t.Errorf("Expected slow_raycast only, got %q", got)
	}
}

func TestPerfBudgets(t *testing.T) {
	if frameBudgetMs(0) != 0 {
		t.Error("Expected zero budget without fps")
	}
	if math.Abs(frameBudgetMs(50)-20) > 1e-12 {
		t.Errorf("Expected 20ms budget at 50 fps, got %v", frameBudgetMs(50))
	}
	if got := idleBudgetMs(50, 5*time.Millisecond, 10*time.Millisecond); math.Abs(got-5) > 1e-12 {
		t.Errorf("Expected 5ms idle, got %v", got)
	}
	if got := idleBudgetMs(50, 15*time.Millisecond, 10*time.Millisecond); got != 0 {
		t.Errorf("Expected no idle time when over budget, got %v", got)
	}
	stats := map[string]interface{}{"a": int32(3), "b": uint32(7), "c": 1.5}
	if getPerfInt(stats, "a") != 3 || getPerfUint(stats, "b") != 7 || getPerfFloat(stats, "c") != 1.5 {
		t.Error("Expected typed stats to convert")
	}
}
