package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/game"
	"github.com/TrolledWoods/raycaster/internal/mathutil"
	"github.com/TrolledWoods/raycaster/internal/render"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/threading"
	"github.com/TrolledWoods/raycaster/internal/threading/rendering"
	"github.com/TrolledWoods/raycaster/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	mapPath := flag.String("map", "", "map to load instead of the configured one")
	threads := flag.Int("threads", -2, "render worker count, -1 for one per spare CPU")
	debug := flag.Bool("debug", false, "enable debug logging")
	snapshot := flag.String("snapshot", "", "render one frame to this PNG file and exit")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)
	if *mapPath != "" {
		cfg.Assets.Map = *mapPath
	}
	if *threads > -2 {
		cfg.Render.Threads = *threads
	}
	setupLogging(cfg, *debug)

	w, textures, err := loadAssets(cfg)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}
	slog.Info("world loaded",
		"map", cfg.Assets.Map,
		"width", w.Tiles.Width(),
		"height", w.Tiles.Height(),
		"sprites", w.Sprites.Len(),
		"textures", textures.Len(),
	)

	if *snapshot != "" {
		if err := writeSnapshot(cfg, w, textures, *snapshot); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	}

	// Set window properties from config
	scale := max(cfg.Display.WindowScale, 1)
	ebiten.SetWindowSize(cfg.GetScreenWidth()*scale, cfg.GetScreenHeight()*scale)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewRaycastGame(cfg, w, textures)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// setupLogging installs a text slog handler. Renderer diagnostics stay
// silent unless debug logging is requested.
func setupLogging(cfg *config.Config, debug bool) {
	level := parseLevel(cfg.Debug.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if level <= slog.LevelDebug {
		rendering.SetLogger(logger)
	}
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadAssets loads textures, the tile table and the map named by cfg
func loadAssets(cfg *config.Config) (*world.World, *texture.Store, error) {
	textures, err := texture.LoadStore(cfg.Assets.Textures, cfg.Render.MaxTextureSize)
	if err != nil {
		return nil, nil, err
	}

	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(cfg.Assets.Tiles); err != nil {
		return nil, nil, err
	}
	if err := tm.BindTextures(textures); err != nil {
		return nil, nil, err
	}

	w, err := world.NewMapLoader(tm).LoadWorld(cfg.Assets.Map, 0)
	if err != nil {
		return nil, nil, err
	}
	return w, textures, nil
}

// writeSnapshot renders the view from the start tile into a PNG file
func writeSnapshot(cfg *config.Config, w *world.World, textures *texture.Store, path string) error {
	tc := threading.NewThreadingComponents(cfg)
	defer tc.Shutdown()

	frame := render.NewFrame(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	timer := tc.PerformanceMonitor.StartRaycast()
	tc.SceneRenderer.RaycastScene(
		w, textures,
		w.Start, mathutil.CameraBasis(cfg.Camera.StartAngle),
		frame.Width, frame.Height, frame.Pix,
		cfg.GetAspect(), 0,
	)
	timer.EndRaycast()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame.Image()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	slog.Info("snapshot written", "path", path, "raycast_ms", tc.GetPerformanceMetrics().RaycastMs)
	return nil
}
