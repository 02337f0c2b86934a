package main

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/TrolledWoods/raycaster/internal/config"
)

func TestLoadShippedAssets(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("Failed to load config.yaml: %v", err)
	}

	for _, mapPath := range []string{"assets/maps/dungeon.map", "assets/maps/courtyard.map"} {
		t.Run(filepath.Base(mapPath), func(t *testing.T) {
			cfg.Assets.Map = mapPath
			w, textures, err := loadAssets(cfg)
			if err != nil {
				t.Fatalf("Failed to load assets: %v", err)
			}
			if !w.StartSet {
				t.Error("Expected the map to mark a start tile")
			}
			if w.Sprites.Len() == 0 {
				t.Error("Expected sprites on the map")
			}
			if textures.Len() == 0 {
				t.Error("Expected textures")
			}
		})
	}
}

func TestWriteSnapshot(t *testing.T) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("Failed to load config.yaml: %v", err)
	}
	cfg.Display.ScreenWidth, cfg.Display.ScreenHeight = 96, 54
	cfg.Render.Threads = 2

	w, textures, err := loadAssets(cfg)
	if err != nil {
		t.Fatalf("Failed to load assets: %v", err)
	}

	path := filepath.Join(t.TempDir(), "view.png")
	if err := writeSnapshot(cfg, w, textures, path); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 54 {
		t.Errorf("Expected a 96x54 snapshot, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range testCases {
		if got := parseLevel(name); got != want {
			t.Errorf("Level %q: expected %v, got %v", name, want, got)
		}
	}
}
