package world

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// MapLoader handles loading world maps from files
type MapLoader struct {
	tiles *TileManager
}

// SpriteSpawn represents a sprite marker from the map
type SpriteSpawn struct {
	X, Y      int
	SpriteKey string
}

// MapData contains the loaded map information
type MapData struct {
	Width        int
	Height       int
	Tiles        [][]*TileDef
	SpriteSpawns []SpriteSpawn
	StartX       int
	StartY       int
}

// NewMapLoader creates a map loader resolving letters through tm
func NewMapLoader(tm *TileManager) *MapLoader {
	return &MapLoader{tiles: tm}
}

// LoadMap loads a map from the specified file path
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		// Skip empty lines and comment lines (lines starting with #)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	return ml.ParseLines(lines)
}

// ParseLines builds map data from tile rows, top row first
func (ml *MapLoader) ParseLines(lines []string) (*MapData, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	height := len(lines)
	width := len([]rune(lines[0]))

	// Validate all lines have the same width
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, n)
		}
	}

	mapData := &MapData{
		Width:  width,
		Height: height,
		Tiles:  make([][]*TileDef, height),
		StartX: -1, // No default start position - must be set explicitly with +
		StartY: -1,
	}

	for y, line := range lines {
		mapData.Tiles[y] = make([]*TileDef, width)
		for x, char := range []rune(line) {
			def, spriteKey, isStart, err := ml.parseMapCharacter(char)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", y+1, x+1, err)
			}
			mapData.Tiles[y][x] = def

			if isStart {
				mapData.StartX = x
				mapData.StartY = y
			}
			if spriteKey != "" {
				mapData.SpriteSpawns = append(mapData.SpriteSpawns, SpriteSpawn{X: x, Y: y, SpriteKey: spriteKey})
			}
		}
	}

	return mapData, nil
}

// parseMapCharacter converts a map character to a tile definition and an
// optional sprite key. Sprite markers stand on the default floor.
func (ml *MapLoader) parseMapCharacter(char rune) (*TileDef, string, bool, error) {
	if char == '+' {
		return ml.tiles.StartDef(), "", true, nil
	}

	letter := string(char)
	if def, ok := ml.tiles.GetTileDefFromLetter(letter); ok {
		return def, "", false, nil
	}
	if def, ok := ml.tiles.GetSpriteDefFromLetter(letter); ok {
		return ml.tiles.DefaultFor(TileFloor), def.Key, false, nil
	}
	return nil, "", false, fmt.Errorf("unknown map letter %q", letter)
}

// Build creates a world from map data. Animations start at time. Sprites with
// a wander speed become bouncing entities.
func (ml *MapLoader) Build(mapData *MapData, time float64) *World {
	tiles := NewTileMap(mapData.Width, mapData.Height)
	for y, row := range mapData.Tiles {
		for x, def := range row {
			tiles.Set(x, y, NewTile(def, time))
		}
	}

	w := NewWorld(tiles)
	if mapData.StartX >= 0 {
		w.Start = vec.Vec2{X: float64(mapData.StartX) + 0.5, Y: float64(mapData.StartY) + 0.5}
		w.StartSet = true
	}

	for i, spawn := range mapData.SpriteSpawns {
		def := ml.tiles.GetSpriteDef(spawn.SpriteKey)
		if def == nil {
			continue
		}
		pos := vec.Vec2{X: float64(spawn.X) + 0.5, Y: float64(spawn.Y) + 0.5}
		sprite := Sprite{Pos: pos, Texture: def.Texture, Size: def.Size, Anchor: def.Anchor}

		if def.Speed <= 0 {
			w.AddSprite(sprite)
			continue
		}

		// Spread initial headings with the golden angle so wanderers fan out
		angle := float64(i) * math.Pi * (3 - math.Sqrt(5))
		sin, cos := math.Sincos(angle)
		w.AddEntity(Entity{
			Pos:    pos,
			Vel:    vec.Vec2{X: cos * def.Speed, Y: sin * def.Speed},
			Drag:   def.Drag,
			Size:   def.Size,
			Bounce: true,
		}, &sprite)
	}

	return w
}

// LoadWorld loads and builds the map at mapPath
func (ml *MapLoader) LoadWorld(mapPath string, time float64) (*World, error) {
	mapData, err := ml.LoadMap(mapPath)
	if err != nil {
		return nil, err
	}
	return ml.Build(mapData, time), nil
}
