package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Key  string
	Data *world.MapData
	Err  error
}

type viewer struct {
	maps         []mapInfo
	mapIndex     int
	legendLines  []string
	legendScroll int
	sidebarTab   int
	tileManager  *world.TileManager
	tileColors   map[*world.TileDef]color.RGBA
	lastErr      string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")

	textures, err := texture.LoadStore(cfg.Assets.Textures, cfg.Render.MaxTextureSize)
	if err != nil {
		log.Fatalf("Failed to load textures: %v", err)
	}
	tm := world.NewTileManager()
	if err := tm.LoadTileConfig(cfg.Assets.Tiles); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}
	if err := tm.BindTextures(textures); err != nil {
		log.Fatalf("Failed to bind textures: %v", err)
	}

	maps, err := loadMaps(filepath.Dir(cfg.Assets.Map), tm)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		maps:        maps,
		legendLines: buildLegendLines(tm),
		sidebarTab:  tabInfo,
		tileManager: tm,
		tileColors:  buildTileColors(tm, textures),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.sidebarTab = 1 - v.sidebarTab
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.maps) > 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
			v.mapIndex = (v.mapIndex + len(v.maps) - 1) % len(v.maps)
		}
	}

	if v.sidebarTab == tabLegend {
		_, wheelY := ebiten.Wheel()
		v.legendScroll -= int(wheelY * 14)
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			v.legendScroll += 14
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			v.legendScroll -= 14
		}
		v.legendScroll = min(max(v.legendScroll, 0), v.maxLegendScroll())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	v.drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines, v.legendScroll)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) maxLegendScroll() int {
	lineHeight := 14
	contentHeight := max(windowHeight-24*2-24, lineHeight)
	return max(len(v.legendLines)*lineHeight-contentHeight, 0)
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tileSize := max(min(w/m.Data.Width, h/m.Data.Height), 2)
	originX := x + (w-m.Data.Width*tileSize)/2
	originY := y + (h-m.Data.Height*tileSize)/2

	for ty, row := range m.Data.Tiles {
		for tx, def := range row {
			cellColor := v.tileColors[def]
			vector.DrawFilledRect(screen, float32(originX+tx*tileSize), float32(originY+ty*tileSize),
				float32(tileSize), float32(tileSize), cellColor, false)
		}
	}

	if m.Data.StartX >= 0 {
		drawTileMarkerCircle(screen, originX, originY, tileSize, m.Data.StartX, m.Data.StartY, color.RGBA{50, 200, 255, 255}, true)
	}
	for _, spawn := range m.Data.SpriteSpawns {
		def := v.tileManager.GetSpriteDef(spawn.SpriteKey)
		clr := color.RGBA{230, 200, 80, 255}
		if def != nil && def.Speed > 0 {
			clr = color.RGBA{230, 80, 80, 255}
		}
		drawTileMarkerCircle(screen, originX, originY, tileSize, spawn.X, spawn.Y, clr, false)
		if def != nil {
			drawTileLetter(screen, originX, originY, tileSize, spawn.X, spawn.Y, def.Letter)
		}
	}

	ebitenutil.DebugPrintAt(screen, m.Key, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int, tab int, legendLines []string, scroll int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		drawLegendList(screen, x, row, h-(row-y)-12, legendLines, scroll)
		return
	}

	for _, line := range mapStats(m.Data) {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Markers:", x+12, row)
	row += 16
	ebitenutil.DebugPrintAt(screen, "Cyan: start  Yellow: props", x+12, row)
	row += 16
	ebitenutil.DebugPrintAt(screen, "Red: wandering sprites", x+12, row)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawLegendList(screen *ebiten.Image, x, y, h int, lines []string, scroll int) {
	lineHeight := 14
	startY := y - scroll
	for i, line := range lines {
		drawY := startY + i*lineHeight
		if drawY < y-lineHeight {
			continue
		}
		if drawY > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+10, drawY)
	}
}

func drawTileMarkerCircle(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA, stroke bool) {
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	if stroke {
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}
}

func drawTileLetter(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, letter string) {
	if tileSize < 6 || letter == "" {
		return
	}
	ebitenutil.DebugPrintAt(screen, letter, originX+tx*tileSize+2, originY+ty*tileSize+1)
}

// mapStats lists the numbers shown on the info tab
func mapStats(data *world.MapData) []string {
	kinds := make(map[world.TileKind]int)
	for _, row := range data.Tiles {
		for _, def := range row {
			kinds[def.Kind]++
		}
	}
	return []string{
		fmt.Sprintf("Tiles: %dx%d", data.Width, data.Height),
		fmt.Sprintf("Walls: %d  Windows: %d", kinds[world.TileWall], kinds[world.TileWindow]),
		fmt.Sprintf("Doors: %d  Floor: %d", kinds[world.TileDoor], kinds[world.TileFloor]),
		fmt.Sprintf("Sprites: %d", len(data.SpriteSpawns)),
	}
}

// buildTileColors averages the first frame of every tile texture
func buildTileColors(tm *world.TileManager, textures *texture.Store) map[*world.TileDef]color.RGBA {
	colors := make(map[*world.TileDef]color.RGBA)
	floor := color.RGBA{45, 45, 55, 255}
	for _, key := range tm.GetAllTileKeys() {
		def := tm.GetTileDef(key)
		if def.Kind == world.TileFloor {
			colors[def] = floor
			continue
		}
		colors[def] = averageColor(textures.Get(def.Texture))
	}
	colors[tm.DefaultFor(world.TileFloor)] = floor
	return colors
}

func averageColor(bmp *texture.Bitmap) color.RGBA {
	var r, g, b, n int
	for x := 0; x < bmp.Width(); x++ {
		for _, px := range bmp.Column(x) {
			pr, pg, pb, pa := texture.Unpack(px)
			if bmp.Transparent && pa == 0 {
				continue
			}
			r += int(pr)
			g += int(pg)
			b += int(pb)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{128, 128, 128, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

func loadMaps(dir string, tm *world.TileManager) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.map"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	sort.Strings(paths)

	loader := world.NewMapLoader(tm)
	var maps []mapInfo
	for _, path := range paths {
		data, err := loader.LoadMap(path)
		maps = append(maps, mapInfo{
			Key:  filepath.Base(path),
			Data: data,
			Err:  err,
		})
	}
	return maps, nil
}

func buildLegendLines(tm *world.TileManager) []string {
	lines := []string{
		"Tiles (letter -> key/name kind)",
		"-------------------------------",
	}

	mappings := tm.GetAllLetterMappings()
	letters := make([]string, 0, len(mappings))
	for letter := range mappings {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	for _, letter := range letters {
		def := tm.GetTileDef(mappings[letter])
		if def == nil {
			lines = append(lines, fmt.Sprintf("%s -> %s", letter, mappings[letter]))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s -> %s (%s) %s", letter, def.Key, def.Name, def.Kind))
	}

	lines = append(lines, "", "Sprites (letter -> key/name)", "----------------------------")
	for _, key := range tm.GetAllSpriteKeys() {
		def := tm.GetSpriteDef(key)
		line := fmt.Sprintf("%s -> %s (%s)", def.Letter, key, def.Name)
		if def.Speed > 0 {
			line += " wanders"
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", "Notes", "-----",
		"+ = start position",
		"# at line start = comment",
		"sprite letters stand on the default floor",
	)
	return lines
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
