package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer and host configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowScale  int    `yaml:"window_scale"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type RenderConfig struct {
	Threads        int     `yaml:"threads"`     // Worker goroutines besides the caller; negative means NumCPU-1
	ChunkWidth     int     `yaml:"chunk_width"` // Columns per work item
	MaxDistance    float64 `yaml:"max_distance"`
	DimFalloff     float64 `yaml:"dim_falloff"` // Coefficient of the inverse-square dimming
	Background     [3]int  `yaml:"background"`
	MaxTextureSize int     `yaml:"max_texture_size"`
}

type CameraConfig struct {
	Aspect     float64 `yaml:"aspect"` // 0 derives the aspect from the screen size
	StartAngle float64 `yaml:"start_angle"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	PlayerSize    float64 `yaml:"player_size"`
}

type AssetsConfig struct {
	Tiles    string `yaml:"tiles"`
	Textures string `yaml:"textures"`
	Map      string `yaml:"map"`
}

type DebugConfig struct {
	ShowFPS  bool   `yaml:"show_fps"`
	LogLevel string `yaml:"log_level"`
	PerfLog  bool   `yaml:"perf_log"`
}

// TileConfig is the layout of assets/tiles.yaml
type TileConfig struct {
	TileData   map[string]TileData   `yaml:"tiles"`
	SpriteData map[string]SpriteData `yaml:"sprites"`
}

type TileData struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"` // floor, wall, window, door
	Letter      string `yaml:"letter"`
	Texture     string `yaml:"texture"`
	OpenTexture string `yaml:"open_texture"` // Doors only
	Animation   string `yaml:"animation"`    // loop or clamp
	Transparent bool   `yaml:"transparent"`
	Open        bool   `yaml:"open"`
	Start       bool   `yaml:"start"` // Player start marker, placed on a floor tile
}

type SpriteData struct {
	Name    string  `yaml:"name"`
	Letter  string  `yaml:"letter"`
	Texture string  `yaml:"texture"`
	Size    float64 `yaml:"size"`
	Anchor  float64 `yaml:"anchor"` // 0 floor-aligned .. 1 ceiling-aligned
	Speed   float64 `yaml:"speed"`  // Wander speed, 0 for static props
	Drag    float64 `yaml:"drag"`
}

// TextureConfig is the layout of assets/textures.yaml
type TextureConfig struct {
	Textures map[string]TextureData `yaml:"textures"`
}

type TextureData struct {
	File        string  `yaml:"file"`
	Frames      int     `yaml:"frames"`     // Frames laid out left to right in the file
	FrameTime   float64 `yaml:"frame_time"` // Seconds per frame
	Placeholder string  `yaml:"placeholder"`
	Color       [3]int  `yaml:"color"`
	Transparent bool    `yaml:"transparent"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from config.yaml
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Default returns the configuration used when a key is absent from config.yaml
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 360,
			WindowScale:  2,
			WindowTitle:  "Raycaster",
		},
		Render: RenderConfig{
			Threads:        -1,
			ChunkWidth:     64,
			MaxDistance:    100,
			DimFalloff:     0.2,
			MaxTextureSize: 256,
		},
		Movement: MovementConfig{
			MoveSpeed:     4,
			RotationSpeed: 5,
			PlayerSize:    0.3,
		},
		Assets: AssetsConfig{
			Tiles:    "assets/tiles.yaml",
			Textures: "assets/textures.yaml",
			Map:      "assets/maps/dungeon.map",
		},
	}
}

// LoadTileConfig reads a tile table file
func LoadTileConfig(filename string) (*TileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile config file: %w", err)
	}

	var tileConfig TileConfig
	if err := yaml.Unmarshal(data, &tileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse tile config: %w", err)
	}
	return &tileConfig, nil
}

// LoadTextureConfig reads a texture table file
func LoadTextureConfig(filename string) (*TextureConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture config file: %w", err)
	}

	var textureConfig TextureConfig
	if err := yaml.Unmarshal(data, &textureConfig); err != nil {
		return nil, fmt.Errorf("failed to parse texture config: %w", err)
	}
	return &textureConfig, nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	if c.Display.ScreenWidth <= 0 {
		return 640
	}
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	if c.Display.ScreenHeight <= 0 {
		return 360
	}
	return c.Display.ScreenHeight
}

// GetRenderThreads returns the worker count for the scene renderer. The calling
// goroutine always participates, so the default leaves one CPU for it.
func (c *Config) GetRenderThreads() int {
	if c.Render.Threads < 0 {
		return max(0, runtime.NumCPU()-1)
	}
	return c.Render.Threads
}

func (c *Config) GetChunkWidth() int {
	if c.Render.ChunkWidth <= 0 {
		return 64
	}
	return c.Render.ChunkWidth
}

func (c *Config) GetMaxDistance() float64 {
	if c.Render.MaxDistance <= 0 {
		return 100
	}
	return c.Render.MaxDistance
}

func (c *Config) GetDimFalloff() float64 {
	if c.Render.DimFalloff < 0 {
		return 0
	}
	return c.Render.DimFalloff
}

// GetBackground returns the background colour packed as 0xAARRGGBB
func (c *Config) GetBackground() uint32 {
	bg := c.Render.Background
	return 0xff000000 | uint32(clampByte(bg[0]))<<16 | uint32(clampByte(bg[1]))<<8 | uint32(clampByte(bg[2]))
}

// GetAspect returns the horizontal aspect correction applied to column offsets
func (c *Config) GetAspect() float64 {
	if c.Camera.Aspect > 0 {
		return c.Camera.Aspect
	}
	return float64(c.GetScreenHeight()) / float64(c.GetScreenWidth()) * 2
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
