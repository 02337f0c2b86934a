package world

import (
	"fmt"
	"sort"

	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/texture"
)

// TileDef is a resolved entry of the tile table
type TileDef struct {
	Key         string
	Name        string
	Kind        TileKind
	Letter      string
	Open        bool // Initial door state
	Start       bool
	Transparent bool
	Mode        texture.Mode
	Texture     texture.ID
	OpenTexture texture.ID

	textureName     string
	openTextureName string
}

// graphics returns the drawable state of the definition, nil for floors
func (d *TileDef) graphics(open bool, time float64) *TileGraphics {
	if d.Kind == TileFloor {
		return nil
	}
	id := d.Texture
	if d.Kind == TileDoor && open {
		id = d.OpenTexture
	}
	return &TileGraphics{
		Anim:        texture.Animation{Texture: id, Start: time, Mode: d.Mode},
		Transparent: d.Transparent,
	}
}

// SpriteDef is a resolved entry of the sprites table
type SpriteDef struct {
	Key     string
	Name    string
	Letter  string
	Texture texture.ID
	Size    float64
	Anchor  float64
	Speed   float64
	Drag    float64

	textureName string
}

// TileManager handles tile and sprite definitions loaded from tiles.yaml
type TileManager struct {
	tileDefs       map[string]*TileDef
	spriteDefs     map[string]*SpriteDef
	letterToTile   map[string]*TileDef
	letterToSprite map[string]*SpriteDef
	defaults       map[TileKind]*TileDef
	builtinFloor   *TileDef // Used until the table defines a floor
}

// NewTileManager creates a tile manager holding only the built-in floor
func NewTileManager() *TileManager {
	tm := &TileManager{}
	tm.reset()
	return tm
}

func (tm *TileManager) reset() {
	tm.tileDefs = make(map[string]*TileDef)
	tm.spriteDefs = make(map[string]*SpriteDef)
	tm.letterToTile = make(map[string]*TileDef)
	tm.letterToSprite = make(map[string]*SpriteDef)
	tm.defaults = make(map[TileKind]*TileDef)

	floor := &TileDef{Key: "floor", Name: "Floor", Kind: TileFloor, Letter: "."}
	tm.builtinFloor = floor
	tm.tileDefs[floor.Key] = floor
	tm.letterToTile[floor.Letter] = floor
	tm.defaults[TileFloor] = floor
}

// LoadTileConfig loads tile configuration from a YAML file
func (tm *TileManager) LoadTileConfig(filename string) error {
	tileConfig, err := config.LoadTileConfig(filename)
	if err != nil {
		return err
	}
	return tm.ApplyConfig(tileConfig)
}

// ApplyConfig replaces the definitions with those of tileConfig
func (tm *TileManager) ApplyConfig(tileConfig *config.TileConfig) error {
	tm.reset()

	// Sorted keys make the per-kind default stable when several tiles share a kind
	keys := make([]string, 0, len(tileConfig.TileData))
	for key := range tileConfig.TileData {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		data := tileConfig.TileData[key]
		kind, ok := ParseTileKind(data.Kind)
		if !ok {
			return fmt.Errorf("tile %q has unknown kind %q", key, data.Kind)
		}

		def := &TileDef{
			Key:             key,
			Name:            data.Name,
			Kind:            kind,
			Letter:          data.Letter,
			Open:            data.Open,
			Start:           data.Start,
			Transparent:     data.Transparent,
			textureName:     data.Texture,
			openTextureName: data.OpenTexture,
		}

		switch kind {
		case TileWindow:
			def.Transparent = true
		case TileDoor:
			// Doors stay see-through while animating between states
			def.Transparent = true
			def.Mode = texture.Clamp
		}
		switch data.Animation {
		case "clamp":
			def.Mode = texture.Clamp
		case "loop":
			def.Mode = texture.Loop
		case "":
		default:
			return fmt.Errorf("tile %q has unknown animation %q", key, data.Animation)
		}
		if kind == TileDoor && def.openTextureName == "" {
			def.openTextureName = def.textureName
		}

		if def.Letter != "" {
			if other, exists := tm.letterToTile[def.Letter]; exists && other != tm.builtinFloor {
				return fmt.Errorf("tiles %q and %q share letter %q", other.Key, key, def.Letter)
			}
			tm.letterToTile[def.Letter] = def
		}
		tm.tileDefs[key] = def
		if cur, exists := tm.defaults[kind]; !exists || cur == tm.builtinFloor {
			tm.defaults[kind] = def
		}
	}

	for key, data := range tileConfig.SpriteData {
		def := &SpriteDef{
			Key:         key,
			Name:        data.Name,
			Letter:      data.Letter,
			Size:        data.Size,
			Anchor:      data.Anchor,
			Speed:       data.Speed,
			Drag:        data.Drag,
			textureName: data.Texture,
		}
		if def.Size <= 0 {
			def.Size = 1
		}
		if def.Letter != "" {
			if _, exists := tm.letterToTile[def.Letter]; exists {
				return fmt.Errorf("sprite %q reuses tile letter %q", key, def.Letter)
			}
			if other, exists := tm.letterToSprite[def.Letter]; exists {
				return fmt.Errorf("sprites %q and %q share letter %q", other.Key, key, def.Letter)
			}
			tm.letterToSprite[def.Letter] = def
		}
		tm.spriteDefs[key] = def
	}

	return nil
}

// BindTextures resolves texture names of every definition against store
func (tm *TileManager) BindTextures(store *texture.Store) error {
	resolve := func(owner, name string) (texture.ID, error) {
		if name == "" {
			return 0, fmt.Errorf("%s has no texture", owner)
		}
		id, ok := store.Lookup(name)
		if !ok {
			return 0, fmt.Errorf("%s uses unknown texture %q", owner, name)
		}
		return id, nil
	}

	var err error
	for _, def := range tm.tileDefs {
		if def.Kind == TileFloor {
			continue
		}
		if def.Texture, err = resolve("tile "+def.Key, def.textureName); err != nil {
			return err
		}
		if def.Kind == TileDoor {
			if def.OpenTexture, err = resolve("tile "+def.Key, def.openTextureName); err != nil {
				return err
			}
		}
	}
	for _, def := range tm.spriteDefs {
		if def.Texture, err = resolve("sprite "+def.Key, def.textureName); err != nil {
			return err
		}
	}
	return nil
}

// GetTileDef returns the definition for a tile key
func (tm *TileManager) GetTileDef(key string) *TileDef {
	return tm.tileDefs[key]
}

// GetTileDefFromLetter returns the tile definition for a map letter
func (tm *TileManager) GetTileDefFromLetter(letter string) (*TileDef, bool) {
	def, ok := tm.letterToTile[letter]
	return def, ok
}

// GetSpriteDef returns the definition for a sprite key
func (tm *TileManager) GetSpriteDef(key string) *SpriteDef {
	return tm.spriteDefs[key]
}

// GetSpriteDefFromLetter returns the sprite definition for a map letter
func (tm *TileManager) GetSpriteDefFromLetter(letter string) (*SpriteDef, bool) {
	def, ok := tm.letterToSprite[letter]
	return def, ok
}

// DefaultFor returns the first definition of kind, or the floor when the
// table defines none
func (tm *TileManager) DefaultFor(kind TileKind) *TileDef {
	if def, ok := tm.defaults[kind]; ok {
		return def
	}
	return tm.defaults[TileFloor]
}

// StartDef returns the tile placed under the player start marker
func (tm *TileManager) StartDef() *TileDef {
	for _, key := range tm.GetAllTileKeys() {
		if def := tm.tileDefs[key]; def.Start && def.Kind == TileFloor {
			return def
		}
	}
	return tm.defaults[TileFloor]
}

// GetAllTileKeys returns all tile keys in sorted order
func (tm *TileManager) GetAllTileKeys() []string {
	keys := make([]string, 0, len(tm.tileDefs))
	for key := range tm.tileDefs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetAllSpriteKeys returns all sprite keys in sorted order
func (tm *TileManager) GetAllSpriteKeys() []string {
	keys := make([]string, 0, len(tm.spriteDefs))
	for key := range tm.spriteDefs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetAllLetterMappings returns all letter to tile key mappings
func (tm *TileManager) GetAllLetterMappings() map[string]string {
	result := make(map[string]string, len(tm.letterToTile))
	for letter, def := range tm.letterToTile {
		result[letter] = def.Key
	}
	return result
}
