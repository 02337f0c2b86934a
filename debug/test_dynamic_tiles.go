package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/world"
)

func main() {
	fmt.Println("Tile Table")
	fmt.Println("==========")

	textures, err := texture.LoadStore("../assets/textures.yaml", 256)
	if err != nil {
		log.Fatalf("Failed to load textures: %v", err)
	}

	tm := world.NewTileManager()
	if err := tm.LoadTileConfig("../assets/tiles.yaml"); err != nil {
		log.Fatalf("Failed to load tile config: %v", err)
	}
	if err := tm.BindTextures(textures); err != nil {
		log.Fatalf("Failed to bind textures: %v", err)
	}

	fmt.Println("\nTextures:")
	for _, name := range textures.Names() {
		id, _ := textures.Lookup(name)
		bmp := textures.Get(id)
		fmt.Printf("- %s: id %d, %dx%d, %d frame(s), transparent=%v\n",
			name, id, bmp.Width(), bmp.Height(), textures.Frames(id), bmp.Transparent)
	}

	fmt.Println("\nTiles:")
	for _, key := range tm.GetAllTileKeys() {
		def := tm.GetTileDef(key)
		fmt.Printf("- %s: %s kind=%s letter='%s' start=%v\n", key, def.Name, def.Kind, def.Letter, def.Start)
	}

	fmt.Println("\nLetter Mappings:")
	mappings := tm.GetAllLetterMappings()
	letters := make([]string, 0, len(mappings))
	for letter := range mappings {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	for _, letter := range letters {
		fmt.Printf("'%s' -> %s\n", letter, mappings[letter])
	}

	fmt.Println("\nSprites:")
	for _, key := range tm.GetAllSpriteKeys() {
		def := tm.GetSpriteDef(key)
		fmt.Printf("- %s: %s letter='%s' size=%.2f anchor=%.2f speed=%.2f\n",
			key, def.Name, def.Letter, def.Size, def.Anchor, def.Speed)
	}

	fmt.Printf("\nStart tile: %s\n", tm.StartDef().Key)
}
