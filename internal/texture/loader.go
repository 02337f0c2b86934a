package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	_ "golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"

	"github.com/TrolledWoods/raycaster/internal/config"
)

// LoadStore reads the texture table at path and decodes every texture it
// names. Relative file paths resolve against the directory of path. Files
// that do not exist are replaced by placeholders; files that exist but fail
// to decode are an error.
func LoadStore(path string, maxSize int) (*Store, error) {
	table, err := config.LoadTextureConfig(path)
	if err != nil {
		return nil, err
	}
	return BuildStore(table, filepath.Dir(path), maxSize)
}

// BuildStore decodes the textures of table concurrently and registers them in
// name order, so ids are stable across runs.
func BuildStore(table *config.TextureConfig, baseDir string, maxSize int) (*Store, error) {
	names := make([]string, 0, len(table.Textures))
	for name := range table.Textures {
		names = append(names, name)
	}
	sort.Strings(names)

	decoded := make([][]*Bitmap, len(names))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		data := table.Textures[name]
		g.Go(func() error {
			frames, err := loadFrames(name, data, baseDir, maxSize)
			if err != nil {
				return err
			}
			decoded[i] = frames
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := NewStore()
	for i, name := range names {
		store.Add(name, table.Textures[name].FrameTime, decoded[i]...)
	}
	return store, nil
}

func loadFrames(name string, data config.TextureData, baseDir string, maxSize int) ([]*Bitmap, error) {
	frames := max(1, data.Frames)
	transparent := data.Transparent

	if data.File != "" {
		file := data.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		img, err := decodeFile(file)
		switch {
		case err == nil:
			// Frames sit side by side; each is scaled separately.
			sheet := FromImage(img, 0, transparent)
			frameWidth := max(1, sheet.Width()/frames)
			out := make([]*Bitmap, frames)
			for f := range out {
				sub := sheet.SubBitmap(min(f*frameWidth, sheet.Width()-frameWidth), frameWidth)
				if maxSize > 0 && (sub.Width() > maxSize || sub.Height() > maxSize) {
					sub = FromImage(sub.Image(), maxSize, transparent)
				}
				out[f] = sub
			}
			return out, nil
		case errors.Is(err, fs.ErrNotExist):
			// fall through to a placeholder
		default:
			return nil, fmt.Errorf("failed to load texture %q: %w", name, err)
		}
	}

	pattern := Pattern(data.Placeholder)
	if pattern == "" {
		pattern = PatternChecker
	}
	size := 32
	if maxSize > 0 {
		size = min(size, maxSize)
	}
	color := data.Color
	if color == [3]int{} {
		color = [3]int{128, 128, 128} // Gray for unknown
	}
	out := PlaceholderFrames(pattern, clampByte(color[0]), clampByte(color[1]), clampByte(color[2]), size, frames)
	if transparent {
		for _, bmp := range out {
			bmp.Transparent = true
		}
	}
	return out, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
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
