package render

import (
	"math"
	"testing"

	"github.com/TrolledWoods/raycaster/internal/texture"
)

func solidBitmap(height int, colors ...uint32) *texture.Bitmap {
	bmp := texture.NewBitmap(1, height, false)
	for y := 0; y < height; y++ {
		bmp.Set(0, y, colors[y*len(colors)/height])
	}
	return bmp
}

func singleColumn(height int) (*Frame, Column) {
	f := NewFrame(1, height)
	return f, SplitColumns(f.Pix, 1, height, 64)[0].Column(0)
}

func TestDrawStripWritesExpectedRows(t *testing.T) {
	f, col := singleColumn(100)
	DrawStrip(col, solidBitmap(4, 0xffffffff), 0, 0, 1, 0.25, 0.75, 1)

	for row := 0; row < 100; row++ {
		written := f.Pix[row] != 0
		want := row >= 25 && row <= 74
		if written != want {
			t.Errorf("Row %d: written=%v, expected %v", row, written, want)
		}
	}
}

func TestClipStripShrinksCrop(t *testing.T) {
	testCases := []struct {
		name               string
		c0, c1, d0, d1     float64
		wc0, wc1, wd0, wd1 float64
		visible            bool
	}{
		{"above top", 0, 1, -0.5, 0.5, 0.5, 1, 0, 0.5, true},
		{"below bottom", 0.2, 0.6, 0.5, 1.5, 0.2, 0.4, 0.5, 1, true},
		{"both ends", 0, 1, -1, 2, 1.0 / 3, 2.0 / 3, 0, 1, true},
		{"inside", 0, 1, 0.1, 0.9, 0, 1, 0.1, 0.9, true},
		{"fully above", 0, 1, -2, -1, 0, 0, 0, 0, false},
		{"fully below", 0, 1, 1.2, 1.8, 0, 0, 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c0, c1, d0, d1, ok := ClipStrip(tc.c0, tc.c1, tc.d0, tc.d1)
			if ok != tc.visible {
				t.Fatalf("Expected visible=%v, got %v", tc.visible, ok)
			}
			if !ok {
				return
			}
			got := []float64{c0, c1, d0, d1}
			want := []float64{tc.wc0, tc.wc1, tc.wd0, tc.wd1}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-12 {
					t.Errorf("Expected %v, got %v", want, got)
					break
				}
			}
		})
	}
}

func TestDrawStripClipDropsUpperHalf(t *testing.T) {
	const red, blue = 0xffff0000, 0xff0000ff
	f, col := singleColumn(100)
	DrawStrip(col, solidBitmap(2, red, blue), 0, 0, 1, -0.5, 0.5, 1)

	for row := 0; row < 50; row++ {
		if f.Pix[row] != blue {
			t.Fatalf("Row %d: expected lower half of the texture, got %#08x", row, f.Pix[row])
		}
	}
	if f.Pix[50] != 0 {
		t.Errorf("Row 50 should be untouched, got %#08x", f.Pix[50])
	}
}

func TestDrawStripReachesBottomRow(t *testing.T) {
	f, col := singleColumn(100)
	DrawStrip(col, solidBitmap(3, 0xff00ff00), 0, 0, 1, 0.5, 1.5, 1)

	if f.Pix[49] != 0 {
		t.Error("Row 49 should be untouched")
	}
	for row := 50; row < 100; row++ {
		if f.Pix[row] == 0 {
			t.Fatalf("Row %d not written", row)
		}
	}
}

func TestDrawStripSkipsTransparentTexels(t *testing.T) {
	const bg = 0xff101010
	f, col := singleColumn(10)
	col.Fill(bg)

	bmp := texture.NewBitmap(1, 2, true)
	bmp.Set(0, 0, 0x00ffffff) // zero alpha
	bmp.Set(0, 1, 0xffffffff)
	DrawStrip(col, bmp, 0, 0, 1, 0, 1, 1)

	for row := 0; row < 5; row++ {
		if f.Pix[row] != bg {
			t.Errorf("Row %d: expected background through transparent texel, got %#08x", row, f.Pix[row])
		}
	}
	for row := 5; row < 10; row++ {
		if f.Pix[row] != 0xffffffff {
			t.Errorf("Row %d: expected opaque texel, got %#08x", row, f.Pix[row])
		}
	}
}

func TestDrawStripWritesOpaquePixels(t *testing.T) {
	f, col := singleColumn(4)
	bmp := texture.NewBitmap(1, 1, false)
	bmp.Set(0, 0, 0x00abcdef) // alpha ignored for non-transparent bitmaps
	DrawStrip(col, bmp, 0, 0, 1, 0, 1, 1)
	if f.Pix[0] != 0xffabcdef {
		t.Errorf("Expected opaque pixel, got %#08x", f.Pix[0])
	}
}

func TestDimming(t *testing.T) {
	if got := Dimming(0, DefaultFalloff); got != 1 {
		t.Errorf("Expected no dimming at distance 0, got %v", got)
	}
	if got := Dimming(5, DefaultFalloff); math.Abs(got-1.0/6) > 1e-12 {
		t.Errorf("Expected 1/6 at distance 5, got %v", got)
	}
	if got := DimColor(0x00ff8040, 0.5); got != 0xff7f4020 {
		t.Errorf("Expected 0xff7f4020, got %#08x", got)
	}
	if got := DimColor(0x00123456, 0); got != 0xff000000 {
		t.Errorf("Expected opaque black, got %#08x", got)
	}
}
