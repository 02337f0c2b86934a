package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Bitmap is a texture stored column by column, so a vertical strip of the
// source is one contiguous slice. Pixels are packed 0xAARRGGBB.
type Bitmap struct {
	width       int
	height      int
	pix         []uint32
	Transparent bool // Texels with zero alpha are skipped when drawn
}

// NewBitmap allocates a fully transparent bitmap.
func NewBitmap(width, height int, transparent bool) *Bitmap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Bitmap{
		width:       width,
		height:      height,
		pix:         make([]uint32, width*height),
		Transparent: transparent,
	}
}

func (b *Bitmap) Width() int  { return b.width }
func (b *Bitmap) Height() int { return b.height }

// At returns the texel at (x, y). Coordinates are not range checked beyond
// the slice bounds.
func (b *Bitmap) At(x, y int) uint32 {
	return b.pix[x*b.height+y]
}

func (b *Bitmap) Set(x, y int, px uint32) {
	b.pix[x*b.height+y] = px
}

// Column returns texel column x, top to bottom.
func (b *Bitmap) Column(x int) []uint32 {
	start := x * b.height
	return b.pix[start : start+b.height : start+b.height]
}

// Pack builds a 0xAARRGGBB pixel.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a 0xAARRGGBB pixel.
func Unpack(px uint32) (r, g, b, a uint8) {
	return uint8(px >> 16), uint8(px >> 8), uint8(px), uint8(px >> 24)
}

// FromImage converts img into a bitmap. When maxSize is positive, images
// larger than maxSize on either side are scaled down to fit.
func FromImage(img image.Image, maxSize int, transparent bool) *Bitmap {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(nrgba, nrgba.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.NearestNeighbor.Scale(nrgba, nrgba.Bounds(), img, src, draw.Src, nil)
	}

	bmp := NewBitmap(w, h, transparent)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := nrgba.NRGBAAt(x, y)
			bmp.Set(x, y, Pack(c.R, c.G, c.B, c.A))
		}
	}
	return bmp
}

// SubBitmap copies the columns [x0, x0+width) into a new bitmap.
func (b *Bitmap) SubBitmap(x0, width int) *Bitmap {
	out := NewBitmap(width, b.height, b.Transparent)
	copy(out.pix, b.pix[x0*b.height:(x0+width)*b.height])
	return out
}

// Image returns an NRGBA copy of the bitmap.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			r, g, bl, a := Unpack(b.At(x, y))
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: bl, A: a})
		}
	}
	return img
}
