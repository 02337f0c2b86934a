// Package render turns a world snapshot and a camera into pixels, one screen
// column at a time.
package render

import (
	"fmt"
	"image"
)

// Frame is a row-major 0xAARRGGBB pixel buffer.
type Frame struct {
	Pix    []uint32
	Width  int
	Height int
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
	}
}

// Fill sets every pixel to px.
func (f *Frame) Fill(px uint32) {
	for i := range f.Pix {
		f.Pix[i] = px
	}
}

// Resize reallocates the buffer when the size changed.
func (f *Frame) Resize(width, height int) {
	if width == f.Width && height == f.Height {
		return
	}
	f.Width, f.Height = width, height
	f.Pix = make([]uint32, width*height)
}

// Bytes writes the frame as RGBA bytes into dst, growing it when needed.
func (f *Frame) Bytes(dst []byte) []byte {
	n := len(f.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, px := range f.Pix {
		dst[i*4] = byte(px >> 16)
		dst[i*4+1] = byte(px >> 8)
		dst[i*4+2] = byte(px)
		dst[i*4+3] = byte(px >> 24)
	}
	return dst
}

// Image copies the frame into an RGBA image, for saving snapshots.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	img.Pix = f.Bytes(img.Pix)
	return img
}

// Region is a column range [x0, x1) of a shared frame buffer. Regions are
// only created by SplitColumns, which never hands out two that overlap, so
// the goroutine holding a Region is the only writer of those columns.
type Region struct {
	pix    []uint32
	stride int
	height int
	x0, x1 int
}

// SplitColumns partitions the columns of a width x height buffer into
// regions of at most chunk columns. The regions are pairwise disjoint and
// cover every column exactly once.
func SplitColumns(buf []uint32, width, height, chunk int) []Region {
	if len(buf) != width*height {
		panic(fmt.Sprintf("render: buffer holds %d pixels, want %dx%d", len(buf), width, height))
	}
	if chunk < 1 {
		chunk = 1
	}
	regions := make([]Region, 0, (width+chunk-1)/chunk)
	for x0 := 0; x0 < width; x0 += chunk {
		regions = append(regions, Region{
			pix:    buf,
			stride: width,
			height: height,
			x0:     x0,
			x1:     min(x0+chunk, width),
		})
	}
	return regions
}

// Start is the first column of the region.
func (r Region) Start() int { return r.x0 }

// End is one past the last column of the region.
func (r Region) End() int { return r.x1 }

func (r Region) Width() int  { return r.x1 - r.x0 }
func (r Region) Height() int { return r.height }

// Column returns screen column x, which must lie inside the region.
func (r Region) Column(x int) Column {
	if x < r.x0 || x >= r.x1 {
		panic(fmt.Sprintf("render: column %d outside region [%d,%d)", x, r.x0, r.x1))
	}
	return Column{pix: r.pix, stride: r.stride, x: x, height: r.height}
}

// Column is one screen column of a frame.
type Column struct {
	pix    []uint32
	stride int
	x      int
	height int
}

func (c Column) X() int      { return c.x }
func (c Column) Height() int { return c.height }

func (c Column) Set(row int, px uint32) {
	c.pix[row*c.stride+c.x] = px
}

func (c Column) Get(row int) uint32 {
	return c.pix[row*c.stride+c.x]
}

// Fill sets every row of the column to px.
func (c Column) Fill(px uint32) {
	for row := 0; row < c.height; row++ {
		c.pix[row*c.stride+c.x] = px
	}
}
