package pixfilter

import (
	"errors"
	"image"
	"image/color"
)

// Image is a read-only, whole-image pixel access abstraction.
// Filters never write to an Image they receive as source.
type Image interface {
	// Dims returns the image size. Stride is only meaningful for [ImageBuffered].
	Dims() Dims
	// ColorAt returns the pixel at column x and row y.
	// Callers guarantee 0 <= x < Width and 0 <= y < Height.
	ColorAt(x, y int) Color
}

// ImageBuffered is implemented by images stored in memory as a row-major
// RGBA8888 buffer.
//
// Users should always try casting [Image] to [ImageBuffered]
// to see if they can work with the image in-memory which is more efficient.
type ImageBuffered interface {
	Image
	// Buffer returns the raw underlying buffer. Rows are separated by
	// [Dims.Stride] bytes and every pixel takes 4 bytes ordered R,G,B,A.
	Buffer() []byte
}

// BytesPerPixel is the storage size of a single [Color] in a buffer.
const BytesPerPixel = 4

type Dims struct {
	Width  int
	Height int
	Stride int
}

// ValidateSize checks width and height only. It is all that accessor based
// images need; an image with zero width or height is valid and has no pixels.
func (d Dims) ValidateSize() error {
	if d.Height < 0 || d.Width < 0 {
		return errors.New("negative image dimensions")
	}
	return nil
}

// Validate checks the dimensions describe a usable in-memory buffer:
// besides [Dims.ValidateSize] the stride must fit a whole row.
func (d Dims) Validate() error {
	if err := d.ValidateSize(); err != nil {
		return err
	} else if d.Width*BytesPerPixel > d.Stride && d.Height > 0 {
		return errors.New("stride smaller than pixel row size")
	}
	return nil
}

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

func (d Dims) SizeRow() int {
	return d.Width * BytesPerPixel
}

// RGBA is an in-memory, row-major image with 8 bits per channel.
// Channel values are not premultiplied by alpha.
type RGBA struct {
	dims Dims
	pix  []byte
}

var _ ImageBuffered = (*RGBA)(nil)

// NewRGBA allocates a zeroed (transparent black) image of the given size.
// It panics on negative dimensions like [image.NewRGBA].
func NewRGBA(width, height int) *RGBA {
	d := Dims{Width: width, Height: height, Stride: width * BytesPerPixel}
	if err := d.Validate(); err != nil {
		panic("pixfilter: " + err.Error())
	}
	return &RGBA{dims: d, pix: make([]byte, d.Size())}
}

// Dims implements [Image].
func (m *RGBA) Dims() Dims { return m.dims }

// Buffer implements [ImageBuffered].
func (m *RGBA) Buffer() []byte { return m.pix }

// ColorAt implements [Image].
func (m *RGBA) ColorAt(x, y int) Color {
	off := m.offset(x, y)
	p := m.pix[off : off+BytesPerPixel : off+BytesPerPixel]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// SetColor stores c at column x and row y.
func (m *RGBA) SetColor(x, y int, c Color) {
	off := m.offset(x, y)
	p := m.pix[off : off+BytesPerPixel : off+BytesPerPixel]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

func (m *RGBA) offset(x, y int) int {
	return y*m.dims.Stride + x*BytesPerPixel
}

// Equal reports whether both images have the same size and pixels.
func (m *RGBA) Equal(other *RGBA) bool {
	if m.dims.Width != other.dims.Width || m.dims.Height != other.dims.Height {
		return false
	}
	for y := 0; y < m.dims.Height; y++ {
		for x := 0; x < m.dims.Width; x++ {
			if m.ColorAt(x, y) != other.ColorAt(x, y) {
				return false
			}
		}
	}
	return true
}

// NRGBA copies the image into a standard library image for encoding or display.
func (m *RGBA) NRGBA() *image.NRGBA {
	d := m.dims
	out := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+d.SizeRow()], m.pix[y*d.Stride:y*d.Stride+d.SizeRow()])
	}
	return out
}

// FromImage copies any standard library image into a new [RGBA] with its
// origin moved to (0,0).
func FromImage(img image.Image) *RGBA {
	b := img.Bounds()
	out := NewRGBA(b.Dx(), b.Dy())
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.pix[y*out.dims.Stride:], src.Pix[off:off+out.dims.SizeRow()])
		}
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.SetColor(x, y, Color{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return out
}
