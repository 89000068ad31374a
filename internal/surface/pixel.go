package surface

import (
	"fmt"
	"image/color"
)

// BytesPerPixel is the size of one pixel in a Store's memory.
const BytesPerPixel = 4

// Pixel is a 4-channel color. It converts bit for bit to and from a packed
// 0xAARRGGBB integer.
type Pixel struct {
	A, R, G, B uint8
}

// PixelFromUint32 unpacks a 0xAARRGGBB value.
func PixelFromUint32(v uint32) Pixel {
	return Pixel{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Uint32 packs p as 0xAARRGGBB.
func (p Pixel) Uint32() uint32 {
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

// PixelFromColor converts any color.Color to straight alpha, dropping
// precision to 8 bits.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{A: n.A, R: n.R, G: n.G, B: n.B}
}

// NRGBA returns p as a standard library color.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

func (p Pixel) String() string {
	return fmt.Sprintf("#%08x", p.Uint32())
}

// load reads a pixel stored in B, G, R, A byte order.
func load(b []byte) Pixel {
	return Pixel{B: b[0], G: b[1], R: b[2], A: b[3]}
}

// store writes p in B, G, R, A byte order.
func store(b []byte, p Pixel) {
	b[0] = p.B
	b[1] = p.G
	b[2] = p.R
	b[3] = p.A
}
