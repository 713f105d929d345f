package bmp

import "github.com/deepteams/bmp/internal/numformat"

// Image is a fully decoded (or encode-ready) pixel buffer, always
// presented top-down with Channels interleaved values per pixel
// (spec §5: "line reads return rows in top-down order... during
// load_image"). Exactly one of the Pix* slices is populated, selected by
// Format and, for FormatInt, Depth.
type Image struct {
	Width, Height, Channels int
	Format                  NumberFormat
	Depth                   uint // 8, 16, or 32 when Format == FormatInt

	Pix8  []byte    // FormatInt && Depth==8, or raw palette indices (Channels==1)
	Pix16 []uint16  // FormatInt && Depth==16
	Pix32 []uint32  // FormatInt && Depth==32
	PixS  []uint16  // FormatS2_13
	PixF  []float32 // FormatFloat
}

func newImage(width, height, channels int, format NumberFormat, depth uint) *Image {
	img := &Image{Width: width, Height: height, Channels: channels, Format: format, Depth: depth}
	n := width * height * channels
	switch format {
	case numformat.Float:
		img.PixF = make([]float32, n)
	case numformat.S2_13:
		img.PixS = make([]uint16, n)
	default:
		switch depth {
		case 8:
			img.Pix8 = make([]byte, n)
		case 32:
			img.Pix32 = make([]uint32, n)
		default:
			img.Pix16 = make([]uint16, n)
		}
	}
	return img
}

func (img *Image) setChannel(row, x, ch int, intVal uint64, f32Val float32, s2 uint16) {
	off := (row*img.Width+x)*img.Channels + ch
	switch img.Format {
	case numformat.Float:
		img.PixF[off] = f32Val
	case numformat.S2_13:
		img.PixS[off] = s2
	default:
		switch img.Depth {
		case 8:
			img.Pix8[off] = byte(intVal)
		case 32:
			img.Pix32[off] = uint32(intVal)
		default:
			img.Pix16[off] = uint16(intVal)
		}
	}
}

func (img *Image) setIndex(row, x int, idx byte) {
	img.Pix8[row*img.Width+x] = idx
}

// flipVertical reverses row order in place, used to turn a file-order
// buffer into the top-down order load_image always presents (spec §4.3,
// §5).
func (img *Image) flipVertical() {
	stride := img.Width * img.Channels
	swapRow := func(a, b int) {
		switch {
		case img.Pix8 != nil:
			ra, rb := img.Pix8[a*stride:(a+1)*stride], img.Pix8[b*stride:(b+1)*stride]
			for i := range ra {
				ra[i], rb[i] = rb[i], ra[i]
			}
		case img.Pix16 != nil:
			ra, rb := img.Pix16[a*stride:(a+1)*stride], img.Pix16[b*stride:(b+1)*stride]
			for i := range ra {
				ra[i], rb[i] = rb[i], ra[i]
			}
		case img.Pix32 != nil:
			ra, rb := img.Pix32[a*stride:(a+1)*stride], img.Pix32[b*stride:(b+1)*stride]
			for i := range ra {
				ra[i], rb[i] = rb[i], ra[i]
			}
		case img.PixS != nil:
			ra, rb := img.PixS[a*stride:(a+1)*stride], img.PixS[b*stride:(b+1)*stride]
			for i := range ra {
				ra[i], rb[i] = rb[i], ra[i]
			}
		case img.PixF != nil:
			ra, rb := img.PixF[a*stride:(a+1)*stride], img.PixF[b*stride:(b+1)*stride]
			for i := range ra {
				ra[i], rb[i] = rb[i], ra[i]
			}
		}
	}
	for a, b := 0, img.Height-1; a < b; a, b = a+1, b-1 {
		swapRow(a, b)
	}
}

// clone returns a deep copy with the same orientation.
func (img *Image) clone() *Image {
	cp := *img
	cp.Pix8 = append([]byte(nil), img.Pix8...)
	cp.Pix16 = append([]uint16(nil), img.Pix16...)
	cp.Pix32 = append([]uint32(nil), img.Pix32...)
	cp.PixS = append([]uint16(nil), img.PixS...)
	cp.PixF = append([]float32(nil), img.PixF...)
	return &cp
}
