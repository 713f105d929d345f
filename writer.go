package bmp

import (
	"io"
	"math"

	"github.com/deepteams/bmp/internal/binutil"
	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/encode"
	"github.com/deepteams/bmp/internal/header"
	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
	"github.com/deepteams/bmp/internal/pool"
)

// Writer encodes one BMP image to a byte sink (spec §4.4, §4.5).
type Writer struct {
	magic uint32
	dst   io.Writer
	seek  io.Seeker // non-nil when dst also implements io.Seeker, for the size back-patch

	state    writeState
	settings settings

	width, height int
	sizeSet       bool

	table       palette.Table
	encSettings encode.Settings
	plan        encode.Plan
	planSet     bool

	rows     [][]uint32 // buffered rows for RLE/Huffman paths, file order
	masks    colormask.Set
	hasAlpha bool

	fileSizePos, imageSizePos int64 // absolute offsets for the back-patch, -1 if unknown
	pixelDataStart            int64

	rowCursor int
}

// NewWriter creates a Writer over dst. If dst also implements io.Seeker,
// the file-size and image-size header fields are back-patched once the
// pixel count is known; otherwise they are left zero (spec §6: an
// unseekable sink is tolerated, not an error).
func NewWriter(dst io.Writer) (*Writer, Result) {
	if dst == nil {
		return nil, ERROR
	}
	w := &Writer{magic: writerMagic, dst: dst, settings: defaultSettings(), fileSizePos: -1, imageSizePos: -1}
	if sk, ok := dst.(io.Seeker); ok {
		w.seek = sk
	}
	return w, OK
}

// SetSize fixes the image's pixel dimensions. It is accepted once, in the
// INIT state, and must precede SaveImage/SaveLine (spec §3: INIT ->
// DIMENSIONS_SET); the other setters are accepted before or after it.
func (w *Writer) SetSize(width, height int) Result {
	if w.state != wsInit || width <= 0 || height <= 0 {
		return ERROR
	}
	w.width, w.height = width, height
	w.sizeSet = true
	w.state = wsDimensionsSet
	return OK
}

// SetPalette installs a colour table for an indexed output image.
func (w *Writer) SetPalette(table palette.Table) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.table = table
	w.encSettings.PaletteSize = len(table)
	return OK
}

// SetRLE selects the compression preference for an indexed image.
func (w *Writer) SetRLE(req encode.RLERequest) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.RLE = req
	return OK
}

// SetAllow2Bit permits 2-bit-per-pixel indexed output for 3-4 colour
// palettes instead of promoting to 4-bit.
func (w *Writer) SetAllow2Bit(v bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.Allow2Bit = v
	return OK
}

// SetAllowHuffman permits OS/2 1-bpp Huffman output for 2-colour palettes.
func (w *Writer) SetAllowHuffman(v bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.AllowHuffman = v
	return OK
}

// SetAllowRLE24 permits OS/2 RLE24 output for 3x8-bit truecolour sources.
func (w *Writer) SetAllowRLE24(v bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.AllowRLE24 = v
	return OK
}

// SetChannelWidths requests explicit packed-RGB(A) channel widths,
// forcing a BITFIELDS/ALPHABITFIELDS plan whenever they cannot be
// expressed as plain BI_RGB (spec §4.4).
func (w *Writer) SetChannelWidths(r, g, b, a int, hasAlpha bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.RedWidth, w.encSettings.GreenWidth, w.encSettings.BlueWidth, w.encSettings.AlphaWidth = r, g, b, a
	w.encSettings.HasAlpha = hasAlpha
	return OK
}

// SetSourceIs3x8 tells the selector the caller's source channels are
// three independent 8-bit values (favours 24-bit/RLE24 planning).
func (w *Writer) SetSourceIs3x8(v bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.SourceIs3x8 = v
	return OK
}

// SetFormat64 selects 64-bpp output.
func (w *Writer) SetFormat64(v bool) Result {
	if w.state >= wsSaveStarted {
		return ERROR
	}
	w.encSettings.Set64Bit = v
	return OK
}

func (w *Writer) resolvePlan() {
	if w.planSet {
		return
	}
	w.plan = encode.SelectFormat(w.encSettings)
	w.planSet = true
	switch w.plan.BitCount {
	case 64:
		w.masks = colormask.Implicit64()
		w.hasAlpha = true
	case 16, 24, 32:
		if w.plan.Compression == header.CompBitfields || w.plan.Compression == header.CompAlphaBitfields {
			m, err := colormask.FromExplicit(
				widthMask(w.encSettings.RedWidth, w.encSettings.GreenWidth, w.encSettings.BlueWidth, w.encSettings.AlphaWidth, 0),
				widthMask(w.encSettings.RedWidth, w.encSettings.GreenWidth, w.encSettings.BlueWidth, w.encSettings.AlphaWidth, 1),
				widthMask(w.encSettings.RedWidth, w.encSettings.GreenWidth, w.encSettings.BlueWidth, w.encSettings.AlphaWidth, 2),
				widthMask(w.encSettings.RedWidth, w.encSettings.GreenWidth, w.encSettings.BlueWidth, w.encSettings.AlphaWidth, 3),
				w.plan.BitCount)
			if err == nil {
				w.masks = m
			}
		} else {
			m, _ := colormask.Implicit(w.plan.BitCount)
			w.masks = m
		}
		w.hasAlpha = w.encSettings.HasAlpha
	}
}

// widthMask packs consecutive channel-width fields (field index 0=R,
// 1=G, 2=B, 3=A) low-to-high into a single raw mask, in A/R/G/B byte
// order matching Implicit's convention, used only when the caller
// requested explicit non-standard widths.
func widthMask(rw, gw, bw, aw, field int) uint32 {
	shift := uint(0)
	widths := [4]int{bw, gw, rw, aw}
	pos := [4]int{2, 1, 0, 3}[field] // position of R, G, B, A in widths
	for i := 0; i < pos; i++ {
		shift += uint(widths[i])
	}
	w := uint(widths[pos])
	if w == 0 {
		return 0
	}
	return ((uint32(1) << w) - 1) << shift
}

func (w *Writer) writeHeaders() error {
	fh := header.FileHeader{Magic: header.MagicBM}
	var ihBuf []byte
	ihSize, err := writeInfoHeader(&ihBuf, w.plan, w.width, w.height, len(w.table))
	if err != nil {
		return err
	}
	entrySize := palette.EntrySize(false)
	offbits := header.FileHeaderSize + int(ihSize) + len(w.table)*entrySize
	fh.OffBits = uint32(offbits)

	if err := header.WriteFileHeader(w.dst, fh); err != nil {
		return err
	}
	if w.seek != nil {
		pos, err := w.seek.Seek(0, io.SeekCurrent)
		if err == nil {
			w.fileSizePos = pos - int64(header.FileHeaderSize) + 2
		}
	}
	if _, err := w.dst.Write(ihBuf); err != nil {
		return err
	}
	if w.seek != nil {
		pos, err := w.seek.Seek(0, io.SeekCurrent)
		if err == nil {
			w.imageSizePos = pos - int64(len(ihBuf)) + 20
		}
	}
	if len(w.table) > 0 {
		if err := palette.Write(w.dst, w.table, entrySize); err != nil {
			return err
		}
	}
	w.pixelDataStart = int64(offbits)
	return nil
}

// writeInfoHeader encodes a V3-or-V3Adobe2 BITMAPINFOHEADER-family struct,
// the only two shapes the encoder ever emits (spec §4.4: new files are
// always written in a modern shape regardless of what was decoded).
func writeInfoHeader(buf *[]byte, plan encode.Plan, width, height, paletteLen int) (uint32, error) {
	size := uint32(40)
	if plan.Compression == header.CompAlphaBitfields {
		size = 56
	} else if plan.Version == header.V3Adobe2 {
		size = 56
	}

	b := make([]byte, size)
	binutil.PutLE32(b[0:4], size)
	binutil.PutLE32(b[4:8], uint32(width))
	binutil.PutLE32(b[8:12], uint32(height))
	binutil.PutLE16(b[12:14], 1)
	binutil.PutLE16(b[14:16], uint16(plan.BitCount))
	binutil.PutLE32(b[16:20], uint32(wireCompressionFor(plan)))
	// SizeImage (20:24) and the size image field are left zero for
	// uncompressed output and back-patched via the writer's seek path for
	// RLE/Huffman output (spec §6).
	binutil.PutLE32(b[32:36], uint32(paletteLen))
	*buf = b
	return size, nil
}

// wireCompressionFor maps a resolved Plan back to the on-disk u32
// compression code, re-colliding BITFIELDS/HUFFMAN (3) and JPEG/RLE24 (4)
// the way the OS/2 writers that originate those codes always have.
func wireCompressionFor(plan encode.Plan) uint32 {
	switch plan.Compression {
	case header.CompRGB:
		return 0
	case header.CompRLE8:
		return 1
	case header.CompRLE4:
		return 2
	case header.CompBitfields, header.CompOS2Huffman:
		return 3
	case header.CompJPEG, header.CompOS2RLE24:
		return 4
	case header.CompAlphaBitfields:
		return 6
	default:
		return 0
	}
}

// SaveImage encodes an entire Image in one call.
func (w *Writer) SaveImage(img *Image) Result {
	if w.state != wsDimensionsSet && w.state != wsSaveStarted {
		return ERROR
	}
	if !w.sizeSet {
		return ERROR
	}
	w.resolvePlan()
	if w.state == wsDimensionsSet {
		if err := w.writeHeaders(); err != nil {
			w.state = wsFatal
			return ERROR
		}
		w.state = wsSaveStarted
	}

	for y := 0; y < w.height; y++ {
		fileY := w.height - 1 - y // default BI_RGB output is bottom-up
		if err := w.encodeRowFromImage(img, fileY); err != nil {
			w.state = wsFatal
			return ERROR
		}
	}
	if err := w.finishCompressed(); err != nil {
		w.state = wsFatal
		return ERROR
	}
	w.state = wsSaveDone
	w.backpatchSizes()
	return OK
}

// SaveLine encodes one row at a time, in the same bottom-up file order
// SaveImage uses, consuming one row of img (ignoring its Height field
// beyond the first call).
func (w *Writer) SaveLine(img *Image, rowIndex int) Result {
	if w.state != wsDimensionsSet && w.state != wsSaveStarted {
		return ERROR
	}
	if !w.sizeSet {
		return ERROR
	}
	w.resolvePlan()
	if w.state == wsDimensionsSet {
		if err := w.writeHeaders(); err != nil {
			w.state = wsFatal
			return ERROR
		}
		w.state = wsSaveStarted
	}
	if err := w.encodeRowFromImage(img, rowIndex); err != nil {
		w.state = wsFatal
		return ERROR
	}
	w.rowCursor++
	if w.rowCursor >= w.height {
		if err := w.finishCompressed(); err != nil {
			w.state = wsFatal
			return ERROR
		}
		w.state = wsSaveDone
		w.backpatchSizes()
	}
	return OK
}

func (w *Writer) isCompressed() bool {
	switch w.plan.Compression {
	case header.CompRLE4, header.CompRLE8, header.CompOS2RLE24, header.CompOS2Huffman:
		return true
	}
	return false
}

func (w *Writer) encodeRowFromImage(img *Image, row int) error {
	if w.isCompressed() {
		return w.bufferRow(img, row)
	}
	if w.plan.BitCount <= 8 {
		return w.writeIndexedRow(img, row)
	}
	if w.plan.BitCount == 64 {
		return w.write64Row(img, row)
	}
	return w.writePackedRow(img, row)
}

func (w *Writer) channelOf(img *Image, row, x, ch int) encode.SourceChannel {
	off := (row*img.Width+x)*img.Channels + ch
	sc := encode.SourceChannel{Format: img.Format}
	switch img.Format {
	case numformat.Float:
		if img.PixF != nil {
			sc.F = img.PixF[off]
		}
	case numformat.S2_13:
		if img.PixS != nil {
			sc.S = img.PixS[off]
		}
	default:
		sc.Bits = img.Depth
		switch img.Depth {
		case 8:
			if img.Pix8 != nil {
				sc.I = uint64(img.Pix8[off])
			}
		case 32:
			if img.Pix32 != nil {
				sc.I = uint64(img.Pix32[off])
			}
		default:
			if img.Pix16 != nil {
				sc.I = uint64(img.Pix16[off])
			}
		}
	}
	return sc
}

func (w *Writer) writePackedRow(img *Image, row int) error {
	pixels := make([]encode.Pixel, img.Width)
	for x := 0; x < img.Width; x++ {
		p := encode.Pixel{
			R: w.channelOf(img, row, x, 0),
			G: w.channelOf(img, row, x, 1),
			B: w.channelOf(img, row, x, 2),
		}
		if img.Channels == 4 {
			p.A = w.channelOf(img, row, x, 3)
		}
		pixels[x] = p
	}
	return encode.WritePackedRGBLine(w.dst, img.Width, w.plan.BitCount, w.masks, pixels, w.hasAlpha)
}

func (w *Writer) write64Row(img *Image, row int) error {
	r := make([]uint16, img.Width)
	g := make([]uint16, img.Width)
	b := make([]uint16, img.Width)
	a := make([]uint16, img.Width)
	for x := 0; x < img.Width; x++ {
		r[x] = channelToS2_13(w.channelOf(img, row, x, 0))
		g[x] = channelToS2_13(w.channelOf(img, row, x, 1))
		b[x] = channelToS2_13(w.channelOf(img, row, x, 2))
		if img.Channels == 4 {
			a[x] = channelToS2_13(w.channelOf(img, row, x, 3))
		} else {
			a[x] = 0x2000
		}
	}
	return encode.WritePackedRGB64Line(w.dst, img.Width, r, g, b, a)
}

func channelToS2_13(c encode.SourceChannel) uint16 {
	switch c.Format {
	case numformat.S2_13:
		return c.S
	case numformat.Float:
		return numformat.FloatToS2_13(float64(c.F))
	default:
		return numformat.ToS2_13FromChannel(c.I, c.Bits)
	}
}

func (w *Writer) writeIndexedRow(img *Image, row int) error {
	indices := make([]byte, img.Width)
	if img.Pix8 != nil && img.Channels == 1 {
		copy(indices, img.Pix8[row*img.Width:(row+1)*img.Width])
	} else {
		for x := 0; x < img.Width; x++ {
			indices[x] = nearestPaletteIndex(w.table, w.channelOf(img, row, x, 0), w.channelOf(img, row, x, 1), w.channelOf(img, row, x, 2))
		}
	}
	return encode.WriteIndexedLine(w.dst, img.Width, w.plan.BitCount, indices)
}

// nearestPaletteIndex finds the closest colour-table entry by squared
// 8-bit channel distance, used only when the caller hands SaveImage
// expanded RGB rather than raw indices for an indexed plan.
func nearestPaletteIndex(table palette.Table, rc, gc, bc encode.SourceChannel) byte {
	r8 := channelToByte(rc)
	g8 := channelToByte(gc)
	b8 := channelToByte(bc)
	best, bestDist := 0, -1
	for i, e := range table {
		dr := int(e.R) - int(r8)
		dg := int(e.G) - int(g8)
		db := int(e.B) - int(b8)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			bestDist, best = d, i
		}
	}
	return byte(best)
}

func channelToByte(c encode.SourceChannel) byte {
	switch c.Format {
	case numformat.Float:
		return byte(numformat.ScaleUnitToBits(float64(c.F), 8))
	case numformat.S2_13:
		return byte(numformat.ScaleUnitToBits(numformat.S2_13ToFloat(c.S), 8))
	default:
		return byte(numformat.RescaleInt(c.I, c.Bits, 8))
	}
}

// bufferRow accumulates one row's raw values (palette indices, 24-bit BGR
// words, or 0/1 Huffman index) for the RLE/Huffman encoders, which need
// the whole image before the end-of-bitmap/six-EOL terminator is known to
// be reachable (spec §4.4).
func (w *Writer) bufferRow(img *Image, row int) error {
	values := make([]uint32, img.Width)
	for x := 0; x < img.Width; x++ {
		if img.Pix8 != nil && img.Channels == 1 {
			values[x] = uint32(img.Pix8[row*img.Width+x])
			continue
		}
		if w.plan.Compression == header.CompOS2RLE24 {
			rC := channelToByte(w.channelOf(img, row, x, 0))
			gC := channelToByte(w.channelOf(img, row, x, 1))
			bC := channelToByte(w.channelOf(img, row, x, 2))
			values[x] = uint32(bC) | uint32(gC)<<8 | uint32(rC)<<16
			continue
		}
		values[x] = uint32(nearestPaletteIndex(w.table, w.channelOf(img, row, x, 0), w.channelOf(img, row, x, 1), w.channelOf(img, row, x, 2)))
	}
	w.rows = append(w.rows, values)
	return nil
}

func (w *Writer) finishCompressed() error {
	if !w.isCompressed() {
		return nil
	}
	if w.plan.Compression == header.CompOS2Huffman {
		enc := encode.NewHuffmanEncoder(w.dst, w.settings.whiteFirst)
		for _, row := range w.rows {
			bits := pool.Get(len(row))
			for i, v := range row {
				bits[i] = byte(v)
			}
			enc.WriteRow(bits)
			pool.Put(bits)
		}
		enc.Finish()
		return nil
	}
	return encode.EncodeRLE(w.dst, w.rows, w.plan.BitCount)
}

// backpatchSizes seeks back and fills the file-size and image-size u32
// fields once the total output length is known; a no-op when the sink is
// not seekable.
func (w *Writer) backpatchSizes() {
	if w.seek == nil {
		return
	}
	end, err := w.seek.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}
	if w.fileSizePos >= 0 && end <= math.MaxUint32 {
		w.seek.Seek(w.fileSizePos, io.SeekStart)
		binutil.WriteU32(w.dst, uint32(end))
	}
	if w.imageSizePos >= 0 {
		imageSize := end - w.pixelDataStart
		if imageSize <= math.MaxUint32 {
			w.seek.Seek(w.imageSizePos, io.SeekStart)
			binutil.WriteU32(w.dst, uint32(imageSize))
		}
	}
	w.seek.Seek(end, io.SeekStart)
}
