package bmp

import (
	"bytes"
	"io"
	"math"

	"github.com/deepteams/bmp/internal/binutil"
	"github.com/deepteams/bmp/internal/bitio"
	"github.com/deepteams/bmp/internal/colormask"
	"github.com/deepteams/bmp/internal/decode"
	"github.com/deepteams/bmp/internal/diag"
	"github.com/deepteams/bmp/internal/header"
	"github.com/deepteams/bmp/internal/numformat"
	"github.com/deepteams/bmp/internal/palette"
)

// maxICCProfileSize is the compile-time default of spec §6.
const maxICCProfileSize = 1 << 20

// Reader decodes one BMP image from a byte sink (spec §4.5).
type Reader struct {
	magic uint32
	src   io.Reader
	log   *diag.Log

	state    readState
	settings settings

	fh       header.FileHeader
	ih       header.InfoHeader
	comp     header.Compression
	bitcount int
	topDown  bool
	table    palette.Table
	masks    colormask.Set
	hasAlpha bool

	bytesRead int

	// terminal is set when header parsing already determined the outcome
	// (ARRAY / PNG / JPEG / a header-level INVALID) and no pixel decode is
	// possible.
	terminal    Result
	isTerminal  bool

	queriedWidth, queriedHeight, queriedChannels, queriedDepth bool

	fileOrder *Image // rows as they appear in the file, built lazily
	latches   decode.Latches

	lineCursor int
}

// NewReader reads and classifies the file header and info header from
// src, resolving compression, palette, and colour masks (spec §4.1,
// §4.2). The returned Result is ARRAY for a bitmap-array or icon/pointer
// enclosure, PNG/JPEG for an embedded payload (the sink is left positioned
// at the first payload byte), INVALID for a malformed or unsupported
// header, ERROR when the header bytes cannot be read, or OK.
func NewReader(src io.Reader) (*Reader, Result) {
	rd := &Reader{magic: readerMagic, src: src, log: newLog(), settings: defaultSettings()}

	fh, err := header.ReadFileHeader(src)
	if err != nil {
		rd.fatal()
		return rd, ERROR
	}
	rd.fh = fh
	rd.bytesRead = header.FileHeaderSize

	switch fh.Magic {
	case header.MagicBA:
		rd.state = rsArray
		rd.setTerminal(ARRAY)
		return rd, ARRAY
	case header.MagicCI, header.MagicCP, header.MagicIC, header.MagicPT:
		// Icon/pointer enclosures are handled only at the demultiplexing
		// boundary (out of scope for pixel-by-pixel mask decoding, spec
		// §1); report the same ARRAY code used for bitmap arrays.
		rd.state = rsArray
		rd.setTerminal(ARRAY)
		return rd, ARRAY
	}

	size, err := binutil.ReadU32(src)
	if err != nil {
		rd.fatal()
		return rd, ERROR
	}
	rd.bytesRead += 4
	ih, err := header.ReadInfoHeader(src, size)
	if err == header.ErrBadInfoHeaderSize {
		rd.log.Append("info header: %v", err)
		rd.setTerminal(INVALID)
		return rd, INVALID
	}
	if err != nil {
		rd.fatal()
		return rd, ERROR
	}
	rd.bytesRead += int(size) - 4
	rd.ih = ih

	header.Disambiguate(&rd.ih, fh.Magic, fh.FileSize)
	rd.comp = header.ResolveCompression(&rd.ih)
	rd.bitcount = int(rd.ih.BitCount)

	if err := header.CheckSupportGate(rd.ih.Planes, rd.bitcount, rd.comp); err != nil {
		rd.log.Append("unsupported header: %v", err)
		rd.setTerminal(INVALID)
		return rd, INVALID
	}

	rawHeight := int(rd.ih.Height)
	rd.topDown = rawHeight < 0
	if rd.topDown {
		rawHeight = -rawHeight
	}
	rd.ih.Height = int32(rawHeight)

	if header.IsEmbedded(rd.comp) {
		rd.skipTo(int(rd.fh.OffBits))
		result := PNG
		if rd.comp == header.CompJPEG {
			result = JPEG
		}
		rd.setTerminal(result)
		return rd, result
	}

	if rd.bitcount <= 8 {
		if err := rd.readPalette(); err != nil {
			rd.log.Append("palette: %v", err)
			rd.setTerminal(INVALID)
			return rd, INVALID
		}
	}

	if rd.comp == header.CompBitfields || rd.comp == header.CompAlphaBitfields {
		if err := rd.readMasks(); err != nil {
			rd.log.Append("colour masks: %v", err)
			rd.setTerminal(INVALID)
			return rd, INVALID
		}
	} else if rd.comp == header.CompRGB && rd.bitcount >= 16 {
		if rd.bitcount == 64 {
			rd.masks = colormask.Implicit64()
		} else {
			m, err := colormask.Implicit(rd.bitcount)
			if err != nil {
				rd.setTerminal(INVALID)
				return rd, INVALID
			}
			rd.masks = m
		}
	}
	rd.hasAlpha = rd.masks.A.Mask != 0 || rd.bitcount == 64

	rd.state = rsHeaderOK
	return rd, OK
}

func (rd *Reader) fatal() {
	rd.state = rsFatal
}

func (rd *Reader) setTerminal(r Result) {
	rd.isTerminal = true
	rd.terminal = r
}

func (rd *Reader) skipTo(offset int) {
	if offset <= rd.bytesRead {
		return
	}
	n := offset - rd.bytesRead
	io.CopyN(io.Discard, rd.src, int64(n))
	rd.bytesRead = offset
}

func (rd *Reader) readPalette() error {
	isCore := rd.ih.Version == header.CoreOS21
	entrySize := palette.EntrySize(isCore)
	numColors := int(rd.ih.ClrUsed)
	maxForBitcount := 1 << uint(rd.bitcount)
	if numColors == 0 {
		numColors = maxForBitcount
	}
	if numColors > maxForBitcount {
		numColors = maxForBitcount
	}
	table, n, err := palette.Read(rd.src, numColors, entrySize, rd.bytesRead, int(rd.fh.OffBits))
	if err != nil {
		return err
	}
	rd.table = table
	rd.bytesRead += n
	return nil
}

// readMasks reads the three or four explicit colour-mask u32s, either
// already parsed from the info header (V3_ADOBE1+) or as extra fields
// immediately following the info header for older versions (spec §4.2).
func (rd *Reader) readMasks() error {
	var rMask, gMask, bMask, aMask uint32
	if rd.ih.Version >= header.V3Adobe1 {
		rMask, gMask, bMask = rd.ih.RedMask, rd.ih.GreenMask, rd.ih.BlueMask
		if rd.ih.Version >= header.V3Adobe2 {
			aMask = rd.ih.AlphaMask
		}
	} else {
		var err error
		if rMask, err = binutil.ReadU32(rd.src); err != nil {
			return err
		}
		if gMask, err = binutil.ReadU32(rd.src); err != nil {
			return err
		}
		if bMask, err = binutil.ReadU32(rd.src); err != nil {
			return err
		}
		rd.bytesRead += 12
		if rd.comp == header.CompAlphaBitfields {
			if aMask, err = binutil.ReadU32(rd.src); err != nil {
				return err
			}
			rd.bytesRead += 4
		}
	}
	m, err := colormask.FromExplicit(rMask, gMask, bMask, aMask, rd.bitcount)
	if err != nil {
		return err
	}
	rd.masks = m
	return nil
}

// --- dimension getters ---

func (rd *Reader) allAxesQueried() bool {
	return rd.queriedWidth && rd.queriedHeight && rd.queriedChannels && rd.queriedDepth
}

func (rd *Reader) markQueried() {
	if rd.state == rsHeaderOK && rd.allAxesQueried() {
		rd.state = rsDimensionsQueried
	}
}

// Width returns the image width in pixels.
func (rd *Reader) Width() (int, Result) {
	if rd.isTerminal {
		return 0, rd.terminal
	}
	rd.queriedWidth = true
	rd.markQueried()
	return int(rd.ih.Width), OK
}

// Height returns the image height in pixels (always positive; load_image
// always presents rows top-down regardless of the file's orientation).
func (rd *Reader) Height() (int, Result) {
	if rd.isTerminal {
		return 0, rd.terminal
	}
	rd.queriedHeight = true
	rd.markQueried()
	return int(rd.ih.Height), OK
}

// Channels returns 1 in result-indexed mode; otherwise 4 when the image
// carries (or is forced to carry, via UndefinedToAlpha on an RLE source)
// an alpha channel, else 3.
func (rd *Reader) Channels() (int, Result) {
	if rd.isTerminal {
		return 0, rd.terminal
	}
	rd.queriedChannels = true
	rd.markQueried()
	return rd.channels(), OK
}

func (rd *Reader) channels() int {
	if rd.settings.resultIndexed {
		return 1
	}
	if rd.hasAlpha {
		return 4
	}
	if rd.settings.undefined == UndefinedToAlpha && rd.isRLE() {
		return 4
	}
	return 3
}

func (rd *Reader) isRLE() bool {
	switch rd.comp {
	case header.CompRLE4, header.CompRLE8, header.CompOS2RLE24:
		return true
	}
	return false
}

// Depth returns the per-channel result bit depth for the currently
// selected NumberFormat: 8/16/32 for FormatInt, 32 for FormatFloat, 16 for
// FormatS2_13.
func (rd *Reader) Depth() (int, Result) {
	if rd.isTerminal {
		return 0, rd.terminal
	}
	rd.queriedDepth = true
	rd.markQueried()
	return int(rd.resultBits()), OK
}

func (rd *Reader) resultBits() uint {
	switch rd.settings.format {
	case numformat.Float:
		return 32
	case numformat.S2_13:
		return 16
	default:
		return numformat.ResultIntBits(rd.widestSourceBits())
	}
}

func (rd *Reader) widestSourceBits() uint {
	if rd.bitcount <= 8 {
		return 8
	}
	if rd.bitcount == 64 {
		return 16
	}
	w := rd.masks.R.Width
	if rd.masks.G.Width > w {
		w = rd.masks.G.Width
	}
	if rd.masks.B.Width > w {
		w = rd.masks.B.Width
	}
	if rd.masks.A.Width > w {
		w = rd.masks.A.Width
	}
	if w == 0 {
		w = 8
	}
	return w
}

// ICCProfile returns the embedded ICC colour profile bytes of a V5 header
// with a non-zero ProfileData offset (PROFILE_EMBEDDED, spec §6),
// capped at maxICCProfileSize. It requires the underlying source to
// implement io.Seeker (the profile lives at an absolute file offset that
// may fall before or after the pixel data); ErrWrongHandle is returned
// otherwise. Returns (nil, nil) when the header carries no profile.
func (rd *Reader) ICCProfile() ([]byte, error) {
	if rd.ih.Version != header.V5 || rd.ih.ProfileData == 0 || rd.ih.ProfileSize == 0 {
		return nil, nil
	}
	sk, ok := rd.src.(io.Seeker)
	if !ok {
		return nil, ErrWrongHandle
	}
	size := int(rd.ih.ProfileSize)
	if size > maxICCProfileSize {
		size = maxICCProfileSize
	}
	saved, err := sk.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	offset := int64(header.FileHeaderSize) + int64(rd.ih.ProfileData)
	if _, err := sk.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	n, readErr := io.ReadFull(rd.src, buf)
	sk.Seek(saved, io.SeekStart)
	if readErr != nil && readErr != io.ErrUnexpectedEOF {
		return nil, readErr
	}
	return buf[:n], nil
}

// --- settings setters (spec §5: regress DIMENSIONS_QUERIED to HEADER_OK) ---

func (rd *Reader) regress() {
	if rd.state == rsDimensionsQueried {
		rd.state = rsHeaderOK
	}
	rd.queriedWidth, rd.queriedHeight, rd.queriedChannels, rd.queriedDepth = false, false, false, false
}

// SetFormat selects the numeric result format (spec §3).
func (rd *Reader) SetFormat(f NumberFormat) Result {
	if rd.state >= rsLoadStarted {
		return ERROR
	}
	rd.settings.format = f
	rd.regress()
	return OK
}

// SetConv64 selects the 64-bpp conversion mode.
func (rd *Reader) SetConv64(c Conv64Mode) Result {
	if rd.state >= rsLoadStarted {
		return ERROR
	}
	rd.settings.conv64 = c
	rd.regress()
	return OK
}

// SetUndefined selects the undefined-pixel policy for RLE sources.
func (rd *Reader) SetUndefined(u UndefinedPolicy) Result {
	if rd.state >= rsLoadStarted {
		return ERROR
	}
	rd.settings.undefined = u
	rd.regress()
	return OK
}

// SetResultIndexed requests raw palette indices instead of expanded RGB.
// Only valid for indexed sources with FormatInt.
func (rd *Reader) SetResultIndexed(v bool) Result {
	if rd.state >= rsLoadStarted {
		return ERROR
	}
	if v && rd.settings.format != numformat.Int {
		return ERROR
	}
	rd.settings.resultIndexed = v
	rd.regress()
	return OK
}

// SetHuffmanPolarity sets whether each Huffman row starts with a white run
// (default) or a black run. White pixels decode to index 0 and black
// pixels to index 1 either way.
func (rd *Reader) SetHuffmanPolarity(whiteIsZero bool) Result {
	if rd.state >= rsLoadStarted {
		return ERROR
	}
	rd.settings.whiteFirst = whiteIsZero
	rd.regress()
	return OK
}

// --- pixel transfer ---

// LoadImage decodes the entire image into a caller-owned Image, presented
// top-down (spec §5).
func (rd *Reader) LoadImage() (*Image, Result) {
	if rd.isTerminal {
		return nil, rd.terminal
	}
	if rd.state < rsDimensionsQueried {
		return nil, ERROR
	}
	if err := rd.ensureDecoded(); err != nil {
		rd.fatal()
		return nil, ERROR
	}
	rd.state = rsLoadDone
	img := rd.fileOrder
	if !rd.topDown {
		img = rd.fileOrder.clone()
		img.flipVertical()
	}
	return img, rd.finalResult()
}

// LoadLine returns one row at a time, in file order (spec §5: "the caller
// sees rows bottom-up unless the file is top-down").
func (rd *Reader) LoadLine() ([]byte, Result) {
	if rd.isTerminal {
		return nil, rd.terminal
	}
	if rd.state < rsDimensionsQueried {
		return nil, ERROR
	}
	if err := rd.ensureDecoded(); err != nil {
		rd.fatal()
		return nil, ERROR
	}
	rd.state = rsLoadStarted
	if rd.lineCursor >= rd.fileOrder.Height {
		return nil, rd.finalResult()
	}
	rd.log.Reset()
	row := rowBytes(rd.fileOrder, rd.lineCursor)
	rd.lineCursor++
	if rd.lineCursor >= rd.fileOrder.Height {
		rd.state = rsLoadDone
	}
	return row, OK
}

func (rd *Reader) finalResult() Result {
	if rd.latches.Truncated() {
		return TRUNCATED
	}
	if rd.latches.Invalid() {
		return INVALID
	}
	return OK
}

func (rd *Reader) ensureDecoded() error {
	if rd.fileOrder != nil {
		return nil
	}
	width, height := int(rd.ih.Width), int(rd.ih.Height)
	channels := rd.channels()
	resultBits := rd.resultBits()
	img := newImage(width, height, channels, rd.settings.format, resultBits)

	switch {
	case rd.comp == header.CompOS2Huffman:
		rd.decodeHuffman(img, width, height)
	case rd.isRLE():
		rd.decodeRLEImage(img, width, height)
	case rd.bitcount <= 8:
		for y := 0; y < height; y++ {
			row := decode.ReadIndexedLine(rd.src, width, rd.bitcount, rd.table, rd.settings.resultIndexed, rd.settings.format, resultBits, &rd.latches)
			rd.storeIndexedRow(img, y, row)
		}
	default:
		for y := 0; y < height; y++ {
			row := decode.ReadPackedRGBLine(rd.src, width, rd.bitcount, rd.masks, rd.settings.format, resultBits, rd.settings.conv64, rd.hasAlpha, &rd.latches)
			rd.storePixelRow(img, y, row, channels)
		}
	}
	rd.fileOrder = img
	return nil
}

func (rd *Reader) storePixelRow(img *Image, y int, row []decode.Pixel, channels int) {
	for x, px := range row {
		img.setChannel(y, x, 0, px.RI, px.RF, px.RS)
		img.setChannel(y, x, 1, px.GI, px.GF, px.GS)
		img.setChannel(y, x, 2, px.BI, px.BF, px.BS)
		if channels == 4 {
			img.setChannel(y, x, 3, px.AI, px.AF, px.AS)
		}
	}
}

func (rd *Reader) storeIndexedRow(img *Image, y int, row []decode.IndexedPixel) {
	for x, ip := range row {
		if rd.settings.resultIndexed {
			img.setIndex(y, x, ip.Index)
			continue
		}
		img.setChannel(y, x, 0, ip.Pixel.RI, ip.Pixel.RF, ip.Pixel.RS)
		img.setChannel(y, x, 1, ip.Pixel.GI, ip.Pixel.GF, ip.Pixel.GS)
		img.setChannel(y, x, 2, ip.Pixel.BI, ip.Pixel.BF, ip.Pixel.BS)
	}
}

func (rd *Reader) decodeRLEImage(img *Image, width, height int) {
	channels := rd.channels()
	grid := decode.DecodeRLE(rd.src, width, height, rd.bitcount, rd.table, rd.settings.resultIndexed, rd.settings.format, rd.resultBits(), rd.settings.undefined, channels == 4, &rd.latches)
	for y, row := range grid {
		for x, cell := range row {
			if rd.settings.resultIndexed {
				img.setIndex(y, x, cell.Index)
				continue
			}
			img.setChannel(y, x, 0, cell.Pixel.RI, cell.Pixel.RF, cell.Pixel.RS)
			img.setChannel(y, x, 1, cell.Pixel.GI, cell.Pixel.GF, cell.Pixel.GS)
			img.setChannel(y, x, 2, cell.Pixel.BI, cell.Pixel.BF, cell.Pixel.BS)
			if channels == 4 {
				img.setChannel(y, x, 3, cell.Pixel.AI, cell.Pixel.AF, cell.Pixel.AS)
			}
		}
	}
}

func (rd *Reader) decodeHuffman(img *Image, width, height int) {
	br := bitio.NewReversedReader(rd.src)
	cursor := decode.NewHuffmanCursor(br, rd.settings.whiteFirst)
	var blackRGB, whiteRGB [3]byte
	whiteRGB = [3]byte{255, 255, 255}
	if len(rd.table) >= 2 {
		whiteRGB = [3]byte{rd.table[0].R, rd.table[0].G, rd.table[0].B}
		blackRGB = [3]byte{rd.table[1].R, rd.table[1].G, rd.table[1].B}
	}
	for y := 0; y < height; y++ {
		bits := cursor.ReadRow(width, &rd.latches)
		expanded := decode.ExpandHuffmanRow(bits, blackRGB, whiteRGB, rd.settings.resultIndexed, rd.settings.format, rd.resultBits())
		rd.storeIndexedRow(img, y, expanded)
	}
}

// rowBytes serialises one row of img to a flat little-endian byte slice,
// used by LoadLine's caller-facing contract of a raw per-row buffer.
func rowBytes(img *Image, y int) []byte {
	stride := img.Width * img.Channels
	var buf bytes.Buffer
	switch {
	case img.Pix8 != nil:
		return append([]byte(nil), img.Pix8[y*stride:(y+1)*stride]...)
	case img.Pix16 != nil, img.PixS != nil:
		src := img.Pix16
		if src == nil {
			src = img.PixS
		}
		for _, v := range src[y*stride : (y+1)*stride] {
			var b [2]byte
			binutil.PutLE16(b[:], v)
			buf.Write(b[:])
		}
	case img.Pix32 != nil:
		for _, v := range img.Pix32[y*stride : (y+1)*stride] {
			var b [4]byte
			binutil.PutLE32(b[:], v)
			buf.Write(b[:])
		}
	case img.PixF != nil:
		for _, v := range img.PixF[y*stride : (y+1)*stride] {
			var b [4]byte
			binutil.PutLE32(b[:], math.Float32bits(v))
			buf.Write(b[:])
		}
	}
	return buf.Bytes()
}
