package huffman

import "github.com/deepteams/bmp/internal/bitio"

// decodeEntry is one slot of a flattened Huffman decode table: Bits is the
// codeword length that matched (0 if this slot is unfilled, i.e. an invalid
// prefix), Run is the run-length contribution, and Makeup distinguishes a
// make-up code (more bits follow for the same run) from a terminating code
// (the run is complete).
type decodeEntry struct {
	Bits   uint8
	Run    uint16
	Makeup bool
}

var (
	whiteTable [1 << maxCodeBits]decodeEntry
	blackTable [1 << maxCodeBits]decodeEntry
)

func init() {
	fillTable(whiteTable[:], whiteTerm, false)
	fillTable(whiteTable[:], whiteMakeup, true)
	fillTable(whiteTable[:], extMakeup, true)
	fillTable(blackTable[:], blackTerm, false)
	fillTable(blackTable[:], blackMakeup, true)
	fillTable(blackTable[:], extMakeup, true)
}

func fillTable(table []decodeEntry, codes []code, makeup bool) {
	for _, c := range codes {
		shift := uint(maxCodeBits - c.bits)
		base := uint32(c.code) << shift
		n := uint32(1) << shift
		entry := decodeEntry{Bits: c.bits, Run: c.run, Makeup: makeup}
		for k := uint32(0); k < n; k++ {
			table[base+k] = entry
		}
	}
}

// Color selects the white or black run-length table; decoding alternates
// between them starting from the caller-selected polarity (spec §4.3.4).
type Color int

const (
	White Color = iota
	Black
)

// Decoder reads modified-Huffman run lengths from a bit-reversed MSB-first
// stream (spec §4.3.4: each byte from the sink is bit-reversed before
// entering the shift register).
type Decoder struct {
	br *bitio.Reader
}

// NewDecoder returns a Decoder reading from br, which the caller creates
// with bitio.NewReversedReader.
func NewDecoder(br *bitio.Reader) *Decoder {
	return &Decoder{br: br}
}

// AtEOL reports whether the next 12 bits are the end-of-line sync sequence
// (000000000001) without consuming them.
func (d *Decoder) AtEOL() bool {
	return d.br.Peek(12) == 1
}

// ConsumeEOL consumes a 12-bit EOL sequence already confirmed by AtEOL.
func (d *Decoder) ConsumeEOL() {
	d.br.Consume(12)
}

// EOF reports whether the underlying bit reader has run out of input.
func (d *Decoder) EOF() bool {
	return d.br.EOF()
}

// ReadRun decodes one complete run (zero or more make-up codes followed by
// exactly one terminating code) for the given color. It returns the total
// run length and whether an invalid codeword was encountered and
// resynchronised past (the caller latches invalid_pixel in that case).
func (d *Decoder) ReadRun(c Color) (runLen int, invalid bool) {
	table := &whiteTable
	if c == Black {
		table = &blackTable
	}
	for {
		if d.br.EOF() {
			return runLen, invalid
		}
		key := d.br.Peek(maxCodeBits)
		e := table[key]
		if e.Bits == 0 {
			d.resync()
			invalid = true
			if d.br.EOF() {
				return runLen, invalid
			}
			continue
		}
		d.br.Consume(int(e.Bits))
		runLen += int(e.Run)
		if !e.Makeup {
			return runLen, invalid
		}
		// Cap accumulated run length well below int overflow (spec §4.3.4).
		if runLen > 1<<24 {
			return runLen, true
		}
	}
}

// resync searches forward for the next eleven-zero prefix and skips the
// following 1 bit, per spec §4.3.4's invalid-code recovery rule.
func (d *Decoder) resync() {
	for !d.br.EOF() {
		if d.br.Peek(11) == 0 {
			d.br.Consume(11)
			if !d.br.EOF() {
				d.br.Consume(1)
			}
			return
		}
		d.br.Consume(1)
	}
}
