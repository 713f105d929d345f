package huffman

import "github.com/deepteams/bmp/internal/bitio"

var (
	whiteTermByRun    = indexByRun(whiteTerm)
	whiteMakeupByRun  = indexByRun(whiteMakeup)
	blackTermByRun    = indexByRun(blackTerm)
	blackMakeupByRun  = indexByRun(blackMakeup)
	extMakeupByRun    = indexByRun(extMakeup)
	extMakeupSorted   = sortedRuns(extMakeup)
)

func indexByRun(codes []code) map[uint16]code {
	m := make(map[uint16]code, len(codes))
	for _, c := range codes {
		m[c.run] = c
	}
	return m
}

func sortedRuns(codes []code) []uint16 {
	runs := make([]uint16, len(codes))
	for i, c := range codes {
		runs[i] = c.run
	}
	// Insertion sort descending; table sizes are tiny (13 entries).
	for i := 1; i < len(runs); i++ {
		for j := i; j > 0 && runs[j] > runs[j-1]; j-- {
			runs[j], runs[j-1] = runs[j-1], runs[j]
		}
	}
	return runs
}

// Encoder writes modified-Huffman run lengths to a bit-reversed MSB-first
// stream, the mirror image of Decoder.
type Encoder struct {
	bw *bitio.Writer
}

// NewEncoder returns an Encoder writing to bw, which the caller creates
// with bitio.NewReversedWriter.
func NewEncoder(bw *bitio.Writer) *Encoder {
	return &Encoder{bw: bw}
}

// WriteEOL emits the 12-bit end-of-line sync sequence.
func (e *Encoder) WriteEOL() {
	e.bw.WriteBits(1, 12)
}

// WriteRun emits zero or more make-up codes followed by exactly one
// terminating code for runLen pixels of the given color.
func (e *Encoder) WriteRun(c Color, runLen int) {
	makeupByRun, termByRun := whiteMakeupByRun, whiteTermByRun
	if c == Black {
		makeupByRun, termByRun = blackMakeupByRun, blackTermByRun
	}

	remaining := runLen - runLen%64
	for remaining > 0 {
		switch {
		case remaining >= 2560:
			cd := extMakeupByRun[2560]
			e.bw.WriteBits(uint32(cd.code), int(cd.bits))
			remaining -= 2560
		case remaining >= 1792:
			// Largest extended make-up code <= remaining.
			for _, run := range extMakeupSorted {
				if uint16(remaining) >= run {
					cd := extMakeupByRun[run]
					e.bw.WriteBits(uint32(cd.code), int(cd.bits))
					remaining -= int(run)
					break
				}
			}
		default:
			cd := makeupByRun[uint16(remaining)]
			e.bw.WriteBits(uint32(cd.code), int(cd.bits))
			remaining = 0
		}
	}

	term := termByRun[uint16(runLen%64)]
	e.bw.WriteBits(uint32(term.code), int(term.bits))
}

// Flush pads to a byte boundary.
func (e *Encoder) Flush() {
	e.bw.Flush()
}
