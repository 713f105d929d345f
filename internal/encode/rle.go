package encode

import "io"

// rleParams holds the two compression-specific constants of spec §4.4's
// literal/repeat selection rule.
type rleParams struct {
	minlen      int
	smallNumber int
}

func paramsFor(bitcount int) rleParams {
	switch bitcount {
	case 4:
		return rleParams{minlen: 3, smallNumber: 7}
	case 24:
		return rleParams{minlen: 2, smallNumber: 2}
	default: // 8
		return rleParams{minlen: 2, smallNumber: 5}
	}
}

// group is one maximal run of equal pixel values within a row.
type group struct {
	val uint32
	n   int
}

// groupRow collapses a row of raw pixel values (palette indices for
// RLE4/8, packed 24-bit BGR words for RLE24) into maximal equal-value runs.
func groupRow(values []uint32) []group {
	var groups []group
	for i := 0; i < len(values); {
		j := i + 1
		for j < len(values) && values[j] == values[i] {
			j++
		}
		groups = append(groups, group{val: values[i], n: j - i})
		i = j
	}
	return groups
}

// rowEncoder accumulates the control/data bytes for one row, following
// spec §4.4's literal-vs-repeat selection rule: groups shorter than minlen
// accumulate into a pending literal run; a qualifying group interrupts the
// literal unless it is itself short enough (within smallNumber of minlen)
// to be worth folding into the literal instead.
type rowEncoder struct {
	w        io.Writer
	bitcount int
	params   rleParams
	pending  []group
	pendingN int
	err      error
}

func newRowEncoder(w io.Writer, bitcount int) *rowEncoder {
	return &rowEncoder{w: w, bitcount: bitcount, params: paramsFor(bitcount)}
}

func (e *rowEncoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *rowEncoder) writeUnit(val uint32) {
	switch e.bitcount {
	case 24:
		e.write([]byte{byte(val), byte(val >> 8), byte(val >> 16)})
	case 4:
		e.write([]byte{byte(val)<<4 | byte(val)})
	default:
		e.write([]byte{byte(val)})
	}
}

// emitRepeat writes one or more control+data pairs covering n pixels of
// val, chunked to at most 255 pixels each.
func (e *rowEncoder) emitRepeat(val uint32, n int) {
	for n > 0 {
		chunk := n
		if chunk > 255 {
			chunk = 255
		}
		e.write([]byte{byte(chunk)})
		e.writeUnit(val)
		n -= chunk
	}
}

// flushPending emits the accumulated pending groups: as one literal escape
// sequence if their total length is at least 3, else as individual repeat
// runs (spec §4.4: "emit literal only if its length ≥ 3, else fall through
// to a repeat run of the current group").
func (e *rowEncoder) flushPending() {
	if e.pendingN == 0 {
		return
	}
	if e.pendingN >= 3 {
		e.emitLiteral(e.pending, e.pendingN)
	} else {
		for _, g := range e.pending {
			e.emitRepeat(g.val, g.n)
		}
	}
	e.pending = e.pending[:0]
	e.pendingN = 0
}

// emitLiteral writes one or more literal-run escapes (control 0, escape
// len >= 3) covering the flattened pending groups, chunked to at most 255
// pixels and padded so each chunk's byte length is even.
func (e *rowEncoder) emitLiteral(groups []group, total int) {
	flat := make([]uint32, 0, total)
	for _, g := range groups {
		for i := 0; i < g.n; i++ {
			flat = append(flat, g.val)
		}
	}
	for off := 0; off < len(flat); {
		n := len(flat) - off
		if n > 255 {
			n = 255
		}
		e.write([]byte{0, byte(n)})
		var dataBytes int
		if e.bitcount == 4 {
			// Two indices share one byte, high nibble first (spec §4.3.3).
			for i := 0; i < n; i += 2 {
				hi := byte(flat[off+i]) << 4
				var lo byte
				if i+1 < n {
					lo = byte(flat[off+i+1])
				}
				e.write([]byte{hi | lo})
			}
			dataBytes = (n + 1) / 2
		} else {
			for i := 0; i < n; i++ {
				e.writeUnit(flat[off+i])
			}
			dataBytes = n
			if e.bitcount == 24 {
				dataBytes = n * 3
			}
		}
		if dataBytes%2 == 1 {
			e.write([]byte{0})
		}
		off += n
	}
}

func (e *rowEncoder) addGroup(g group) {
	if e.pendingN+g.n > 255 {
		e.flushPending()
	}
	e.pending = append(e.pending, g)
	e.pendingN += g.n
}

func (e *rowEncoder) encodeRow(values []uint32) error {
	for _, g := range groupRow(values) {
		if g.n >= e.params.minlen {
			if g.n < e.params.minlen+e.params.smallNumber && e.pendingN > 0 {
				e.addGroup(g)
				continue
			}
			e.flushPending()
			e.emitRepeat(g.val, g.n)
			continue
		}
		e.addGroup(g)
	}
	e.flushPending()
	e.write([]byte{0, 0}) // end of line
	return e.err
}

// EncodeRLE writes an entire RLE4/RLE8/RLE24 image to w, one row at a time
// in file order (caller supplies rows already in bottom-up/top-down file
// order), terminated by an end-of-bitmap marker (spec §4.4).
func EncodeRLE(w io.Writer, rows [][]uint32, bitcount int) error {
	enc := newRowEncoder(w, bitcount)
	for _, row := range rows {
		if err := enc.encodeRow(row); err != nil {
			return err
		}
	}
	enc.write([]byte{0, 1}) // end of bitmap
	return enc.err
}
