package encode

import (
	"io"

	"github.com/deepteams/bmp/internal/bitio"
)

// WriteIndexedLine bit-packs width palette indices MSB-first into
// bitcount-wide fields and writes the padded row to w (spec §4.4).
func WriteIndexedLine(w io.Writer, width, bitcount int, indices []byte) error {
	bw := bitio.NewWriter(w)
	for x := 0; x < width; x++ {
		bw.WriteBits(uint32(indices[x]), bitcount)
	}
	bw.Flush()
	if err := bw.Err(); err != nil {
		return err
	}
	written := (width*bitcount + 7) / 8
	pad := align4padding(written)
	if pad > 0 {
		if _, err := w.Write(make([]byte, pad)); err != nil {
			return err
		}
	}
	return nil
}
