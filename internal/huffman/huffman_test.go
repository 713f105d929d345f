package huffman

import (
	"bytes"
	"testing"

	"github.com/deepteams/bmp/internal/bitio"
)

func TestEncodeDecodeRunRoundTrip(t *testing.T) {
	runs := []int{0, 1, 5, 63, 64, 127, 1728, 2000, 4000}
	for _, c := range []Color{White, Black} {
		for _, run := range runs {
			var buf bytes.Buffer
			enc := NewEncoder(bitio.NewReversedWriter(&buf))
			enc.WriteRun(c, run)
			enc.Flush()

			dec := NewDecoder(bitio.NewReversedReader(bytes.NewReader(buf.Bytes())))
			got, invalid := dec.ReadRun(c)
			if invalid {
				t.Errorf("color=%v run=%d: unexpected invalid codeword", c, run)
			}
			if got != run {
				t.Errorf("color=%v run=%d: decoded %d", c, run, got)
			}
		}
	}
}

func TestEOLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(bitio.NewReversedWriter(&buf))
	enc.WriteEOL()
	enc.Flush()

	dec := NewDecoder(bitio.NewReversedReader(bytes.NewReader(buf.Bytes())))
	if !dec.AtEOL() {
		t.Fatalf("expected EOL sync sequence")
	}
	dec.ConsumeEOL()
}

func TestReadRunResyncsOnInvalidCode(t *testing.T) {
	// Eleven zero bits followed by a 1 bit is the resync pattern; after
	// skipping it, decoding should resume cleanly.
	var buf bytes.Buffer
	bw := bitio.NewReversedWriter(&buf)
	bw.WriteBits(0, 11)
	bw.WriteBits(1, 1)
	enc := NewEncoder(bw)
	enc.WriteRun(White, 5)
	enc.Flush()

	dec := NewDecoder(bitio.NewReversedReader(bytes.NewReader(buf.Bytes())))
	got, invalid := dec.ReadRun(White)
	if !invalid {
		t.Errorf("expected invalid codeword to be reported")
	}
	if got != 5 {
		t.Errorf("expected resync to recover run=5, got %d", got)
	}
}
