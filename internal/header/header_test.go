package header

import (
	"bytes"
	"testing"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	fh := FileHeader{Magic: MagicBM, FileSize: 1234, OffBits: 54}
	var buf bytes.Buffer
	if err := WriteFileHeader(&buf, fh); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFileHeader(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != fh {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, fh)
	}
}

func TestReadFileHeaderRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{'X', 'Y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if _, err := ReadFileHeader(buf); err != ErrBadMagic {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
}

func TestSizeToVersion(t *testing.T) {
	cases := []struct {
		size uint32
		want Version
		ok   bool
	}{
		{12, CoreOS21, true},
		{40, V3, true},
		{52, V3Adobe1, true},
		{56, V3Adobe2, true},
		{108, V4, true},
		{124, V5, true},
		{64, OS22, true},
		{130, Future, true},
		{13, 0, false},
	}
	for _, c := range cases {
		v, ok := sizeToVersion(c.size)
		if ok != c.ok || (ok && v != c.want) {
			t.Errorf("sizeToVersion(%d) = (%v, %v), want (%v, %v)", c.size, v, ok, c.want, c.ok)
		}
	}
}

func TestDisambiguateReclassifiesNonBMMagic(t *testing.T) {
	ih := InfoHeader{Version: V3}
	Disambiguate(&ih, MagicBA, 1000)
	if ih.Version != OS22 {
		t.Errorf("expected reclassification to OS22, got %v", ih.Version)
	}
}

func TestDisambiguateLeavesOtherSizesAlone(t *testing.T) {
	ih := InfoHeader{Version: V4}
	Disambiguate(&ih, MagicBA, 1000)
	if ih.Version != V4 {
		t.Errorf("Disambiguate must only touch tentative V3 headers, got %v", ih.Version)
	}
}

func TestResolveCompressionOS2Collision(t *testing.T) {
	ih := InfoHeader{Version: OS22, Compression: wireBitfieldsOrHuf, BitCount: 1}
	if got := ResolveCompression(&ih); got != CompOS2Huffman {
		t.Errorf("expected CompOS2Huffman, got %v", got)
	}
	ih2 := InfoHeader{Version: OS22, Compression: wireJPEGOrRLE24, BitCount: 24}
	if got := ResolveCompression(&ih2); got != CompOS2RLE24 {
		t.Errorf("expected CompOS2RLE24, got %v", got)
	}
}

func TestResolveCompressionOS22VersionButWindowsBitcountIsNotRemapped(t *testing.T) {
	// A code-3/file-size-54 header gets reclassified to OS22 by Disambiguate
	// regardless of bitcount, but ResolveCompression must only apply the
	// OS/2 Huffman/RLE24 meaning when the bitcount actually matches (1 and
	// 24 respectively); a bitcount=16 header with compression code 3 is
	// BITFIELDS, not Huffman, even though Version reads OS22.
	ih := InfoHeader{Version: OS22, Compression: wireBitfieldsOrHuf, BitCount: 16}
	if got := ResolveCompression(&ih); got != CompBitfields {
		t.Errorf("expected CompBitfields, got %v", got)
	}
	ih2 := InfoHeader{Version: OS22, Compression: wireJPEGOrRLE24, BitCount: 32}
	if got := ResolveCompression(&ih2); got != CompJPEG {
		t.Errorf("expected CompJPEG, got %v", got)
	}
}

func TestResolveCompressionWindows(t *testing.T) {
	ih := InfoHeader{Version: V3, Compression: wireBitfieldsOrHuf}
	if got := ResolveCompression(&ih); got != CompBitfields {
		t.Errorf("expected CompBitfields, got %v", got)
	}
	ih2 := InfoHeader{Version: V3, Compression: wireJPEGOrRLE24}
	if got := ResolveCompression(&ih2); got != CompJPEG {
		t.Errorf("expected CompJPEG, got %v", got)
	}
}

func TestCheckSupportGate(t *testing.T) {
	if err := CheckSupportGate(1, 8, CompRGB); err != nil {
		t.Errorf("8bpp RGB should be supported: %v", err)
	}
	if err := CheckSupportGate(2, 8, CompRGB); err != ErrBadPlanes {
		t.Errorf("expected ErrBadPlanes, got %v", err)
	}
	if err := CheckSupportGate(1, 8, CompBitfields); err != ErrUnsupportedCombo {
		t.Errorf("expected ErrUnsupportedCombo for 8bpp bitfields, got %v", err)
	}
	if err := CheckSupportGate(1, 64, CompRGB); err != nil {
		t.Errorf("64bpp RGB should be supported: %v", err)
	}
	if err := CheckSupportGate(1, 64, CompBitfields); err != ErrUnsupportedCombo {
		t.Errorf("64bpp BITFIELDS should be rejected, got %v", err)
	}
	if err := CheckSupportGate(1, 64, CompAlphaBitfields); err != nil {
		t.Errorf("64bpp ALPHABITFIELDS should be supported: %v", err)
	}
	if err := CheckSupportGate(1, 32, CompAlphaBitfields); err != nil {
		t.Errorf("32bpp ALPHABITFIELDS should be supported: %v", err)
	}
}
