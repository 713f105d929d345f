package palette

import (
	"bytes"
	"testing"
)

func TestEntrySize(t *testing.T) {
	if EntrySize(true) != 3 {
		t.Errorf("core entry size should be 3")
	}
	if EntrySize(false) != 4 {
		t.Errorf("windows entry size should be 4")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	table := Table{{R: 1, G: 2, B: 3}, {R: 255, G: 0, B: 128}}
	var buf bytes.Buffer
	if err := Write(&buf, table, 4); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, n, err := Read(&buf, 2, 4, 0, 8+len(table)*4)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 8 {
		t.Errorf("consumed %d bytes, want 8", n)
	}
	for i := range table {
		if got[i] != table[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], table[i])
		}
	}
}

func TestReadRejectsOversizedClrUsed(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 40))
	if _, _, err := Read(buf, 100, 4, 0, 40); err != ErrTooManyColors {
		t.Errorf("expected ErrTooManyColors, got %v", err)
	}
}

func TestReadClampsAbove256(t *testing.T) {
	table := make(Table, 256)
	var buf bytes.Buffer
	if err := Write(&buf, table, 4); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _, err := Read(&buf, 9999, 4, 0, 4*256)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 256 {
		t.Errorf("expected clamp to 256 entries, got %d", len(got))
	}
}
