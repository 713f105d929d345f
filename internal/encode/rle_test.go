package encode

import "testing"

func TestGroupRow(t *testing.T) {
	groups := groupRow([]uint32{1, 1, 1, 2, 2, 3})
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0] != (group{val: 1, n: 3}) {
		t.Errorf("group 0 = %+v", groups[0])
	}
	if groups[1] != (group{val: 2, n: 2}) {
		t.Errorf("group 1 = %+v", groups[1])
	}
	if groups[2] != (group{val: 3, n: 1}) {
		t.Errorf("group 2 = %+v", groups[2])
	}
}

func TestParamsFor(t *testing.T) {
	if p := paramsFor(4); p != (rleParams{minlen: 3, smallNumber: 7}) {
		t.Errorf("paramsFor(4) = %+v", p)
	}
	if p := paramsFor(8); p != (rleParams{minlen: 2, smallNumber: 5}) {
		t.Errorf("paramsFor(8) = %+v", p)
	}
	if p := paramsFor(24); p != (rleParams{minlen: 2, smallNumber: 2}) {
		t.Errorf("paramsFor(24) = %+v", p)
	}
}

func TestIndexBitcountPromotion(t *testing.T) {
	if got := indexBitcount(3, false); got != 4 {
		t.Errorf("3 colours without allow2bit should promote to 4bpp, got %d", got)
	}
	if got := indexBitcount(3, true); got != 2 {
		t.Errorf("3 colours with allow2bit should stay 2bpp, got %d", got)
	}
	if got := indexBitcount(200, false); got != 8 {
		t.Errorf("200 colours should need 8bpp, got %d", got)
	}
}
