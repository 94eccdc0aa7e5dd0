package scanner

import "testing"

func TestLookup_KnownCode(t *testing.T) {
	p := Lookup("8901030865278")
	if p.Name != "Moong Dal" || p.Kcal != 347 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestLookup_UnknownFallsBackToStockResult(t *testing.T) {
	for _, code := range []string{"", "0000000000000", "not-a-barcode"} {
		p := Lookup(code)
		if p.Name != "Oats" || p.Qty != "100g" || p.Kcal != 389 {
			t.Fatalf("code %q: unexpected fallback %+v", code, p)
		}
		if len(p.Tags) != 3 || p.Tags[0] != "Warm" {
			t.Fatalf("code %q: unexpected tags %v", code, p.Tags)
		}
	}
}
