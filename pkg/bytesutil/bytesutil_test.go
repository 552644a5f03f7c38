package bytesutil

import (
	"testing"
)

func TestHex(t *testing.T) {
	got := Hex("80 BE 00", "B1", "00")
	want := []byte{0x80, 0xBE, 0x00, 0xB1, 0x00}

	if len(got) != len(want) {
		t.Fatalf("Hex length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Hex[%d] = %02X, want %02X", i, got[i], want[i])
		}
	}
}

func TestHex_PanicsOnMalformedInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for malformed hex, got none")
		}
	}()
	Hex("8G")
}

func TestToHex(t *testing.T) {
	if got := ToHex([]byte{0xAB, 0x01, 0xFF}); got != "AB01FF" {
		t.Errorf("ToHex = %q, want %q", got, "AB01FF")
	}
}

func TestExtractUint(t *testing.T) {
	data := Hex("00 11 22 33 44 55")

	tests := []struct {
		name string
		off  int
		n    int
		want int
	}{
		{"single byte", 2, 1, 0x22},
		{"three bytes big-endian", 1, 3, 0x112233},
		{"four bytes", 2, 4, 0x22334455},
		{"at start", 0, 2, 0x0011},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractUint(data, tt.off, tt.n)
			if err != nil {
				t.Fatalf("ExtractUint failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractUint(%d, %d) = %06X, want %06X", tt.off, tt.n, got, tt.want)
			}
		})
	}
}

func TestExtractUint_Errors(t *testing.T) {
	data := Hex("0011")

	tests := []struct {
		name string
		off  int
		n    int
	}{
		{"out of range", 1, 3},
		{"negative offset", -1, 1},
		{"zero width", 0, 0},
		{"width too large", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractUint(data, tt.off, tt.n); err == nil {
				t.Errorf("ExtractUint(%d, %d) succeeded, want error", tt.off, tt.n)
			}
		})
	}
}
