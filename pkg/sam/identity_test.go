package sam

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	atrSAMC1   = "3B3F9600805A0080C120000012345678829000"
	atrHSMC1   = "3B3F9600805A0080C108000012345678829000"
	atrSAMS1Dx = "3B3F9600805A0080D220000012345678829000"
	atrSAMS1E1 = "3B3F9600805A0080E120000012345678829000"
)

func TestParsePowerOnData(t *testing.T) {
	tests := []struct {
		name        string
		powerOnData string
		want        Identity
	}{
		{
			name:        "SAM C1",
			powerOnData: atrSAMC1,
			want: Identity{
				PowerOnData:        atrSAMC1,
				Product:            ProductSAMC1,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				Platform:           0x00,
				ApplicationType:    0x80,
				ApplicationSubType: 0xC1,
				SoftwareIssuer:     0x20,
				SoftwareVersion:    0x00,
				SoftwareRevision:   0x00,
			},
		},
		{
			name:        "HSM C1 (software issuer 08)",
			powerOnData: atrHSMC1,
			want: Identity{
				PowerOnData:        atrHSMC1,
				Product:            ProductHSMC1,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				ApplicationType:    0x80,
				ApplicationSubType: 0xC1,
				SoftwareIssuer:     0x08,
			},
		},
		{
			name:        "S1Dx (subtype D2)",
			powerOnData: atrSAMS1Dx,
			want: Identity{
				PowerOnData:        atrSAMS1Dx,
				Product:            ProductSAMS1Dx,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				ApplicationType:    0x80,
				ApplicationSubType: 0xD2,
				SoftwareIssuer:     0x20,
			},
		},
		{
			name:        "S1E1",
			powerOnData: atrSAMS1E1,
			want: Identity{
				PowerOnData:        atrSAMS1E1,
				Product:            ProductSAMS1E1,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				ApplicationType:    0x80,
				ApplicationSubType: 0xE1,
				SoftwareIssuer:     0x20,
			},
		},
		{
			name:        "long interface bytes (5-byte variant)",
			powerOnData: "3B9F968131AF805A0080C120000012345678829000",
			want: Identity{
				PowerOnData:        "3B9F968131AF805A0080C120000012345678829000",
				Product:            ProductSAMC1,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				ApplicationType:    0x80,
				ApplicationSubType: 0xC1,
				SoftwareIssuer:     0x20,
			},
		},
		{
			name:        "unrecognized application subtype",
			powerOnData: "3B3F9600805A0080FF20000012345678829000",
			want: Identity{
				PowerOnData:        "3B3F9600805A0080FF20000012345678829000",
				Product:            ProductUnknown,
				SerialNumber:       [4]byte{0x12, 0x34, 0x56, 0x78},
				ApplicationType:    0x80,
				ApplicationSubType: 0xFF,
				SoftwareIssuer:     0x20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePowerOnData(tt.powerOnData)
			if err != nil {
				t.Fatalf("ParsePowerOnData failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Identity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePowerOnData_Deterministic(t *testing.T) {
	first, err := ParsePowerOnData(atrSAMC1)
	if err != nil {
		t.Fatalf("ParsePowerOnData failed: %v", err)
	}
	second, err := ParsePowerOnData(atrSAMC1)
	if err != nil {
		t.Fatalf("ParsePowerOnData failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Decoding is not deterministic (-first +second):\n%s", diff)
	}
}

func TestParsePowerOnData_IllFormed(t *testing.T) {
	// A plain contact card ATR without the 805A marker: degraded state,
	// no error.
	illFormed := "3B8F8001804F0CA0000003060300030000000068"

	got, err := ParsePowerOnData(illFormed)
	if err != nil {
		t.Fatalf("Ill-formed answer should not raise an error, got %v", err)
	}

	want := Identity{
		PowerOnData: illFormed,
		Product:     ProductUnknown,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Degraded identity mismatch (-want +got):\n%s", diff)
	}

	// Class byte still derives deterministically from the product type.
	if got.ClassByte() != ClassByteDefault {
		t.Errorf("ClassByte = %02X, want %02X", got.ClassByte(), ClassByteDefault)
	}
	if got.MaxDigestDataLength() != 0 {
		t.Errorf("MaxDigestDataLength = %d, want 0", got.MaxDigestDataLength())
	}
}

func TestParsePowerOnData_Missing(t *testing.T) {
	_, err := ParsePowerOnData("")
	if !errors.Is(err, ErrMissingPowerOnData) {
		t.Errorf("Expected ErrMissingPowerOnData, got %v", err)
	}
}

func TestProductType_ClassByte(t *testing.T) {
	tests := []struct {
		product ProductType
		want    byte
	}{
		{ProductSAMC1, 0x80},
		{ProductHSMC1, 0x80},
		{ProductSAMS1Dx, 0x94},
		{ProductSAMS1E1, 0x80},
		{ProductUnknown, 0x80},
	}

	for _, tt := range tests {
		if got := tt.product.ClassByte(); got != tt.want {
			t.Errorf("%s ClassByte = %02X, want %02X", tt.product, got, tt.want)
		}
	}
}

func TestProductType_MaxDigestDataLength(t *testing.T) {
	tests := []struct {
		product ProductType
		want    int
	}{
		{ProductSAMC1, 255},
		{ProductHSMC1, 255},
		{ProductSAMS1Dx, 70},
		{ProductSAMS1E1, 240},
		{ProductUnknown, 0},
		{ProductType(99), 0},
	}

	for _, tt := range tests {
		if got := tt.product.MaxDigestDataLength(); got != tt.want {
			t.Errorf("%s MaxDigestDataLength = %d, want %d", tt.product, got, tt.want)
		}
	}
}

func TestSAM_ProductInfo(t *testing.T) {
	s, err := NewSAM(atrSAMC1)
	if err != nil {
		t.Fatalf("NewSAM failed: %v", err)
	}

	want := "Type: SAM_C1, S/N: 12345678"
	if got := s.ProductInfo(); got != want {
		t.Errorf("ProductInfo = %q, want %q", got, want)
	}
}
