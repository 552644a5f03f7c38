package sam

// ProductType identifies the SAM hardware generation, derived from the
// Application Subtype byte of the power-on answer.
type ProductType int

const (
	// ProductUnknown is reported when the power-on answer does not match the
	// expected layout or carries an unrecognized application subtype.
	ProductUnknown ProductType = iota
	// ProductSAMC1 is the contact SAM-C1 module.
	ProductSAMC1
	// ProductHSMC1 is the HSM variant of the C1 (software issuer 0x08).
	ProductHSMC1
	// ProductSAMS1Dx covers the S1D2/S1D1/S1D0 modules.
	ProductSAMS1Dx
	// ProductSAMS1E1 is the S1E1 module.
	ProductSAMS1E1
)

func (p ProductType) String() string {
	switch p {
	case ProductSAMC1:
		return "SAM_C1"
	case ProductHSMC1:
		return "HSM_C1"
	case ProductSAMS1Dx:
		return "SAM_S1DX"
	case ProductSAMS1E1:
		return "SAM_S1E1"
	default:
		return "UNKNOWN"
	}
}

// Class bytes selecting the command dialect variant.
const (
	// ClassByteDefault is the class byte used by every product type except S1Dx.
	ClassByteDefault byte = 0x80
	// ClassByteS1Dx is the class byte used by S1Dx modules.
	ClassByteS1Dx byte = 0x94
)

// ClassByte returns the protocol class byte for the product type.
// The mapping is total: unknown products use the default class byte.
func (p ProductType) ClassByte() byte {
	if p == ProductSAMS1Dx {
		return ClassByteS1Dx
	}
	return ClassByteDefault
}

// MaxDigestDataLength returns the maximum payload length allowed for digest
// commands. A zero value signals an unsupported product.
func (p ProductType) MaxDigestDataLength() int {
	switch p {
	case ProductSAMC1, ProductHSMC1:
		return 255
	case ProductSAMS1Dx:
		return 70
	case ProductSAMS1E1:
		return 240
	default:
		return 0
	}
}
