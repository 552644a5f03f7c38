package sam

import (
	"encoding/hex"
	"fmt"
	"regexp"
)

// POWER-ON ANSWER LAYOUT:
// The power-on answer of a SAM is its ATR, rendered as an upper-case hex
// string. The identity fields live in the historical bytes, anchored on the
// literal '805A' marker:
//
//	3B <interface bytes (3 or 5)> 80 5A <payload (10 bytes)> 82 90 00
//
// The 10-byte payload is, in order: platform, application type, application
// subtype, software issuer, software version, software revision, then the
// 4-byte serial number.
//
// An answer that does not match this layout is NOT an error: the module is
// simply of an unknown product type, with zeroed sub-fields. Only a missing
// answer is rejected.
var powerOnDataPattern = regexp.MustCompile(`3B(.{6}|.{10})805A(.{20})829000`)

// Identity is the immutable identification of a module, decoded once from
// its power-on answer.
type Identity struct {
	PowerOnData        string
	Product            ProductType
	SerialNumber       [4]byte
	Platform           byte
	ApplicationType    byte
	ApplicationSubType byte
	SoftwareIssuer     byte
	SoftwareVersion    byte
	SoftwareRevision   byte
}

// ParsePowerOnData decodes a power-on answer string into a module identity.
// An empty powerOnData is an error; an answer that does not match the
// expected layout yields a degraded-but-valid ProductUnknown identity.
func ParsePowerOnData(powerOnData string) (Identity, error) {
	if powerOnData == "" {
		return Identity{}, fmt.Errorf("%w: power-on data should not be empty", ErrMissingPowerOnData)
	}

	identity := Identity{PowerOnData: powerOnData}

	match := powerOnDataPattern.FindStringSubmatch(powerOnData)
	if match == nil {
		identity.Product = ProductUnknown
		return identity, nil
	}

	payload, err := hex.DecodeString(match[2])
	if err != nil {
		// The pattern matched but the payload is not hex (e.g. lower-case or
		// stray characters): same degraded state as a non-matching answer.
		identity.Product = ProductUnknown
		return identity, nil
	}

	identity.Platform = payload[0]
	identity.ApplicationType = payload[1]
	identity.ApplicationSubType = payload[2]
	identity.SoftwareIssuer = payload[3]
	identity.SoftwareVersion = payload[4]
	identity.SoftwareRevision = payload[5]
	copy(identity.SerialNumber[:], payload[6:10])

	// Product type selection from the Application Subtype.
	switch identity.ApplicationSubType {
	case 0xC1:
		if identity.SoftwareIssuer == 0x08 {
			identity.Product = ProductHSMC1
		} else {
			identity.Product = ProductSAMC1
		}
	case 0xD0, 0xD1, 0xD2:
		identity.Product = ProductSAMS1Dx
	case 0xE1:
		identity.Product = ProductSAMS1E1
	default:
		identity.Product = ProductUnknown
	}

	return identity, nil
}

// ClassByte returns the protocol class byte derived from the product type.
func (id Identity) ClassByte() byte {
	return id.Product.ClassByte()
}

// MaxDigestDataLength returns the maximum digest payload length derived from
// the product type.
func (id Identity) MaxDigestDataLength() int {
	return id.Product.MaxDigestDataLength()
}
