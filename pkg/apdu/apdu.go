package apdu

import (
	"bytes"
	"fmt"
)

// APDU (Application Protocol Data Unit) structures for a Calypso SAM dialect.
//
// COMMAND APDU (C-APDU):
// A command consists of a mandatory Header (4 bytes) and an optional Body.
//
// 1. Header:
//   - CLA (Class): Proprietary class byte selecting the command dialect
//     (0x80 by default, 0x94 for S1Dx modules).
//   - INS (Instruction): The specific command to execute.
//   - P1, P2 (Parameters): Command modifiers.
//
// 2. Body:
//   - Lc (Length Command): Number of bytes in the data field.
//   - Data: The command payload.
//   - Le (Length Expected): Maximum number of bytes expected in the response.
//
// ENCODING CASES (ISO 7816-3):
// - Case 1: No Data, No Response (Header only).
// - Case 2: No Data, Response Expected (Header + Le).
// - Case 3: Data Present, No Response (Header + Lc + Data).
// - Case 4: Data Present, Response Expected (Header + Lc + Data + Le).
//
// A SAM exchange always uses Short Length encoding: Lc/Le on 1 byte
// (Max 255/256, with Le 0x00 encoding 256). Extended lengths are not part
// of the dialect and are rejected at encoding time.
//
// RESPONSE APDU (R-APDU):
// A response consists of an optional Data field followed by a mandatory
// 2-byte Status Word (SW1 SW2). Example: 0x9000 indicates success.

// Short Length limits according to ISO 7816-3.
const (
	// MaxShortLc is the maximum data length (Nc) encodable on 1 byte.
	MaxShortLc = 255

	// MaxShortLe is the maximum expected response length (Ne).
	// In Short mode, 0x00 encodes 256.
	MaxShortLe = 256
)

// CommandAPDU represents a command sent to the module.
type CommandAPDU struct {
	Cla    byte
	Ins    byte
	P1, P2 byte
	Data   []byte
	Ne     int // Expected response length (0 means none)
}

// NewCommandAPDU creates a basic command.
func NewCommandAPDU(cla, ins, p1, p2 byte, data []byte, ne int) *CommandAPDU {
	return &CommandAPDU{
		Cla:  cla,
		Ins:  ins,
		P1:   p1,
		P2:   p2,
		Data: data,
		Ne:   ne,
	}
}

// Bytes encodes the CommandAPDU into its byte representation (C-APDU).
// Lengths beyond the Short encoding limits are an error.
func (c *CommandAPDU) Bytes() ([]byte, error) {
	nc := len(c.Data)
	ne := c.Ne

	if nc > MaxShortLc {
		return nil, fmt.Errorf("data length %d exceeds short Lc limit %d", nc, MaxShortLc)
	}
	if ne < 0 || ne > MaxShortLe {
		return nil, fmt.Errorf("expected length %d outside short Le range [0, %d]", ne, MaxShortLe)
	}

	buf := new(bytes.Buffer)

	// 1. Header
	buf.WriteByte(c.Cla)
	buf.WriteByte(c.Ins)
	buf.WriteByte(c.P1)
	buf.WriteByte(c.P2)

	// 2. Lc Field & Data Field (Case 3/4)
	if nc > 0 {
		buf.WriteByte(byte(nc))
		buf.Write(c.Data)
	}

	// 3. Le Field (Case 2/4)
	if ne > 0 {
		if ne == MaxShortLe {
			buf.WriteByte(0x00) // 0x00 represents 256
		} else {
			buf.WriteByte(byte(ne))
		}
	}

	return buf.Bytes(), nil
}

// String returns a readable representation of the command meta-data.
func (c *CommandAPDU) String() string {
	return fmt.Sprintf("CLA: %02X, INS: %02X | P1: %02X, P2: %02X | Lc: %d | Le: %d",
		c.Cla, c.Ins, c.P1, c.P2, len(c.Data), c.Ne)
}

// ResponseAPDU represents the reply from the module (R-APDU).
type ResponseAPDU struct {
	Data   []byte
	Status StatusWord
}

// ParseResponseAPDU parses raw bytes received from the module into a ResponseAPDU.
// The input must contain at least 2 bytes (SW1, SW2).
func ParseResponseAPDU(raw []byte) (*ResponseAPDU, error) {
	if len(raw) < 2 {
		return nil, fmt.Errorf("response too short: length %d", len(raw))
	}

	indexSW1 := len(raw) - 2
	data := raw[:indexSW1]
	sw1 := raw[indexSW1]
	sw2 := raw[indexSW1+1]

	return &ResponseAPDU{
		Data:   data,
		Status: NewStatusWord(sw1, sw2),
	}, nil
}

// String returns a readable representation of the response.
func (r *ResponseAPDU) String() string {
	return fmt.Sprintf("Data (%d bytes) | Status: %s", len(r.Data), r.Status)
}

// Transmitter abstracts the physical card connection.
// *scard.Card satisfies it directly.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}
