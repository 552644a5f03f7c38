package apdu

import "fmt"

// StatusWord represents the two-byte status response (SW1-SW2) terminating
// every R-APDU.
//
// Unlike interindustry cards, a SAM does not use the '61XX' (response
// available) and '6CXX' (wrong length) transport mechanics: an exchange is a
// single command/response round-trip and the status word is interpreted as a
// plain 16-bit code. What each code means for a given command is resolved by
// the command's status table, not here.
type StatusWord uint16

// SWNoError is the canonical success status.
const SWNoError StatusWord = 0x9000

// NewStatusWord creates a StatusWord instance from two separate bytes.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// SW1 returns the first byte (high byte) of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the second byte (low byte) of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// IsSuccess returns true if the command was processed successfully.
func (sw StatusWord) IsSuccess() bool {
	return sw == SWNoError
}

func (sw StatusWord) String() string {
	return fmt.Sprintf("[%04X]", uint16(sw))
}
