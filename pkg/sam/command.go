package sam

import (
	"fmt"

	"github.com/gregLibert/calypso-sam/pkg/apdu"
)

// COMMAND LIFE CYCLE:
// A command is an ephemeral value: its constructor assembles the request
// frame (class byte from the module identity, fixed instruction byte,
// command-specific P1/P2, optional payload, expected response length) and
// fails fast on invalid arguments, before any transport interaction. The
// transport round-trip itself is delegated to the transaction manager. When
// the response arrives, the status word is classified first; only a
// successful or warning status lets the command parse the payload and
// mutate the module state.

// Command is one SAM exchange: an encoded request frame and the parsing of
// its response. A Command instance does not outlive the call that uses it.
type Command interface {
	// Name identifies the command in error messages and logs.
	Name() string
	// Request returns the frame to transmit.
	Request() *apdu.CommandAPDU
	// ParseResponse classifies the response status and, on success, applies
	// the parsed payload to the module state.
	ParseResponse(resp *apdu.ResponseAPDU) error
}

// Instruction bytes of the supported commands.
const (
	insGiveRandom       byte = 0x86
	insReadEventCounter byte = 0xBE
	insReadCeilings     byte = 0xBE
)

// command carries the state shared by every concrete command.
type command struct {
	name        string
	request     *apdu.CommandAPDU
	expectedLen int
	sam         *SAM
	statuses    statusTable
}

// Name implements Command.
func (c *command) Name() string {
	return c.name
}

// Request implements Command.
func (c *command) Request() *apdu.CommandAPDU {
	return c.request
}

// checkStatus resolves the response status word against the command's table.
// It returns the classified error for an error entry or an untabulated code,
// and checks the expected response length for successful statuses.
// Warning entries (KindNone with a non-success code) raise nothing: state
// mutation must not be blocked by a degraded-but-successful outcome.
func (c *command) checkStatus(resp *apdu.ResponseAPDU) error {
	code := uint16(resp.Status)

	properties, ok := c.statuses.resolve(code)
	if !ok {
		return &CommandError{
			Command: c.name,
			Code:    code,
			Kind:    KindUnknownStatus,
			Message: "Unknown status.",
		}
	}

	if properties.kind != KindNone {
		return &CommandError{
			Command: c.name,
			Code:    code,
			Kind:    properties.kind,
			Message: properties.message,
		}
	}

	if c.expectedLen != 0 && len(resp.Data) != c.expectedLen {
		return &CommandError{
			Command: c.name,
			Code:    code,
			Kind:    KindUnexpectedLength,
			Message: fmt.Sprintf("expected %d response bytes, got %d", c.expectedLen, len(resp.Data)),
		}
	}

	return nil
}
