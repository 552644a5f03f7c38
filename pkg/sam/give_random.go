package sam

import (
	"fmt"

	"github.com/gregLibert/calypso-sam/pkg/apdu"
)

// GIVE RANDOM COMMAND LOGIC:
// The command pushes an 8-byte challenge into the module ahead of an
// authentication sequence. P1 and P2 are zero, the payload is exactly the
// challenge, and no response data is expected.

const giveRandomLength = 8

var giveRandomStatuses = statusTable{
	0x6700: {message: "Incorrect Lc.", kind: KindIllegalParameter},
}

// GiveRandomCommand sends a random challenge to the module.
type GiveRandomCommand struct {
	command
}

// NewGiveRandomCommand builds a Give Random command. The random value must be
// exactly 8 bytes long; anything else (including nil) fails before any
// transport interaction.
func NewGiveRandomCommand(s *SAM, random []byte) (*GiveRandomCommand, error) {
	if len(random) != giveRandomLength {
		return nil, fmt.Errorf("%w: random value should be %d bytes long, got %d",
			ErrInvalidArgument, giveRandomLength, len(random))
	}

	return &GiveRandomCommand{
		command: command{
			name:     "Give Random",
			request:  apdu.NewCommandAPDU(s.ClassByte(), insGiveRandom, 0x00, 0x00, random, 0),
			sam:      s,
			statuses: giveRandomStatuses,
		},
	}, nil
}

// ParseResponse implements Command. The command carries no response payload;
// only the status word is classified.
func (c *GiveRandomCommand) ParseResponse(resp *apdu.ResponseAPDU) error {
	return c.checkStatus(resp)
}
