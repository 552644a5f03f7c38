/*
Package sam implements the command/response protocol engine for Calypso
legacy SAM modules (Secure Access Modules).

A SAM is a security co-processor card exchanging binary APDU frames. This
package provides the building blocks of that exchange:

  - decoding of the power-on answer (ATR) into the module identity and its
    capability parameters (class byte, maximum digest data length),
  - command objects that build request frames, classify response status
    words through per-command status tables and update the module state,
  - the counter/ceiling bookkeeping populated by the reading commands,
  - the transaction manager factory that capability-checks its
    collaborators before binding them together.

# Protocol

The communication is strictly synchronous: one command frame is sent, one
response frame is received, and the 16-bit status word terminating the
response selects between success, warning and a classified failure. The
physical transport is external to this package; it is abstracted by
apdu.Transmitter and injected into the transaction manager.

# Usage

	module, err := sam.NewSAM(powerOnData)
	if err != nil {
	    log.Fatal(err)
	}

	mgr, err := sam.NewFreeTransactionManager(reader, module)
	if err != nil {
	    log.Fatal(err)
	}

	if err := mgr.ReadCeilingRecord(1); err != nil {
	    log.Fatal(err)
	}
	for number, value := range module.EventCeilings() {
	    fmt.Printf("ceiling %d = %d\n", number, value)
	}
*/
package sam

import (
	"fmt"

	"github.com/gregLibert/calypso-sam/pkg/bytesutil"
)

// SAM is the stateful model of a module: its immutable identity plus the
// event counter and ceiling values read from it. It is exclusively owned by
// the session performing the command sequence; callers must serialize access.
type SAM struct {
	identity      Identity
	eventCounters map[int]int
	eventCeilings map[int]int
}

// NewSAM decodes the power-on answer and builds the module state model.
// The counter and ceiling maps start empty; they are populated only by the
// successful parsing of reading command responses.
func NewSAM(powerOnData string) (*SAM, error) {
	identity, err := ParsePowerOnData(powerOnData)
	if err != nil {
		return nil, err
	}

	return &SAM{
		identity:      identity,
		eventCounters: make(map[int]int),
		eventCeilings: make(map[int]int),
	}, nil
}

// Identity returns the immutable module identity.
func (s *SAM) Identity() Identity {
	return s.identity
}

// ClassByte returns the protocol class byte of the module's command dialect.
func (s *SAM) ClassByte() byte {
	return s.identity.ClassByte()
}

// MaxDigestDataLength returns the maximum payload length allowed for digest
// commands, 0 when unsupported.
func (s *SAM) MaxDigestDataLength() int {
	return s.identity.MaxDigestDataLength()
}

// EventCounter returns the value of an event counter, if it has been read.
func (s *SAM) EventCounter(number int) (int, bool) {
	value, ok := s.eventCounters[number]
	return value, ok
}

// EventCeiling returns the value of an event ceiling, if it has been read.
func (s *SAM) EventCeiling(number int) (int, bool) {
	value, ok := s.eventCeilings[number]
	return value, ok
}

// EventCounters returns a copy of all event counters read so far.
func (s *SAM) EventCounters() map[int]int {
	counters := make(map[int]int, len(s.eventCounters))
	for number, value := range s.eventCounters {
		counters[number] = value
	}
	return counters
}

// EventCeilings returns a copy of all event ceilings read so far.
func (s *SAM) EventCeilings() map[int]int {
	ceilings := make(map[int]int, len(s.eventCeilings))
	for number, value := range s.eventCeilings {
		ceilings[number] = value
	}
	return ceilings
}

// putEventCounter adds or replaces an event counter value.
func (s *SAM) putEventCounter(number, value int) {
	s.eventCounters[number] = value
}

// putEventCeiling adds or replaces an event ceiling value.
func (s *SAM) putEventCeiling(number, value int) {
	s.eventCeilings[number] = value
}

// ProductInfo returns textual information about the module.
func (s *SAM) ProductInfo() string {
	serial := s.identity.SerialNumber
	return fmt.Sprintf("Type: %s, S/N: %s", s.identity.Product, bytesutil.ToHex(serial[:]))
}

// Module is the read-only view of a SAM handed to collaborators. The
// transaction manager factory requires the concrete *SAM adapter behind it.
type Module interface {
	Identity() Identity
	EventCounter(number int) (int, bool)
	EventCeiling(number int) (int, bool)
}
