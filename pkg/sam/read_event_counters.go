package sam

import (
	"fmt"

	"github.com/gregLibert/calypso-sam/pkg/apdu"
	"github.com/gregLibert/calypso-sam/pkg/bytesutil"
)

// READ EVENT COUNTER COMMAND LOGIC:
// Mirror image of Read Ceilings, targeting the event counters.
//
// P1/P2 encoding:
//   - Single counter: P1 = counter number (0-26), P2 = 0xA8.
//   - Counter record: P1 = 0x00, P2 = 0xA0 + record number (1-3).
//
// The response layout is identical to Read Ceilings: single mode carries the
// counter number at offset 8 and its 3-byte big-endian value at offset 9;
// record mode carries nine consecutive 3-byte values starting at offset 8.

// CounterOperation selects between reading one counter and a record of nine.
type CounterOperation int

const (
	// ReadSingleCounter reads the counter designated by its number (0-26).
	ReadSingleCounter CounterOperation = iota
	// ReadCounterRecord reads the nine counters of a record (1-3).
	ReadCounterRecord
)

var readEventCountersStatuses = statusTable{
	0x6900: {message: "An event counter cannot be incremented.", kind: KindCounterOverflow},
	0x6A00: {message: "Incorrect P1 or P2.", kind: KindIllegalParameter},
	0x6200: {message: "Correct execution with warning: data not signed."},
}

// ReadEventCountersCommand reads event counters into the module state.
type ReadEventCountersCommand struct {
	command
	operation    CounterOperation
	firstCounter int
}

// NewReadEventCountersCommand builds a Read Event Counter command. The target
// is the counter number (0-26) for ReadSingleCounter, the record number (1-3)
// for ReadCounterRecord.
func NewReadEventCountersCommand(s *SAM, operation CounterOperation, target int) (*ReadEventCountersCommand, error) {
	var p1, p2 byte
	var firstCounter int

	switch operation {
	case ReadSingleCounter:
		if target < 0 || target > maxCeilingNumber {
			return nil, fmt.Errorf("%w: counter number %d outside [0, %d]", ErrInvalidArgument, target, maxCeilingNumber)
		}
		firstCounter = target
		p1 = byte(target)
		p2 = 0xA8
	case ReadCounterRecord:
		if target < 1 || target > ceilingRecordCount {
			return nil, fmt.Errorf("%w: record number %d outside [1, %d]", ErrInvalidArgument, target, ceilingRecordCount)
		}
		firstCounter = (target - 1) * ceilingsPerRecord
		p1 = 0x00
		p2 = 0xA0 + byte(target)
	default:
		return nil, fmt.Errorf("%w: unknown counter operation %d", ErrInvalidArgument, operation)
	}

	return &ReadEventCountersCommand{
		command: command{
			name:        "Read Event Counter",
			request:     apdu.NewCommandAPDU(s.ClassByte(), insReadEventCounter, p1, p2, nil, apdu.MaxShortLe),
			expectedLen: readCeilingsResponseLen,
			sam:         s,
			statuses:    readEventCountersStatuses,
		},
		operation:    operation,
		firstCounter: firstCounter,
	}, nil
}

// ParseResponse implements Command. On success the counter values are
// extracted from their fixed offsets and written to the module state.
func (c *ReadEventCountersCommand) ParseResponse(resp *apdu.ResponseAPDU) error {
	if err := c.checkStatus(resp); err != nil {
		return err
	}

	data := resp.Data
	if c.operation == ReadSingleCounter {
		value, err := bytesutil.ExtractUint(data, 9, 3)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		c.sam.putEventCounter(int(data[8]), value)
		return nil
	}

	for i := 0; i < ceilingsPerRecord; i++ {
		value, err := bytesutil.ExtractUint(data, 8+3*i, 3)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		c.sam.putEventCounter(c.firstCounter+i, value)
	}
	return nil
}
