package sam

import (
	"fmt"

	"github.com/gregLibert/calypso-sam/pkg/apdu"
	"github.com/gregLibert/calypso-sam/pkg/bytesutil"
)

// READ CEILINGS COMMAND LOGIC:
// The command reads event ceilings, either one at a time or as a record of
// nine consecutive entries.
//
// P1/P2 encoding:
//   - Single ceiling: P1 = ceiling number (0-26), P2 = 0xB8.
//   - Ceiling record: P1 = 0x00, P2 = 0xB0 + record number (1-3).
//
// Response layout (48 bytes):
//   - Single ceiling: ceiling number on 1 byte at offset 8, value on 3 bytes
//     big-endian at offset 9.
//   - Ceiling record: nine 3-byte big-endian values starting at offset 8;
//     entry i belongs to ceiling (record-1)*9 + i.

// CeilingsOperation selects between reading one ceiling and a record of nine.
type CeilingsOperation int

const (
	// ReadSingleCeiling reads the ceiling designated by its number (0-26).
	ReadSingleCeiling CeilingsOperation = iota
	// ReadCeilingRecord reads the nine ceilings of a record (1-3).
	ReadCeilingRecord
)

const (
	// ceilingsPerRecord is the number of entries in a record response.
	ceilingsPerRecord = 9

	// maxCeilingNumber is the highest addressable ceiling.
	maxCeilingNumber = 26

	// ceilingRecordCount is the number of addressable records.
	ceilingRecordCount = 3

	// readCeilingsResponseLen is the fixed data length of a response.
	readCeilingsResponseLen = 48
)

var readCeilingsStatuses = statusTable{
	0x6900: {message: "An event counter cannot be incremented.", kind: KindCounterOverflow},
	0x6A00: {message: "Incorrect P1 or P2.", kind: KindIllegalParameter},
	0x6200: {message: "Correct execution with warning: data not signed."},
}

// ReadCeilingsCommand reads event ceilings into the module state.
type ReadCeilingsCommand struct {
	command
	operation    CeilingsOperation
	firstCeiling int
}

// NewReadCeilingsCommand builds a Read Ceilings command. The target is the
// ceiling number (0-26) for ReadSingleCeiling, the record number (1-3) for
// ReadCeilingRecord.
func NewReadCeilingsCommand(s *SAM, operation CeilingsOperation, target int) (*ReadCeilingsCommand, error) {
	var p1, p2 byte
	var firstCeiling int

	switch operation {
	case ReadSingleCeiling:
		if target < 0 || target > maxCeilingNumber {
			return nil, fmt.Errorf("%w: ceiling number %d outside [0, %d]", ErrInvalidArgument, target, maxCeilingNumber)
		}
		firstCeiling = target
		p1 = byte(target)
		p2 = 0xB8
	case ReadCeilingRecord:
		if target < 1 || target > ceilingRecordCount {
			return nil, fmt.Errorf("%w: record number %d outside [1, %d]", ErrInvalidArgument, target, ceilingRecordCount)
		}
		firstCeiling = (target - 1) * ceilingsPerRecord
		p1 = 0x00
		p2 = 0xB0 + byte(target)
	default:
		return nil, fmt.Errorf("%w: unknown ceilings operation %d", ErrInvalidArgument, operation)
	}

	return &ReadCeilingsCommand{
		command: command{
			name:        "Read Ceilings",
			request:     apdu.NewCommandAPDU(s.ClassByte(), insReadCeilings, p1, p2, nil, apdu.MaxShortLe),
			expectedLen: readCeilingsResponseLen,
			sam:         s,
			statuses:    readCeilingsStatuses,
		},
		operation:    operation,
		firstCeiling: firstCeiling,
	}, nil
}

// ParseResponse implements Command. On success the ceiling values are
// extracted from their fixed offsets and written to the module state.
func (c *ReadCeilingsCommand) ParseResponse(resp *apdu.ResponseAPDU) error {
	if err := c.checkStatus(resp); err != nil {
		return err
	}

	data := resp.Data
	if c.operation == ReadSingleCeiling {
		value, err := bytesutil.ExtractUint(data, 9, 3)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		c.sam.putEventCeiling(int(data[8]), value)
		return nil
	}

	for i := 0; i < ceilingsPerRecord; i++ {
		value, err := bytesutil.ExtractUint(data, 8+3*i, 3)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		c.sam.putEventCeiling(c.firstCeiling+i, value)
	}
	return nil
}
