package sam

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/gregLibert/calypso-sam/pkg/apdu"
	"github.com/gregLibert/calypso-sam/pkg/bytesutil"
)

// TRANSACTION MANAGER:
// The manager binds a reader and a module state for the duration of a
// session. Construction performs no I/O; it only verifies that each
// collaborator carries the capability the manager requires:
//
//   - the reader must expose the transport capability (apdu.Transmitter),
//   - the module must be the concrete *SAM adapter, since command parsing
//     mutates its counter/ceiling state.
//
// Each operation is synchronous: build the command, encode and transmit the
// frame, parse the response, surface the classified error or apply the state
// mutation. Nothing is retried and no timeout is applied at this layer;
// timeout policy belongs to the transport.

// FreeTransactionManager executes SAM commands outside of any secure session.
type FreeTransactionManager struct {
	transmitter apdu.Transmitter
	sam         *SAM
	trace       apdu.Trace
	log         logrus.FieldLogger
}

// NewFreeTransactionManager capability-checks the collaborators and binds
// them into a manager. The reader is typed loosely on purpose: reader
// implementations come from foreign plugins and only some of them carry the
// transport capability.
func NewFreeTransactionManager(reader any, module Module) (*FreeTransactionManager, error) {
	transmitter, ok := reader.(apdu.Transmitter)
	if !ok {
		return nil, fmt.Errorf("%w: the provided 'reader' must implement the transport capability (apdu.Transmitter)", ErrInvalidArgument)
	}

	s, ok := module.(*SAM)
	if !ok {
		return nil, fmt.Errorf("%w: the provided 'module' must be an instance of *sam.SAM", ErrInvalidArgument)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &FreeTransactionManager{
		transmitter: transmitter,
		sam:         s,
		log:         discard,
	}, nil
}

// SetLogger routes the manager's frame logging to l. Parsing itself never
// logs; observability stays a side channel of the transport loop.
func (m *FreeTransactionManager) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		m.log = l
	}
}

// Trace returns the Command-Response history of the session so far.
func (m *FreeTransactionManager) Trace() apdu.Trace {
	return m.trace
}

// ReadEventCounter reads a single event counter (0-26) and returns its value.
func (m *FreeTransactionManager) ReadEventCounter(number int) (int, error) {
	cmd, err := NewReadEventCountersCommand(m.sam, ReadSingleCounter, number)
	if err != nil {
		return 0, err
	}
	if err := m.processCommand(cmd); err != nil {
		return 0, err
	}
	value, _ := m.sam.EventCounter(number)
	return value, nil
}

// ReadEventCounterRecord reads a record of nine event counters (record 1-3).
func (m *FreeTransactionManager) ReadEventCounterRecord(record int) error {
	cmd, err := NewReadEventCountersCommand(m.sam, ReadCounterRecord, record)
	if err != nil {
		return err
	}
	return m.processCommand(cmd)
}

// ReadCeiling reads a single event ceiling (0-26) and returns its value.
func (m *FreeTransactionManager) ReadCeiling(number int) (int, error) {
	cmd, err := NewReadCeilingsCommand(m.sam, ReadSingleCeiling, number)
	if err != nil {
		return 0, err
	}
	if err := m.processCommand(cmd); err != nil {
		return 0, err
	}
	value, _ := m.sam.EventCeiling(number)
	return value, nil
}

// ReadCeilingRecord reads a record of nine event ceilings (record 1-3).
func (m *FreeTransactionManager) ReadCeilingRecord(record int) error {
	cmd, err := NewReadCeilingsCommand(m.sam, ReadCeilingRecord, record)
	if err != nil {
		return err
	}
	return m.processCommand(cmd)
}

// GiveRandom pushes an 8-byte challenge into the module.
func (m *FreeTransactionManager) GiveRandom(random []byte) error {
	cmd, err := NewGiveRandomCommand(m.sam, random)
	if err != nil {
		return err
	}
	return m.processCommand(cmd)
}

// processCommand runs one synchronous round-trip: encode, transmit, parse.
// The Command-Response pair is appended to the trace whatever the outcome of
// the status classification.
func (m *FreeTransactionManager) processCommand(cmd Command) error {
	request := cmd.Request()

	rawRequest, err := request.Bytes()
	if err != nil {
		return fmt.Errorf("%s: encoding error: %w", cmd.Name(), err)
	}

	m.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"frame":   bytesutil.ToHex(rawRequest),
	}).Debug("transmitting request")

	rawResponse, err := m.transmitter.Transmit(rawRequest)
	if err != nil {
		return fmt.Errorf("%s: transmission error: %w", cmd.Name(), err)
	}

	response, err := apdu.ParseResponseAPDU(rawResponse)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	m.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"status":  response.Status.String(),
		"bytes":   len(response.Data),
	}).Debug("response received")

	m.trace = append(m.trace, apdu.Transaction{Command: request, Response: response})

	return cmd.ParseResponse(response)
}
