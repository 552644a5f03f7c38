package sam

import (
	"errors"
	"fmt"
)

// Construction-time validation failures. They are programmer errors, raised
// before any transport interaction and never retried.
var (
	// ErrInvalidArgument reports a malformed parameter or a collaborator
	// lacking a required capability.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingPowerOnData reports an absent power-on answer at identity
	// construction.
	ErrMissingPowerOnData = errors.New("missing power-on data")
)

// ErrorKind classifies a protocol status failure. The enumeration is closed:
// every status table entry carrying an error maps to one of these tags.
type ErrorKind int

const (
	// KindNone marks a successful or warning-only status; no error is raised.
	KindNone ErrorKind = iota
	// KindUnknownStatus covers status codes absent from every table.
	KindUnknownStatus
	// KindIllegalParameter reports incorrect P1/P2, Lc or instruction bytes.
	KindIllegalParameter
	// KindCounterOverflow reports an event counter that cannot be incremented.
	KindCounterOverflow
	// KindSecurityContext reports unfulfilled security conditions.
	KindSecurityContext
	// KindDataAccess reports content incompatible with the module file system.
	KindDataAccess
	// KindAccessForbidden reports a preliminary security condition failure.
	KindAccessForbidden
	// KindUnexpectedLength reports a response whose data length disagrees
	// with the command's expectation.
	KindUnexpectedLength
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnknownStatus:
		return "unknown status"
	case KindIllegalParameter:
		return "illegal parameter"
	case KindCounterOverflow:
		return "counter overflow"
	case KindSecurityContext:
		return "security context"
	case KindDataAccess:
		return "data access"
	case KindAccessForbidden:
		return "access forbidden"
	case KindUnexpectedLength:
		return "unexpected response length"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// CommandError is the classified failure raised when a response status word
// resolves to an error entry, or to no entry at all. It carries enough
// context to diagnose the exchange without inspecting the frame.
type CommandError struct {
	Command string
	Code    uint16
	Kind    ErrorKind
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed with status %04X (%s): %s", e.Command, e.Code, e.Kind, e.Message)
}

// IsKind reports whether err is a CommandError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Kind == kind
}
