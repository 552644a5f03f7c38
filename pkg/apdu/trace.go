package apdu

// TRANSACTION:
// A Transaction is the atomic unit of communication with the module: one
// Command APDU sent by the terminal, followed by one Response APDU sent back.
//
// TRACE:
// A Trace is a chronological sequence of Transactions. A SAM exchange is
// single-shot (no 61xx/6Cxx continuation), so each logical operation adds
// exactly one Transaction; the Trace captures the history of a whole command
// sequence for diagnostics.

// Transaction represents a completed Command-Response pair.
type Transaction struct {
	Command  *CommandAPDU
	Response *ResponseAPDU
}

// IsSuccess checks if the transaction ended with a successful status.
// It returns false if the response is missing.
func (t *Transaction) IsSuccess() bool {
	if t.Response == nil {
		return false
	}
	return t.Response.Status.IsSuccess()
}

// Trace is a sequence of transactions (Command-Response pairs).
type Trace []Transaction

// Last returns the final transaction of the trace.
// Returns nil if the trace is empty.
func (t Trace) Last() *Transaction {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// IsSuccess checks if the FINAL transaction in the trace was successful.
func (t Trace) IsSuccess() bool {
	last := t.Last()
	if last == nil {
		return false
	}
	return last.IsSuccess()
}
