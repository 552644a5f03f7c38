package sam

// STATUS TABLES:
// Every command owns a table mapping 16-bit status words to a human message
// and an error kind. A shared base table covers the codes every command can
// return; each command overlays its domain-specific entries on top of it.
//
// Resolution is an exact-code lookup: the command overlay wins on collision,
// then the base table is consulted, and a code absent from both raises the
// unknown-status error. Entries with KindNone are warning or success rows:
// no error is raised and response parsing proceeds.

// statusProperties describes one status table entry.
type statusProperties struct {
	message string
	kind    ErrorKind
}

// statusTable is a command's overlay of status word entries. The shared base
// table is consulted when the overlay misses, so overlays stay small and the
// base is never copied per command.
type statusTable map[uint16]statusProperties

// baseStatusTable holds the codes common to every command.
var baseStatusTable = statusTable{
	0x6D00: {message: "Instruction unknown.", kind: KindIllegalParameter},
	0x6E00: {message: "Class not supported.", kind: KindIllegalParameter},
	0x9000: {message: "Success"},
}

// resolve looks up a status word, overlay first, base table second.
func (t statusTable) resolve(code uint16) (statusProperties, bool) {
	if properties, ok := t[code]; ok {
		return properties, true
	}
	properties, ok := baseStatusTable[code]
	return properties, ok
}
