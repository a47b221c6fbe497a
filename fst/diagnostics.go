package fst

import "fmt"

// These three message builders produce the traceback side-output:
// they are diagnostics only, never part of the decoded symbol string.

func substitutionMessage(pos int, emitted, observed Base) string {
	return fmt.Sprintf("substitution at %d: %c -> %c", pos, baseToChar(emitted), baseToChar(observed))
}

func deletionMessage(from, to int, emitted Base) string {
	return fmt.Sprintf("deletion between %d and %d: %c", from, to, baseToChar(emitted))
}

func duplicationMessage(pos int, dup string) string {
	return fmt.Sprintf("duplication at %d: %s", pos, dup)
}
