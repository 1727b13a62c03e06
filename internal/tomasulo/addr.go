package tomasulo

import (
	"strconv"
	"strings"
)

// ParseMemOperand parses a LOAD/STORE memory operand of the form
// "offset(Rbase)" into its offset and base register (spec.md §4.6). A
// malformed operand (spec.md §7: "Leave address=0, parsing falls through")
// reports ok=false; callers then treat the address as 0 and skip the base
// register from hazard checks.
func ParseMemOperand(text string) (offset int, base RegRef, ok bool) {
	open := strings.IndexByte(text, '(')
	close := strings.IndexByte(text, ')')
	if open < 0 || close < 0 || close < open {
		return 0, RegRef{}, false
	}

	offsetPart := text[:open]
	baseName := text[open+1 : close]

	n, err := strconv.Atoi(strings.TrimSpace(offsetPart))
	if err != nil {
		return 0, RegRef{}, false
	}

	ref, err := ParseRegRef(strings.TrimSpace(baseName))
	if err != nil {
		return 0, RegRef{}, false
	}

	return n, ref, true
}

// ParseRegRef parses a register name like "F3" or "R17" into a RegRef.
func ParseRegRef(name string) (RegRef, error) {
	if len(name) < 2 {
		return RegRef{}, errInvalidRegister(name)
	}

	var kind RegKind
	switch name[0] {
	case 'F', 'f':
		kind = FloatReg
	case 'R', 'r':
		kind = IntReg
	default:
		return RegRef{}, errInvalidRegister(name)
	}

	idx, err := strconv.Atoi(name[1:])
	if err != nil || idx < 0 || idx > 31 {
		return RegRef{}, errInvalidRegister(name)
	}

	return RegRef{Kind: kind, Index: idx}, nil
}

type invalidRegisterError string

func (e invalidRegisterError) Error() string {
	return "invalid register name: " + string(e)
}

func errInvalidRegister(name string) error {
	return invalidRegisterError(name)
}
