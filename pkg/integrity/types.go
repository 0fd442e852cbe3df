package integrity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TypeSpec is a declared field type. Specs combine with | to accept any of
// several types, e.g. TypeText|TypeInt.
type TypeSpec uint8

const (
	// TypeText accepts any string. This is the loose tier used for
	// human-facing fields such as titles and names.
	TypeText TypeSpec = 1 << iota
	// TypeStr accepts only strings made of ASCII characters. This is the
	// strict tier used for identifiers and addresses.
	TypeStr
	// TypeInt accepts integers. Booleans count as integers.
	TypeInt
	// TypeBool accepts booleans.
	TypeBool
	// TypeList accepts sequences.
	TypeList
	// TypeDict accepts mappings.
	TypeDict
)

var typeNames = []struct {
	spec TypeSpec
	name string
}{
	{TypeText, "text"},
	{TypeStr, "str"},
	{TypeInt, "int"},
	{TypeBool, "bool"},
	{TypeList, "list"},
	{TypeDict, "dict"},
}

// Matches reports whether v is an instance of any type in t.
func (t TypeSpec) Matches(v Value) bool {
	switch v.kind {
	case KindString:
		if t&TypeText != 0 {
			return true
		}
		return t&TypeStr != 0 && isASCII(v.s)
	case KindInt:
		return t&TypeInt != 0
	case KindBool:
		return t&(TypeBool|TypeInt) != 0
	case KindSeq:
		return t&TypeList != 0
	case KindMap:
		return t&TypeDict != 0
	default:
		return false
	}
}

// String renders the spec as it appears in violation messages, e.g.
// "text or int".
func (t TypeSpec) String() string {
	var names []string
	for _, tn := range typeNames {
		if t&tn.spec != 0 {
			names = append(names, tn.name)
		}
	}
	if len(names) == 0 {
		return "nothing"
	}
	return strings.Join(names, " or ")
}

// ParseTypeSpec parses a spec written as type names joined by "|" or " or ",
// e.g. "text|int".
func ParseTypeSpec(s string) (TypeSpec, error) {
	var spec TypeSpec
	s = strings.ReplaceAll(s, " or ", "|")
	for _, part := range strings.Split(s, "|") {
		name := strings.TrimSpace(part)
		found := false
		for _, tn := range typeNames {
			if tn.name == name {
				spec |= tn.spec
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown type %q", name)
		}
	}
	return spec, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
