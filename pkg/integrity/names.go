package integrity

// NamesVariant tells which form a Names value takes.
type NamesVariant int

const (
	// NamesNone means the field was absent or empty.
	NamesNone NamesVariant = iota
	// NamesText means the field held a single string.
	NamesText
	// NamesList means the field held a sequence.
	NamesList
)

// Names is a field that accepts either a single string or a list, such as a
// talk's slides or panel.
type Names struct {
	Variant NamesVariant
	Text    string
	List    []Value
}

// NamesOf classifies v. Values that are neither a string nor a sequence
// classify as NamesNone.
func NamesOf(v Value) Names {
	switch v.Kind() {
	case KindSeq:
		return Names{Variant: NamesList, List: v.Items()}
	case KindString:
		if v.Truthy() {
			return Names{Variant: NamesText, Text: v.s}
		}
	}
	return Names{Variant: NamesNone}
}

// Members returns the entries named by the field. A single string names one
// entry.
func (n Names) Members() []Value {
	switch n.Variant {
	case NamesText:
		return []Value{String(n.Text)}
	case NamesList:
		return n.List
	default:
		return nil
	}
}
