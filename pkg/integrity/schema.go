package integrity

import (
	"fmt"
	"strings"
)

// FieldRule declares the type of a single named field.
type FieldRule struct {
	Name string
	Type TypeSpec
}

// Fields is an ordered list of field rules. Fields are checked in order, so
// the order decides which violation is reported first.
type Fields []FieldRule

// Get returns the rule for the named field.
func (f Fields) Get(name string) (FieldRule, bool) {
	for _, r := range f {
		if r.Name == name {
			return r, true
		}
	}
	return FieldRule{}, false
}

// Schema is the table of declared field types for the three datasets.
//
// The table is fixed in shape: fields can be retyped (for example moving a
// field between the text and str tiers) but not added or removed.
type Schema struct {
	Person  Fields
	Session Fields
	Talk    Fields
	Day     Fields

	// Activity is the type of every slot value in a day's slots.
	Activity TypeSpec
	// Slide is the type of each item of a list of slides.
	Slide TypeSpec
	// PanelMember is the type of each item of a list of panel members.
	PanelMember TypeSpec
}

// DefaultSchema returns the built-in schema table.
func DefaultSchema() *Schema {
	return &Schema{
		Person: Fields{
			{"area", TypeText},
			{"name", TypeText},
			{"home", TypeText},
			{"role", TypeText},
			{"size", TypeText},
			{"email", TypeStr},
			{"arrival", TypeText | TypeInt},
			{"departure", TypeText | TypeInt},
			{"shuttle", TypeBool},
		},
		Session: Fields{
			{"chair", TypeStr},
			{"title", TypeText},
			{"room", TypeText},
			{"abstract", TypeBool},
			{"plenary", TypeBool},
			{"talks", TypeList},
		},
		Talk: Fields{
			{"speaker", TypeStr},
			{"title", TypeText},
			{"abstract", TypeBool},
			{"slides", TypeList | TypeStr},
			{"panel", TypeList | TypeStr},
		},
		Day: Fields{
			{"title", TypeText},
			{"slots", TypeDict},
		},
		Activity:    TypeText,
		Slide:       TypeStr,
		PanelMember: TypeStr,
	}
}

// Tables returns the field tables keyed by record name.
func (s *Schema) Tables() map[string]Fields {
	return map[string]Fields{
		"person":  s.Person,
		"session": s.Session,
		"talk":    s.Talk,
		"day":     s.Day,
	}
}

// Override retypes a field. path is "<record>.<field>", e.g. "person.email",
// or one of "activity", "slide", "panel_member".
//
// Structural fields (talks, slots, slides, panel) keep their container type
// since the checkers descend into them.
func (s *Schema) Override(path string, t TypeSpec) error {
	switch path {
	case "activity":
		s.Activity = t
		return nil
	case "slide":
		s.Slide = t
		return nil
	case "panel_member":
		s.PanelMember = t
		return nil
	}

	record, field, ok := strings.Cut(path, ".")
	if !ok {
		return fmt.Errorf("invalid schema path %q: expected <record>.<field>", path)
	}

	var fields Fields
	switch record {
	case "person":
		fields = s.Person
	case "session":
		fields = s.Session
	case "talk":
		fields = s.Talk
	case "day":
		fields = s.Day
	default:
		return fmt.Errorf("unknown schema record %q", record)
	}

	for i := range fields {
		if fields[i].Name != field {
			continue
		}
		if required, structural := containerFields[path]; structural && t&required == 0 {
			return fmt.Errorf("schema field %s must accept %s", path, required)
		}
		fields[i].Type = t
		return nil
	}
	return fmt.Errorf("unknown schema field %q", path)
}

var containerFields = map[string]TypeSpec{
	"session.talks": TypeList,
	"day.slots":     TypeDict,
	"talk.slides":   TypeList,
	"talk.panel":    TypeList,
}
