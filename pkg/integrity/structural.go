package integrity

import "fmt"

// AssertStringKeys fails if any key of the mapping is not a string.
func AssertStringKeys(label string, m Value) error {
	for _, e := range m.Entries() {
		if e.Key.Kind() != KindString {
			return schemaError("%s %s incorrect key type, must be a string.", label, e.Key.Repr())
		}
	}
	return nil
}

// AssertValueDataTypes checks that each named field of the mapping, when
// present and truthy, matches t. With no fields named every entry of the
// mapping is checked. Absent and empty values always pass.
func AssertValueDataTypes(label string, m Value, t TypeSpec, fields ...string) error {
	if len(fields) == 0 {
		for _, e := range m.Entries() {
			if e.Value.Truthy() && !t.Matches(e.Value) {
				return schemaError("%s %s %s must be %s.", label, e.Key.String(), e.Value.Repr(), t.String())
			}
		}
		return nil
	}

	for _, field := range fields {
		v, ok := m.Field(field)
		if ok && !t.Matches(v) {
			return schemaError("%s %s %s must be %s.", label, field, v.Repr(), t.String())
		}
	}
	return nil
}

// AssertItemDataTypes checks that every item of the sequence matches t.
// Positions in messages are 1-based.
func AssertItemDataTypes(label string, seq Value, t TypeSpec) error {
	for i, item := range seq.Items() {
		if !t.Matches(item) {
			return schemaError("%s %d must be %s.", label, i+1, t.String())
		}
	}
	return nil
}

// assertDataset accepts an absent (null) dataset as empty and otherwise
// requires the top-level container kind.
func assertDataset(name string, v Value, t TypeSpec) error {
	if v.IsNull() || t.Matches(v) {
		return nil
	}
	return schemaError("Dataset %s must be %s.", name, t.String())
}

// assertRecord accepts a null record as an empty mapping.
func assertRecord(label string, v Value) error {
	if v.IsNull() || v.Kind() == KindMap {
		return nil
	}
	return schemaError("%s must be %s.", label, TypeDict.String())
}

func assertFields(label string, record Value, fields Fields) error {
	for _, r := range fields {
		if err := AssertValueDataTypes(label, record, r.Type, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePeople checks the people registry against the schema and requires
// every person to have a name.
func (s *Schema) ValidatePeople(persons Value) error {
	if err := assertDataset("people", persons, TypeDict); err != nil {
		return err
	}
	if err := AssertStringKeys("Person", persons); err != nil {
		return err
	}

	for _, e := range persons.Entries() {
		label := "Person " + e.Key.Repr()
		person := e.Value
		if err := assertRecord(label, person); err != nil {
			return err
		}
		if err := AssertStringKeys(label, person); err != nil {
			return err
		}
		if err := assertFields(label, person, s.Person); err != nil {
			return err
		}
		if _, ok := person.Field("name"); !ok {
			return schemaError("Person %s has no name.", e.Key.Repr())
		}
	}
	return nil
}

// ValidateSessions checks every session and its talks.
func (s *Schema) ValidateSessions(sessions Value) error {
	if err := assertDataset("sessions", sessions, TypeDict); err != nil {
		return err
	}
	if err := AssertStringKeys("Session", sessions); err != nil {
		return err
	}

	for _, e := range sessions.Entries() {
		label := "Session " + e.Key.Repr()
		session := e.Value
		if err := assertRecord(label, session); err != nil {
			return err
		}
		if err := AssertStringKeys(label, session); err != nil {
			return err
		}
		if err := assertFields(label, session, s.Session); err != nil {
			return err
		}
		talks, _ := session.Field("talks")
		if err := s.ValidateTalks(label+" talk", talks); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTalks checks that every talk is a mapping and validates each one.
func (s *Schema) ValidateTalks(label string, talks Value) error {
	if err := AssertItemDataTypes(label, talks, TypeDict); err != nil {
		return err
	}
	for i, talk := range talks.Items() {
		if err := s.ValidateTalk(fmt.Sprintf("%s %d", label, i+1), talk); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTalk checks a single talk. Slides and panel may be a single string
// or a list; list items are checked individually.
func (s *Schema) ValidateTalk(label string, talk Value) error {
	if err := AssertStringKeys(label, talk); err != nil {
		return err
	}
	if err := assertFields(label, talk, s.Talk); err != nil {
		return err
	}

	slides, _ := talk.Lookup("slides")
	if names := NamesOf(slides); names.Variant == NamesList {
		if err := AssertItemDataTypes(label+" slides", slides, s.Slide); err != nil {
			return err
		}
	}
	panel, _ := talk.Lookup("panel")
	if names := NamesOf(panel); names.Variant == NamesList {
		if err := AssertItemDataTypes(label+" panel", panel, s.PanelMember); err != nil {
			return err
		}
	}
	return nil
}

// ValidateProgram checks that every program day is a mapping and validates
// each one.
func (s *Schema) ValidateProgram(program Value) error {
	if err := assertDataset("program", program, TypeList); err != nil {
		return err
	}
	if err := AssertItemDataTypes("Program day", program, TypeDict); err != nil {
		return err
	}
	for i, day := range program.Items() {
		if err := s.ValidateDay(fmt.Sprintf("Program day %d", i+1), day); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDay checks a single day and its slot schedule.
func (s *Schema) ValidateDay(label string, day Value) error {
	if err := AssertStringKeys(label, day); err != nil {
		return err
	}
	if err := assertFields(label, day, s.Day); err != nil {
		return err
	}
	slots, _ := day.Field("slots")
	return s.validateSlots(label+" schedule", slots)
}

func (s *Schema) validateSlots(label string, slots Value) error {
	if err := AssertStringKeys(label, slots); err != nil {
		return err
	}
	return AssertValueDataTypes(label, slots, s.Activity)
}

// ValidatePeople checks people against the default schema.
func ValidatePeople(persons Value) error { return DefaultSchema().ValidatePeople(persons) }

// ValidateSessions checks sessions against the default schema.
func ValidateSessions(sessions Value) error { return DefaultSchema().ValidateSessions(sessions) }

// ValidateTalks checks a list of talks against the default schema.
func ValidateTalks(label string, talks Value) error {
	return DefaultSchema().ValidateTalks(label, talks)
}

// ValidateTalk checks a single talk against the default schema.
func ValidateTalk(label string, talk Value) error { return DefaultSchema().ValidateTalk(label, talk) }

// ValidateProgram checks the program against the default schema.
func ValidateProgram(program Value) error { return DefaultSchema().ValidateProgram(program) }

// ValidateDay checks a single day against the default schema.
func ValidateDay(label string, day Value) error { return DefaultSchema().ValidateDay(label, day) }
