package integrity

import "testing"

func TestAssertStringKeys(t *testing.T) {
	tests := []struct {
		name string
		m    Value
		want string
	}{
		{"all string keys", Map(E("a", 1), E("b", 2)), ""},
		{"empty mapping", Map(), ""},
		{"null", Null(), ""},
		{"int key", Map(E("a", 1), E(7, 2)), "Person 7 incorrect key type, must be a string."},
		{"bool key", Map(E(true, 1)), "Person True incorrect key type, must be a string."},
		{"null key", Map(Entry{Key: Null(), Value: Int(1)}), "Person None incorrect key type, must be a string."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, AssertStringKeys("Person", tt.m), SchemaError, tt.want)
		})
	}
}

func TestAssertValueDataTypes_FalsyNeverViolates(t *testing.T) {
	specs := []TypeSpec{TypeText, TypeStr, TypeInt, TypeBool, TypeList, TypeDict, TypeText | TypeInt}
	falsy := []Value{Null(), String(""), Seq(), Map(), Bool(false), Int(0)}

	for _, spec := range specs {
		for _, v := range falsy {
			record := Map(Entry{Key: String("field"), Value: v})
			if err := AssertValueDataTypes("Record", record, spec, "field"); err != nil {
				t.Errorf("%s field with %s: unexpected violation %v", spec, v.Repr(), err)
			}
			if err := AssertValueDataTypes("Record", record, spec); err != nil {
				t.Errorf("%s (all keys) with %s: unexpected violation %v", spec, v.Repr(), err)
			}
		}
		if err := AssertValueDataTypes("Record", Map(), spec, "field"); err != nil {
			t.Errorf("%s absent field: unexpected violation %v", spec, err)
		}
	}
}

func TestAssertValueDataTypes(t *testing.T) {
	record := Of(obj{"email": "a@b.org", "shuttle": "yes", "size": "L"})

	assertViolation(t, AssertValueDataTypes("Person 'p1'", record, TypeStr, "email"), SchemaError, "")
	assertViolation(t, AssertValueDataTypes("Person 'p1'", record, TypeBool, "shuttle"), SchemaError,
		"Person 'p1' shuttle 'yes' must be bool.")

	slots := Map(E("9am", "Registration"), E("10am", 5))
	assertViolation(t, AssertValueDataTypes("Program day 1 schedule", slots, TypeText), SchemaError,
		"Program day 1 schedule 10am 5 must be text.")
}

func TestAssertItemDataTypes(t *testing.T) {
	assertViolation(t, AssertItemDataTypes("Program day", Of(list{obj{}, obj{"a": 1}}), TypeDict), SchemaError, "")
	assertViolation(t, AssertItemDataTypes("Program day", Of(list{obj{"a": 1}, "x"}), TypeDict), SchemaError,
		"Program day 2 must be dict.")
	assertViolation(t, AssertItemDataTypes("Program day", Of(list{nil}), TypeDict), SchemaError,
		"Program day 1 must be dict.")
}

func TestValidatePeople(t *testing.T) {
	tests := []struct {
		name    string
		persons Value
		want    string
	}{
		{
			name:    "valid person",
			persons: Of(obj{"p1": obj{"name": "Alice"}}),
		},
		{
			name:    "missing name",
			persons: Of(obj{"p1": obj{"area": "x"}}),
			want:    "Person 'p1' has no name.",
		},
		{
			name:    "empty name",
			persons: Of(obj{"p1": obj{"name": ""}}),
			want:    "Person 'p1' has no name.",
		},
		{
			name:    "null person",
			persons: Of(obj{"p1": nil}),
			want:    "Person 'p1' has no name.",
		},
		{
			name:    "id with apostrophe",
			persons: Of(obj{"O'Brien": obj{"area": "x"}}),
			want:    `Person "O'Brien" has no name.`,
		},
		{
			name:    "name of wrong type",
			persons: Of(obj{"p1": obj{"name": 5}}),
			want:    "Person 'p1' name 5 must be text.",
		},
		{
			name:    "unicode name is text",
			persons: Of(obj{"p1": obj{"name": "Jörg Müller", "home": "Göteborg"}}),
		},
		{
			name:    "unicode email is not str",
			persons: Of(obj{"p1": obj{"name": "Jörg", "email": "jörg@example.org"}}),
			want:    "Person 'p1' email 'jörg@example.org' must be str.",
		},
		{
			name:    "arrival as int or text",
			persons: Of(obj{"p1": obj{"name": "A", "arrival": 3}, "p2": obj{"name": "B", "departure": "Friday"}}),
		},
		{
			name:    "arrival as float",
			persons: Of(obj{"p1": obj{"name": "A", "arrival": 1.5}}),
			want:    "Person 'p1' arrival 1.5 must be text or int.",
		},
		{
			name:    "shuttle as string",
			persons: Of(obj{"p1": obj{"name": "A", "shuttle": "yes"}}),
			want:    "Person 'p1' shuttle 'yes' must be bool.",
		},
		{
			name:    "explicit empty values are accepted",
			persons: Of(obj{"p1": obj{"name": "A", "email": "", "shuttle": false, "area": nil}}),
		},
		{
			name:    "non-string person id",
			persons: Map(E(1, obj{"name": "A"})),
			want:    "Person 1 incorrect key type, must be a string.",
		},
		{
			name:    "non-string attribute key",
			persons: Of(obj{"p1": Map(E("name", "A"), E(2, "x"))}),
			want:    "Person 'p1' 2 incorrect key type, must be a string.",
		},
		{
			name:    "person is not a mapping",
			persons: Of(obj{"p1": "Alice"}),
			want:    "Person 'p1' must be dict.",
		},
		{
			name:    "people is a list",
			persons: Of(list{obj{"name": "A"}}),
			want:    "Dataset people must be dict.",
		},
		{
			name:    "no people at all",
			persons: Null(),
		},
		{
			name:    "type checks precede the name check",
			persons: Of(obj{"p1": obj{"area": 7}}),
			want:    "Person 'p1' area 7 must be text.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, ValidatePeople(tt.persons), SchemaError, tt.want)
		})
	}
}

func TestValidateSessions(t *testing.T) {
	tests := []struct {
		name     string
		sessions Value
		want     string
	}{
		{
			name: "valid session",
			sessions: Of(obj{"s1": obj{
				"chair":   "alice",
				"title":   "Opening",
				"room":    "Aula",
				"plenary": true,
				"talks": list{
					obj{"speaker": "bob", "title": "Welcome", "slides": list{"a.pdf", "b.pdf"}},
					obj{"title": "Panel", "panel": list{"alice", "bob"}},
					obj{"title": "Demo", "slides": "demo.pdf", "panel": "carol"},
				},
			}}),
		},
		{
			name:     "empty session",
			sessions: Of(obj{"s1": obj{}}),
		},
		{
			name:     "null session",
			sessions: Of(obj{"s1": nil}),
		},
		{
			name:     "chair of wrong type",
			sessions: Of(obj{"s1": obj{"chair": 5}}),
			want:     "Session 's1' chair 5 must be str.",
		},
		{
			name:     "plenary as string",
			sessions: Of(obj{"s1": obj{"plenary": "yes"}}),
			want:     "Session 's1' plenary 'yes' must be bool.",
		},
		{
			name:     "talks not a list",
			sessions: Of(obj{"s1": obj{"talks": "keynote"}}),
			want:     "Session 's1' talks 'keynote' must be list.",
		},
		{
			name:     "talk not a mapping",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"title": "A"}, "B"}}}),
			want:     "Session 's1' talk 2 must be dict.",
		},
		{
			name:     "speaker as list",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"speaker": list{"a"}}}}}),
			want:     "Session 's1' talk 1 speaker ['a'] must be str.",
		},
		{
			name:     "slides item not a string",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"slides": list{"a.pdf", 1}}}}}),
			want:     "Session 's1' talk 1 slides 2 must be str.",
		},
		{
			name:     "panel as mapping",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"panel": obj{"a": 1}}}}}),
			want:     "Session 's1' talk 1 panel {'a': 1} must be str or list.",
		},
		{
			name:     "panel member not a string",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"panel": list{"alice", list{"bob"}}}}}}),
			want:     "Session 's1' talk 1 panel 2 must be str.",
		},
		{
			name:     "non-string talk key",
			sessions: Of(obj{"s1": obj{"talks": list{Map(E(3, "x"))}}}),
			want:     "Session 's1' talk 1 3 incorrect key type, must be a string.",
		},
		{
			name:     "sessions is a list",
			sessions: Of(list{}),
			want:     "Dataset sessions must be dict.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, ValidateSessions(tt.sessions), SchemaError, tt.want)
		})
	}
}

func TestValidateProgram(t *testing.T) {
	tests := []struct {
		name    string
		program Value
		want    string
	}{
		{
			name: "valid program",
			program: Of(list{
				obj{"title": "Monday", "slots": Map(E("09:00", "Registration"), E("10:00", "Session s1 s2"))},
				obj{"title": "Tuesday"},
			}),
		},
		{
			name:    "no program",
			program: Null(),
		},
		{
			name:    "program is a mapping",
			program: Of(obj{"monday": obj{}}),
			want:    "Dataset program must be list.",
		},
		{
			name:    "day not a mapping",
			program: Of(list{obj{}, "Tuesday"}),
			want:    "Program day 2 must be dict.",
		},
		{
			name:    "slots as list",
			program: Of(list{obj{"slots": list{"a"}}}),
			want:    "Program day 1 slots ['a'] must be dict.",
		},
		{
			name:    "title as int",
			program: Of(list{obj{"title": 1}}),
			want:    "Program day 1 title 1 must be text.",
		},
		{
			name:    "activity not a string",
			program: Of(list{obj{"slots": obj{"9am": 5}}}),
			want:    "Program day 1 schedule 9am 5 must be text.",
		},
		{
			name:    "empty activity is accepted",
			program: Of(list{obj{"slots": obj{"9am": ""}}}),
		},
		{
			name:    "non-string slot label",
			program: Of(list{obj{"slots": Map(E(900, "Lunch"))}}),
			want:    "Program day 1 schedule 900 incorrect key type, must be a string.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, ValidateProgram(tt.program), SchemaError, tt.want)
		})
	}
}

func TestSchema_Override(t *testing.T) {
	s := DefaultSchema()
	persons := Of(obj{"p1": obj{"name": "Jörg", "email": "jörg@example.org"}})

	assertViolation(t, s.ValidatePeople(persons), SchemaError, "Person 'p1' email 'jörg@example.org' must be str.")

	if err := s.Override("person.email", TypeText); err != nil {
		t.Fatalf("override failed: %v", err)
	}
	assertViolation(t, s.ValidatePeople(persons), SchemaError, "")

	if rule, _ := DefaultSchema().Person.Get("email"); rule.Type != TypeStr {
		t.Error("override must not leak into new default schemas")
	}
}

func TestSchema_OverrideErrors(t *testing.T) {
	tests := []struct {
		path string
		spec TypeSpec
	}{
		{"person", TypeText},
		{"venue.name", TypeText},
		{"person.nickname", TypeText},
		{"session.talks", TypeText},
		{"day.slots", TypeList},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if err := DefaultSchema().Override(tt.path, tt.spec); err == nil {
				t.Errorf("expected error overriding %s", tt.path)
			}
		})
	}
}
