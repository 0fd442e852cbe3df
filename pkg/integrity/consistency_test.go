package integrity

import (
	"reflect"
	"testing"
)

func TestAssertConsistencySessionsPersons(t *testing.T) {
	persons := Of(obj{"alice": obj{"name": "Alice"}, "bob": obj{"name": "Bob"}})

	tests := []struct {
		name     string
		sessions Value
		persons  Value
		want     string
	}{
		{
			name:     "missing chair",
			sessions: Of(obj{"s1": obj{"chair": "ghost"}}),
			persons:  Of(obj{}),
			want:     "Session 's1' chair 'ghost' does not exist in persons.yml.",
		},
		{
			name:     "existing chair",
			sessions: Of(obj{"s1": obj{"chair": "ghost"}}),
			persons:  Of(obj{"ghost": obj{"name": "G"}}),
		},
		{
			name:     "empty chair is not a reference",
			sessions: Of(obj{"s1": obj{"chair": ""}}),
			persons:  Of(obj{}),
		},
		{
			name: "missing speaker",
			sessions: Of(obj{"s1": obj{"talks": list{
				obj{"speaker": "alice"},
				obj{"speaker": "carol"},
			}}}),
			persons: persons,
			want:    "Session 's1' talk 2: Speaker 'carol' does not exist in persons register.",
		},
		{
			name: "missing panel member",
			sessions: Of(obj{"s1": obj{"talks": list{
				obj{"speaker": "alice"},
				obj{"panel": list{"bob", "eve"}},
			}}}),
			persons: persons,
			want:    "Session 's1' talk 2 panel member 2 'eve' does not exist in persons register.",
		},
		{
			name:     "single panel member as string",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"panel": "eve"}}}}),
			persons:  persons,
			want:     "Session 's1' talk 1 panel member 1 'eve' does not exist in persons register.",
		},
		{
			name:     "empty panel member is checked",
			sessions: Of(obj{"s1": obj{"talks": list{obj{"panel": list{""}}}}}),
			persons:  persons,
			want:     "Session 's1' talk 1 panel member 1 '' does not exist in persons register.",
		},
		{
			name: "chair is checked before talks",
			sessions: Of(obj{"s1": obj{
				"chair": "ghost",
				"talks": list{obj{"speaker": "carol"}},
			}}),
			persons: persons,
			want:    "Session 's1' chair 'ghost' does not exist in persons.yml.",
		},
		{
			name: "all references resolve",
			sessions: Of(obj{
				"s1": obj{"chair": "alice", "talks": list{obj{"speaker": "bob", "panel": list{"alice", "bob"}}}},
				"s2": obj{"talks": list{obj{"title": "Break"}}},
			}),
			persons: persons,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, AssertConsistencySessionsPersons(tt.sessions, tt.persons), ReferenceError, tt.want)
		})
	}
}

func TestAssertConsistencySessionsPersons_DefinitionOrder(t *testing.T) {
	sessions := Map(
		E("zeta", obj{"chair": "ghost-z"}),
		E("alpha", obj{"chair": "ghost-a"}),
	)

	assertViolation(t, AssertConsistencySessionsPersons(sessions, Of(obj{})), ReferenceError,
		"Session 'zeta' chair 'ghost-z' does not exist in persons.yml.")
}

func TestAssertConsistentProgramSessions(t *testing.T) {
	tests := []struct {
		name     string
		program  Value
		sessions Value
		want     string
	}{
		{
			name:     "missing session",
			program:  Of(list{obj{"slots": obj{"9am": "Session s1"}}}),
			sessions: Of(obj{}),
			want:     "Program day 1 slot '9am' session 's1' does not exist in sessions.yml.",
		},
		{
			name:     "existing session",
			program:  Of(list{obj{"slots": obj{"9am": "Session s1"}}}),
			sessions: Of(obj{"s1": obj{}}),
		},
		{
			name:     "non-session activity",
			program:  Of(list{obj{"slots": obj{"12pm": "Lunch"}}}),
			sessions: Of(obj{}),
		},
		{
			name:     "prefix is case-insensitive",
			program:  Of(list{obj{"slots": obj{"9am": "SESSION s1"}}}),
			sessions: Of(obj{}),
			want:     "Program day 1 slot '9am' session 's1' does not exist in sessions.yml.",
		},
		{
			name:     "parallel sessions",
			program:  Of(list{obj{}, obj{"slots": obj{"2pm": "session  s1\ts2 "}}}),
			sessions: Of(obj{"s1": obj{}}),
			want:     "Program day 2 slot '2pm' session 's2' does not exist in sessions.yml.",
		},
		{
			name:     "bare session marker names nothing",
			program:  Of(list{obj{"slots": obj{"9am": "Sessions"}}}),
			sessions: Of(obj{}),
		},
		{
			name:     "empty slots",
			program:  Of(list{obj{"title": "Excursion", "slots": obj{}}}),
			sessions: Of(obj{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertViolation(t, AssertConsistentProgramSessions(tt.program, tt.sessions), ReferenceError, tt.want)
		})
	}
}

func TestReferencedSessions(t *testing.T) {
	tests := []struct {
		activity Value
		want     []string
	}{
		{String("Session a b"), []string{"a", "b"}},
		{String("session"), []string{}},
		{String("Lunch"), nil},
		{String("Poster session p1"), nil},
		{Int(5), nil},
		{Null(), nil},
	}

	for _, tt := range tests {
		got := ReferencedSessions(tt.activity)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ReferencedSessions(%s) = %v, want %v", tt.activity.Repr(), got, tt.want)
		}
	}
}

func TestNamesOf(t *testing.T) {
	if n := NamesOf(String("deck.pdf")); n.Variant != NamesText || n.Text != "deck.pdf" {
		t.Errorf("unexpected text variant: %+v", n)
	}
	if n := NamesOf(Seq(String("a"), String("b"))); n.Variant != NamesList || len(n.Members()) != 2 {
		t.Errorf("unexpected list variant: %+v", n)
	}
	if n := NamesOf(String("")); n.Variant != NamesNone || n.Members() != nil {
		t.Errorf("empty string should classify as none: %+v", n)
	}
	if n := NamesOf(Null()); n.Variant != NamesNone {
		t.Errorf("null should classify as none: %+v", n)
	}
}
