package integrity

// Dataset names, as used for the data files and the keys of an event.
const (
	DatasetPeople   = "people"
	DatasetProgram  = "program"
	DatasetSessions = "sessions"
)

// Datasets lists the dataset names in load order.
var Datasets = []string{DatasetPeople, DatasetProgram, DatasetSessions}

// Event holds the three datasets of a conference program.
type Event struct {
	People   Value
	Sessions Value
	Program  Value
}

// EventOf builds an Event from a mapping keyed by dataset name. Missing
// datasets are null.
func EventOf(m Value) Event {
	people, _ := m.Lookup(DatasetPeople)
	sessions, _ := m.Lookup(DatasetSessions)
	program, _ := m.Lookup(DatasetProgram)
	return Event{People: people, Sessions: sessions, Program: program}
}

// Counts summarises the size of an event.
type Counts struct {
	People   int `json:"people"`
	Sessions int `json:"sessions"`
	Talks    int `json:"talks"`
	Days     int `json:"days"`
}

// Counts returns the number of records in each dataset.
func (e Event) Counts() Counts {
	c := Counts{
		People:   e.People.Len(),
		Sessions: e.Sessions.Len(),
		Days:     e.Program.Len(),
	}
	for _, s := range e.Sessions.Entries() {
		if talks, ok := s.Value.Field("talks"); ok {
			c.Talks += talks.Len()
		}
	}
	return c
}

// Check runs the structural checks of every dataset and then the
// consistency checks across datasets. It returns the first violation found
// as a *ValidationError, or nil when the event is valid.
func (s *Schema) Check(event Event) error {
	steps := []func() error{
		func() error { return s.ValidatePeople(event.People) },
		func() error { return s.ValidateSessions(event.Sessions) },
		func() error { return s.ValidateProgram(event.Program) },
		func() error { return AssertConsistencySessionsPersons(event.Sessions, event.People) },
		func() error { return AssertConsistentProgramSessions(event.Program, event.Sessions) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// IntegrityCheck checks event against the default schema. See Schema.Check.
func IntegrityCheck(event Event) error {
	return DefaultSchema().Check(event)
}
