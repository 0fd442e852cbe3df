package integrity

import (
	"fmt"
	"strings"
)

// sessionPrefix marks a slot activity that references sessions, e.g.
// "Session s1 s2".
const sessionPrefix = "session"

// AssertConsistencySessionsPersons checks that every chair, speaker and panel
// member referenced by a session exists in the people registry.
func AssertConsistencySessionsPersons(sessions, persons Value) error {
	for _, e := range sessions.Entries() {
		sessionID := e.Key.Repr()
		session := e.Value

		if chair, ok := session.Field("chair"); ok && !hasKey(persons, chair) {
			return referenceError("Session %s chair %s does not exist in persons.yml.", sessionID, chair.Repr())
		}

		talks, _ := session.Field("talks")
		for i, talk := range talks.Items() {
			if speaker, ok := talk.Field("speaker"); ok && !hasKey(persons, speaker) {
				return referenceError("Session %s talk %d: Speaker %s does not exist in persons register.",
					sessionID, i+1, speaker.Repr())
			}

			panel, _ := talk.Field("panel")
			for j, member := range NamesOf(panel).Members() {
				if !hasKey(persons, member) {
					return referenceError("Session %s talk %d panel member %d %s does not exist in persons register.",
						sessionID, i+1, j+1, member.Repr())
				}
			}
		}
	}
	return nil
}

// AssertConsistentProgramSessions checks that every session named by a
// program slot exists. Slots whose activity does not start with "session"
// (case-insensitive) are not references and are skipped.
func AssertConsistentProgramSessions(program, sessions Value) error {
	for i, day := range program.Items() {
		if err := assertConsistentDayProgramSessions(fmt.Sprintf("Program day %d", i+1), day, sessions); err != nil {
			return err
		}
	}
	return nil
}

func assertConsistentDayProgramSessions(label string, day, sessions Value) error {
	slots, _ := day.Field("slots")
	for _, e := range slots.Entries() {
		for _, id := range ReferencedSessions(e.Value) {
			if !sessions.Has(id) {
				return referenceError("%s slot %s session %s does not exist in sessions.yml.",
					label, e.Key.Repr(), quote(id))
			}
		}
	}
	return nil
}

// ReferencedSessions returns the session ids named by a slot activity. The
// first word is the "session" marker itself and is not an id.
func ReferencedSessions(activity Value) []string {
	text, ok := activity.Str()
	if !ok || !strings.HasPrefix(strings.ToLower(text), sessionPrefix) {
		return nil
	}
	return strings.Fields(text)[1:]
}

func hasKey(m Value, key Value) bool {
	s, ok := key.Str()
	if !ok {
		return false
	}
	return m.Has(s)
}
