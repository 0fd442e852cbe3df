// Package integrity validates the datasets of a conference program: the
// people registry, the sessions with their talks, and the day-by-day
// program.
//
// # Checks
//
// Structural checks verify key types, declared field types and required
// fields of each dataset. Consistency checks then verify references across
// datasets: session chairs, talk speakers and panel members must exist in
// the people registry, and sessions named by program slots must exist in
// the sessions dataset.
//
// Checking stops at the first violation, which is returned as a
// *ValidationError. Any other error type signals an operational failure and
// never comes from this package.
//
// # Leniency
//
// A field that is absent or explicitly empty (null, "", false, 0, empty list
// or mapping) counts as not provided and is never a type violation. The only
// required field is a person's name.
//
// # Type tiers
//
// String fields come in two tiers. TypeText accepts any string and is used
// for titles, names and other prose. TypeStr accepts only ASCII strings and
// is used for ids and addresses. The assignment lives in the Schema table and
// can be changed per field.
//
// # Usage
//
//	event := integrity.Event{People: people, Sessions: sessions, Program: program}
//	if err := integrity.IntegrityCheck(event); err != nil {
//	    if ve, ok := integrity.AsValidationError(err); ok {
//	        fmt.Println(ve.Line())
//	    }
//	}
package integrity
