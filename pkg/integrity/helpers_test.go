package integrity

import "testing"

// assertViolation fails unless err is a violation of the given kind with
// exactly the given message. An empty message expects no violation.
func assertViolation(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()

	if msg == "" {
		if err != nil {
			t.Fatalf("unexpected violation: %v", err)
		}
		return
	}

	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected %s violation %q, got %v", kind, msg, err)
	}
	if ve.Kind != kind {
		t.Errorf("violation kind = %s, want %s", ve.Kind, kind)
	}
	if got := ve.Error(); got != msg {
		t.Errorf("violation message:\n got: %s\nwant: %s", got, msg)
	}
}

type obj = map[string]any
type list = []any
