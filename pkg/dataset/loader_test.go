package dataset

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ahm16/progcheck/pkg/integrity"
)

const (
	testPeople = `
alice:
  name: Alice
  email: alice@example.org
  shuttle: true
bob:
  name: Bob
  arrival: 2
`
	testSessions = `
opening:
  chair: alice
  title: Opening
  talks:
    - speaker: bob
      title: Welcome
      slides: welcome.pdf
`
	testProgram = `
- title: Monday
  slots:
    "09:00": Session opening
    "12:00": Lunch
`
)

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, "/site/_data/"+name, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return fsys
}

func TestLoader_Load(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"people.yml":   testPeople,
		"sessions.yml": testSessions,
		"program.yml":  testProgram,
	})
	loader := NewLoader(fsys, zerolog.Nop())

	event, err := loader.Load("/site/_data")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if event.People.Len() != 2 || event.Sessions.Len() != 1 || event.Program.Len() != 1 {
		t.Errorf("unexpected sizes: people=%d sessions=%d program=%d",
			event.People.Len(), event.Sessions.Len(), event.Program.Len())
	}

	if err := integrity.IntegrityCheck(event); err != nil {
		t.Errorf("unexpected violation: %v", err)
	}
}

func TestLoader_MissingDataset(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"people.yml": testPeople,
	})
	loader := NewLoader(fsys, zerolog.Nop())

	_, err := loader.Load("/site/_data")
	if err == nil {
		t.Fatal("expected an error for missing datasets")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if le.Dataset != "program" {
		t.Errorf("expected the program dataset to fail first, got %s", le.Dataset)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist cause, got %v", le.Err)
	}
	if integrity.IsValidationError(err) {
		t.Error("load failures must not be validation errors")
	}
}

func TestLoader_MalformedYAML(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"people.yml":   "alice: [unclosed",
		"sessions.yml": testSessions,
		"program.yml":  testProgram,
	})
	loader := NewLoader(fsys, zerolog.Nop())

	_, err := loader.Load("/site/_data")
	if !IsLoadError(err) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "people") {
		t.Errorf("error should name the dataset: %v", err)
	}
}

func TestLoader_EmptyDatasetIsNull(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"people.yml": ""})
	loader := NewLoader(fsys, zerolog.Nop())

	v, err := loader.LoadDataset("/site/_data", "people")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsNull() {
		t.Errorf("expected null, got %s", v.Repr())
	}
}

func TestLoader_RejectsUnsafeDocuments(t *testing.T) {
	tests := []struct {
		name   string
		people string
	}{
		{"recursive alias", "alice: &a\n  name: *a\n"},
		{"duplicate person", "alice:\n  area: x\nalice:\n  name: Alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTestFs(t, map[string]string{
				"people.yml":   tt.people,
				"sessions.yml": testSessions,
				"program.yml":  testProgram,
			})

			_, err := NewLoader(fsys, zerolog.Nop()).Load("/site/_data")

			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if le.Dataset != "people" {
				t.Errorf("expected the people dataset to fail, got %s", le.Dataset)
			}
			if integrity.IsValidationError(err) {
				t.Error("load failures must not be validation errors")
			}
		})
	}
}
