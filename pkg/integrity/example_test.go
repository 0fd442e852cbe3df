package integrity_test

import (
	"fmt"

	"github.com/ahm16/progcheck/pkg/integrity"
)

func ExampleIntegrityCheck() {
	event := integrity.Event{
		People: integrity.Of(map[string]any{
			"alice": map[string]any{"name": "Alice"},
		}),
		Sessions: integrity.Of(map[string]any{
			"opening": map[string]any{"chair": "alice"},
		}),
		Program: integrity.Of([]any{
			map[string]any{"slots": map[string]any{"09:00": "Session opening closing"}},
		}),
	}

	if err := integrity.IntegrityCheck(event); err != nil {
		if ve, ok := integrity.AsValidationError(err); ok {
			fmt.Println(ve.Kind)
			fmt.Println(ve.Line())
		}
	}
	// Output:
	// reference
	// Program day 1 slot '09:00' session 'closing' does not exist in sessions.yml.
}

func ExampleNamesOf() {
	for _, v := range []integrity.Value{
		integrity.String("slides.pdf"),
		integrity.Of([]string{"part1.pdf", "part2.pdf"}),
	} {
		switch n := integrity.NamesOf(v); n.Variant {
		case integrity.NamesText:
			fmt.Println("single:", n.Text)
		case integrity.NamesList:
			fmt.Println("list of", len(n.List))
		}
	}
	// Output:
	// single: slides.pdf
	// list of 2
}
