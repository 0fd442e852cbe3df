package integrity

import "testing"

func TestTypeSpec_Matches(t *testing.T) {
	tests := []struct {
		name  string
		spec  TypeSpec
		value Value
		want  bool
	}{
		{"text accepts ascii", TypeText, String("Room A"), true},
		{"text accepts unicode", TypeText, String("Salé B"), true},
		{"str accepts ascii", TypeStr, String("alice@example.org"), true},
		{"str rejects unicode", TypeStr, String("jörg@example.org"), false},
		{"text rejects int", TypeText, Int(1), false},
		{"int accepts int", TypeInt, Int(1), true},
		{"int accepts bool", TypeInt, Bool(true), true},
		{"bool rejects int", TypeBool, Int(1), false},
		{"bool accepts bool", TypeBool, Bool(true), true},
		{"list accepts seq", TypeList, Seq(String("a")), true},
		{"dict accepts map", TypeDict, Map(E("a", 1)), true},
		{"dict rejects seq", TypeDict, Seq(), false},
		{"union text or int", TypeText | TypeInt, String("monday"), true},
		{"union rejects float", TypeText | TypeInt, Float(1.5), false},
		{"union list or str", TypeList | TypeStr, String("deck.pdf"), true},
		{"nothing matches null", TypeText | TypeStr | TypeInt | TypeBool | TypeList | TypeDict, Null(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Matches(tt.value); got != tt.want {
				t.Errorf("%s.Matches(%s) = %v, want %v", tt.spec, tt.value.Repr(), got, tt.want)
			}
		})
	}
}

func TestTypeSpec_String(t *testing.T) {
	tests := []struct {
		spec TypeSpec
		want string
	}{
		{TypeText, "text"},
		{TypeStr, "str"},
		{TypeText | TypeInt, "text or int"},
		{TypeList | TypeStr, "str or list"},
		{0, "nothing"},
	}

	for _, tt := range tests {
		if got := tt.spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseTypeSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    TypeSpec
		wantErr bool
	}{
		{in: "text", want: TypeText},
		{in: "str", want: TypeStr},
		{in: "text|int", want: TypeText | TypeInt},
		{in: "list or str", want: TypeList | TypeStr},
		{in: "string", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTypeSpec(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTypeSpec(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
