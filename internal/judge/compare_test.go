package judge

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"exact", "6\n", "6\n", true},
		{"missing trailing newline", "6\n", "6", true},
		{"extra trailing newline", "6", "6\n\n\n", true},
		{"trailing spaces", "1 2 3\n4\n", "1 2 3   \n4\t\n", true},
		{"crlf", "a\nb\n", "a\r\nb\r\n", true},
		{"both empty", "", "", true},
		{"empty vs blank lines", "", "\n \n", true},
		{"different value", "10\n", "11\n", false},
		{"leading space matters", "1\n", " 1\n", false},
		{"inner blank line matters", "1\n\n2\n", "1\n2\n", false},
		{"empty vs output", "", "0\n", false},
		{"no numeric tolerance", "0.5\n", "0.50\n", false},
		{"invalid utf8", "\xff\xfe\n", "\xff\xfd\n", false},
		{"invalid utf8 equal", "\xff\n", "\xff", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare([]byte(tt.expected), []byte(tt.actual)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestCompare_DoesNotMutate(t *testing.T) {
	expected := []byte("1  \n")
	actual := []byte("1\n")
	Compare(expected, actual)
	if string(expected) != "1  \n" {
		t.Errorf("expected mutated to %q", expected)
	}
}

func TestDiff(t *testing.T) {
	line, want, got, ok := Diff([]byte("1\n2\n3\n"), []byte("1\n2\n4\n"))
	if !ok || line != 3 || want != "3" || got != "4" {
		t.Errorf("Diff = (%d, %q, %q, %v), want (3, \"3\", \"4\", true)", line, want, got, ok)
	}

	line, want, got, ok = Diff([]byte("1\n2\n"), []byte("1\n"))
	if !ok || line != 2 || want != "2" || got != "" {
		t.Errorf("Diff short output = (%d, %q, %q, %v)", line, want, got, ok)
	}

	if _, _, _, ok := Diff([]byte("x \n"), []byte("x")); ok {
		t.Error("Diff reported a difference for equal outputs")
	}
}
