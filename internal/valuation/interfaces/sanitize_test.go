package interfaces

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Rua do Ouro — Lisboa", "Rua do Ouro - Lisboa"},
		{"3.500 €/m2", "3.500 EUR/m2"},
		{"1º Esq.", "1o. Esq."},
		{"Avaliação", "Avaliação"}, // Latin-1 accents pass through
		{"smart “quotes”", `smart "quotes"`},
		{"snowman ☃ here", "snowman ? here"},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"bell\x07char", "bellchar"},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.expected {
			t.Fatalf("sanitize %q: expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestSanitizeText_NeverFails(t *testing.T) {
	// Arbitrary non-encodable input still yields a usable string.
	input := "\U0001F600\U0001F3E0 valor €"
	got := SanitizeText(input)
	if got != "?? valor EUR" {
		t.Fatalf("expected substituted output, got %q", got)
	}
}
