package export

import (
	"testing"
)

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		quoting Quoting
		want    string
	}{
		{name: "delimiter and quotes", cell: `Apple, "Red"`, want: `"Apple, ""Red"""`},
		{name: "plain", cell: "Applejack", want: "Applejack"},
		{name: "quote only", cell: `say "hi"`, want: `"say ""hi"""`},
		{name: "line break", cell: "two\nlines", want: "\"two\nlines\""},
		{name: "carriage return", cell: "two\rlines", want: "\"two\rlines\""},
		{name: "leading space stays bare", cell: " Ponyville", want: " Ponyville"},
		{name: "empty", cell: "", want: ""},
		{name: "quote all", cell: "Applejack", quoting: QuoteAll, want: `"Applejack"`},
		{name: "non numeric text", cell: "Applejack", quoting: QuoteNonNumeric, want: `"Applejack"`},
		{name: "non numeric number", cell: "4", quoting: QuoteNonNumeric, want: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect := DefaultDialect
			dialect.Quoting = tt.quoting
			if got := EscapeCell(tt.cell, dialect); got != tt.want {
				t.Errorf("EscapeCell(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format([][]string{{"ID", "Name"}, {"Shop_Apple_Cart", `Apple, "Red"`}}, DefaultDialect)
	want := "ID,Name\nShop_Apple_Cart,\"Apple, \"\"Red\"\"\""
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	semicolon := Dialect{Delimiter: ";", Quote: `"`, LineTerminator: "\r\n"}
	if got := Format([][]string{{"a;b", "c"}, {"d", "e"}}, semicolon); got != "\"a;b\";c\r\nd;e" {
		t.Fatalf("unexpected custom dialect output %q", got)
	}

	if got := Format(nil, DefaultDialect); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
