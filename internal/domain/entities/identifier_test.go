package entities

import "testing"

func TestIdentifierFormatting(t *testing.T) {
	n := FormatIdentifier(QuoteNumberPrefix, 2026, 7)
	if n != "DEVIS-2026-00007" {
		t.Fatalf("unexpected identifier %q", n)
	}
	if got := ScopeOfIdentifier(n); got != IdentifierScope(QuoteNumberPrefix, 2026) {
		t.Fatalf("unexpected scope %q", got)
	}
	if got := ScopeOfIdentifier("broken"); got != "broken" {
		t.Fatalf("unexpected scope for malformed input %q", got)
	}
}
