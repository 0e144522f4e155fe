package validators

import "testing"

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	if NormalizePhone("   ") != nil {
		t.Fatal("blank phone should be nil")
	}
	if p := NormalizePhone(" +1 555 "); p == nil || *p != "+1 555" {
		t.Fatalf("got %v", p)
	}
}

func TestIsEmailDomainValidRejectsMissingDomain(t *testing.T) {
	for _, email := range []string{"no-at-sign", "trailing@"} {
		if IsEmailDomainValid(email) {
			t.Fatalf("%q accepted", email)
		}
	}
}
