package db

import "testing"

func TestNullable(t *testing.T) {
	if got := nullable(""); got != nil {
		t.Errorf("nullable(\"\") = %q, want nil", *got)
	}
	if got := nullable("   "); got != nil {
		t.Errorf("nullable(whitespace) = %q, want nil", *got)
	}
	if got := nullable("541511"); got == nil || *got != "541511" {
		t.Errorf("nullable(\"541511\") = %v, want pointer to value", got)
	}
}
