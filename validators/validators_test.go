package validators

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"sean@example.com", true},
		{"sean.murphy@shop.ie", true},
		{"seanexample.com", false},
		{"sean@example", false},
		{"sean @example.com", false},
		{"sean@exa mple.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("12345678") {
		t.Error("8 characters should be valid")
	}
	if Password("1234567") {
		t.Error("7 characters should be invalid")
	}
}

func TestConfirmPassword(t *testing.T) {
	if !ConfirmPassword("secret123", "secret123") {
		t.Error("matching passwords should validate")
	}
	if ConfirmPassword("secret123", "secret124") {
		t.Error("mismatched passwords should not validate")
	}
}

func TestNames(t *testing.T) {
	if !FirstName("Aoife") || !LastName("Nolan") {
		t.Error("plain letter names should be valid")
	}
	if FirstName("") || LastName("") {
		t.Error("empty names should be invalid")
	}
	if FirstName("Sean1") || LastName("O'Brien") {
		t.Error("non-letter characters should be invalid")
	}
	long31 := "abcdefghijklmnopqrstuvwxyzabcde" // 31 chars
	if FirstName(long31) {
		t.Error("first name over 30 chars should be invalid")
	}
	if !LastName(long31) {
		t.Error("last name allows up to 40 chars")
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0851234567", true},
		{"+353851234567", true},
		{"0831234567", true},
		{"0891234567", true},
		{"0712345678", false}, // not a mobile prefix
		{"0821234567", false}, // 82 not in range
		{"085123456", false},  // too short
		{"08512345678", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Phone(c.in); got != c.want {
			t.Errorf("Phone(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEircode(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"D02X285", true},
		{"D02 X285", true},
		{"  D02X285  ", true}, // trimmed before check
		{"T12AB34", true},
		{"1234567", false},
		{"DD2X285", false},
		{"D02X28", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Eircode(c.in); got != c.want {
			t.Errorf("Eircode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
