package validators

import (
	"testing"

	"carelink_backend_go/models"
)

func TestValidateContact(t *testing.T) {
	cases := []struct {
		contact string
		wantOK  bool
	}{
		{"9876543210", true},         // 10 digits
		{"987654321012345", true},    // 15 digits
		{"12345", false},             // too short
		{"12345678901234567", false}, // too long
		{"98765abc10", false},
		{"", false},
		{"98765 43210", false},
	}
	for _, tc := range cases {
		if msg := ValidateContact(tc.contact); (msg == "") != tc.wantOK {
			t.Errorf("ValidateContact(%q) = %q, wantOK=%v", tc.contact, msg, tc.wantOK)
		}
	}
}

func TestValidateAge(t *testing.T) {
	cases := []struct {
		age    int
		wantOK bool
	}{
		{0, true},
		{150, true},
		{-1, false},
		{151, false},
	}
	for _, tc := range cases {
		if msg := ValidateAge(tc.age); (msg == "") != tc.wantOK {
			t.Errorf("ValidateAge(%d) = %q, wantOK=%v", tc.age, msg, tc.wantOK)
		}
	}
}

func TestValidateExperienceYears(t *testing.T) {
	cases := []struct {
		years  int
		wantOK bool
	}{
		{0, true},
		{70, true},
		{-1, false},
		{71, false},
	}
	for _, tc := range cases {
		if msg := ValidateExperienceYears(tc.years); (msg == "") != tc.wantOK {
			t.Errorf("ValidateExperienceYears(%d) = %q, wantOK=%v", tc.years, msg, tc.wantOK)
		}
	}
}

func TestValidateSpecialization(t *testing.T) {
	for spec := range models.SpecializationDisplay {
		if msg := ValidateSpecialization(spec); msg != "" {
			t.Errorf("ValidateSpecialization(%q) = %q, want ok", spec, msg)
		}
	}
	for _, spec := range []string{"", "ASTROLOGY", "cardiology"} {
		if msg := ValidateSpecialization(spec); msg == "" {
			t.Errorf("ValidateSpecialization(%q) passed", spec)
		}
	}
}

func TestValidateGender(t *testing.T) {
	for gender := range models.GenderDisplay {
		if msg := ValidateGender(gender); msg != "" {
			t.Errorf("ValidateGender(%q) = %q, want ok", gender, msg)
		}
	}
	if msg := ValidateGender("X"); msg == "" {
		t.Error(`ValidateGender("X") passed`)
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		wantOK   bool
	}{
		{"sturdy-pass-1", true},
		{"short1", false},
		{"1234567890", false}, // entirely numeric
		{"", false},
	}
	for _, tc := range cases {
		if msg := ValidatePassword(tc.password); (msg == "") != tc.wantOK {
			t.Errorf("ValidatePassword(%q) = %q, wantOK=%v", tc.password, msg, tc.wantOK)
		}
	}
}

func TestErrorsKeepFirstMessage(t *testing.T) {
	errs := Errors{}
	errs.Add("contact", "first")
	errs.Add("contact", "second")
	if errs["contact"] != "first" {
		t.Errorf("contact = %q, want first message kept", errs["contact"])
	}
	if !errs.HasErrors() {
		t.Error("HasErrors() = false")
	}
}
