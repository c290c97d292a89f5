package validator

import "testing"

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		username  string
		display   string
		password  string
		wantField string
	}{
		{"valid", "a@example.com", "user1", "User One", "Password1", ""},
		{"missing email", "", "user1", "User One", "Password1", "email"},
		{"bad email", "not-an-email", "user1", "User One", "Password1", "email"},
		{"short username", "a@example.com", "ab", "User One", "Password1", "username"},
		{"username chars", "a@example.com", "user one!", "User One", "Password1", "username"},
		{"missing display name", "a@example.com", "user1", "", "Password1", "display_name"},
		{"short password", "a@example.com", "user1", "User One", "Pw1", "password"},
		{"weak password", "a@example.com", "user1", "User One", "password", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.email, tt.username, tt.display, tt.password)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("no error for %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("a@example.com", "pw"); errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs := ValidateLogin("", ""); len(errs) != 2 {
		t.Fatalf("errors = %v, want email and password", errs)
	}
}
