package validation

import (
	"strings"
	"testing"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"username ok", IsValidUsername, "jane.doe_1", true},
		{"username short", IsValidUsername, "ab", false},
		{"username spaces", IsValidUsername, "jane doe", false},
		{"email ok", IsValidEmail, "Jane@College.edu", true},
		{"email missing at", IsValidEmail, "jane.college.edu", false},
		{"password ok", IsValidPassword, "pass1234", true},
		{"password too long", IsValidPassword, strings.Repeat("x", 73), false},
		{"password empty", IsValidPassword, "", false},
		{"name blank", IsValidName, "   ", false},
		{"name ok", IsValidName, "Ada", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionalStringValidation(t *testing.T) {
	if !NewStringValidation("").WithRequired(false).WithMinLength(3).Validate() {
		t.Fatalf("empty optional value should pass")
	}
	if NewStringValidation("ab").WithRequired(false).WithMinLength(3).Validate() {
		t.Fatalf("short optional value should fail")
	}
}
