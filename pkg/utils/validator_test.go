package utils

import "testing"

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"first_name" validate:"required"`
	Stars int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sample{Email: "nope", Stars: 9})

	if errs["email"] != "Invalid email format" {
		t.Errorf("email = %q", errs["email"])
	}
	if errs["first_name"] != "This field is required" {
		t.Errorf("first_name = %q", errs["first_name"])
	}
	if errs["rating"] != "Maximum is 5" {
		t.Errorf("rating = %q", errs["rating"])
	}
	if !HasMissingFields(errs) {
		t.Error("HasMissingFields() = false, want true")
	}

	if errs := ValidateStruct(sample{Email: "a@b.co", Name: "A"}); errs != nil {
		t.Errorf("valid struct errors = %v", errs)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	if got != "a: one; b: two" {
		t.Errorf("FormatValidationErrors() = %q", got)
	}
}
