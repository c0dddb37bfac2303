package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"kid@example.com", "parent.name+tag@school.co.uk", "a@b.io"}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "no-at-sign", "@missing.local", "user@", "user@domain", "spaces in@mail.com"}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestCustomRules(t *testing.T) {
	v := validator.New()
	if err := RegisterCustomRules(v); err != nil {
		t.Fatalf("register error: %v", err)
	}

	type payload struct {
		Role     string `validate:"userrole"`
		AgeGroup string `validate:"agegroup"`
	}

	if err := v.Struct(payload{Role: "student", AgeGroup: "6-11"}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := v.Struct(payload{Role: "admin", AgeGroup: "6-11"}); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
	if err := v.Struct(payload{Role: "parent", AgeGroup: "18-25"}); err == nil {
		t.Fatalf("expected unknown age group to fail")
	}
}
