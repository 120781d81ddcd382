package validation

import (
	"testing"

	"github.com/kbukum/scribe/errors"
)

type sample struct {
	BaseURL  string `json:"base_url" validate:"required,url"`
	Category string `json:"category" validate:"oneof=AUDIO VIDEO"`
}

func TestValidateOK(t *testing.T) {
	s := sample{BaseURL: "http://localhost:8080", Category: "AUDIO"}
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFailure(t *testing.T) {
	s := sample{Category: "TEXT"}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}

	appErr := err.(*errors.AppError)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details)
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"BaseURL", "base_u_r_l"},
		{"PollInterval", "poll_interval"},
		{"simple", "simple"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := toSnakeCase(tc.in); got != tc.want {
				t.Errorf("toSnakeCase(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
