package validation

import (
	"testing"

	"github.com/kbukum/voicebridge/errors"
)

type sample struct {
	Source string  `json:"source" validate:"required"`
	Device string  `json:"device" validate:"oneof=auto cpu gpu"`
	Gain   float64 `json:"gain" validate:"gte=0,lte=1"`
}

func TestValidateOK(t *testing.T) {
	s := sample{Source: "pt-BR", Device: "auto", Gain: 0.5}
	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateFailure(t *testing.T) {
	s := sample{Device: "tpu", Gain: 2}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidRequest {
		t.Errorf("expected INVALID_REQUEST, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details)
	}
	if len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(fields), fields)
	}
}

func TestValidateUsesJSONTagNames(t *testing.T) {
	type payload struct {
		AudioData string `json:"audio_data" validate:"required"`
	}
	err := Validate(payload{})
	appErr, _ := errors.AsAppError(err)
	fields := appErr.Details["fields"].([]FieldError)
	if fields[0].Field != "audio_data" {
		t.Errorf("expected json tag name, got %q", fields[0].Field)
	}
}
