package validator

import (
	"errors"
	"strings"
	"testing"

	"anoa.com/fitquest/pkg/apperror"
)

type awardInput struct {
	Amount   int    `validate:"gt=0"`
	Activity string `validate:"required,max=50"`
}

func TestStruct(t *testing.T) {
	if err := Struct(awardInput{Amount: 10, Activity: "workout_logged"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	err := Struct(awardInput{Amount: 0})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Amount must be greater than 0") {
		t.Errorf("missing amount message in %q", msg)
	}
	if !strings.Contains(msg, "Activity is required") {
		t.Errorf("missing activity message in %q", msg)
	}
}
