package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_Checks(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(cv *ConfigValidator)
		wantErr bool
	}{
		{"RequiredBlank", func(cv *ConfigValidator) { cv.Required("addr", "  ") }, true},
		{"RequiredSet", func(cv *ConfigValidator) { cv.Required("addr", ":8080") }, false},
		{"RangeIntOutside", func(cv *ConfigValidator) { cv.RangeInt("bins", 0, 1, 100) }, true},
		{"RangeIntEdge", func(cv *ConfigValidator) { cv.RangeInt("bins", 100, 1, 100) }, false},
		{"RangeFloatOutside", func(cv *ConfigValidator) { cv.RangeFloat("probability", 1.01, 0, 1) }, true},
		{"RangeFloatNaN", func(cv *ConfigValidator) { cv.RangeFloat("probability", math.NaN(), 0, 1) }, true},
		{"RangeFloatEdge", func(cv *ConfigValidator) { cv.RangeFloat("probability", 0, 0, 1) }, false},
		{"RangeDurationOutside", func(cv *ConfigValidator) { cv.RangeDuration("timeout", time.Hour, time.Second, time.Minute) }, true},
		{"PositiveZero", func(cv *ConfigValidator) { cv.Positive("max_passes", 0) }, true},
		{"CustomFails", func(cv *ConfigValidator) { cv.Custom("region", func() error { return errors.New("bad") }) }, true},
		{"WhenSkipped", func(cv *ConfigValidator) {
			cv.When(false, func(cv *ConfigValidator) { cv.Required("bucket", "") })
		}, false},
		{"WhenApplied", func(cv *ConfigValidator) {
			cv.When(true, func(cv *ConfigValidator) { cv.Required("bucket", "") })
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("config")
			tt.apply(cv)
			if err := cv.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_ValidateJoinsFieldErrors(t *testing.T) {
	sentinel := errors.New("unreachable bucket")

	err := NewConfigValidator("simulation").
		RangeFloat("probability", 2, 0, 1).
		RangeInt("steps", -5, 0, 100).
		Custom("bucket", func() error { return sentinel }).
		Validate()
	if err == nil {
		t.Fatal("expected an error")
	}

	for _, part := range []string{"simulation.probability", "simulation.steps", "simulation.bucket"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %s", err, part)
		}
	}
	if !errors.Is(err, sentinel) {
		t.Error("joined error should wrap the custom error")
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "simulation.probability" {
		t.Errorf("first field error = %+v", fe)
	}

	if err := NewConfigValidator("empty").Validate(); err != nil {
		t.Errorf("Validate() with no checks = %v", err)
	}
}
