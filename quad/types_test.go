package quad

import (
	"errors"
	"testing"
)

func TestRuleRoundTrip(t *testing.T) {
	for r := Trapezoidal; r <= DoubleExponential; r++ {
		got, err := ParseRule(r.String())
		if err != nil {
			t.Fatalf("%s: %v", r, err)
		}
		if got != r {
			t.Errorf("round trip of %s gave %s", r, got)
		}
	}
	if _, err := ParseRule("simpson38"); err == nil {
		t.Error("expected an error for an unknown rule name")
	}
	if s := Rule(99).String(); s != "Rule(99)" {
		t.Errorf("unexpected fallback name %q", s)
	}
}

func TestStrategyRoundTrip(t *testing.T) {
	for s := Romberg; s <= Simpson; s++ {
		got, err := ParseStrategy(s.String())
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip of %s gave %s", s, got)
		}
	}
	if _, err := ParseStrategy("gaussian"); err == nil {
		t.Error("expected an error for an unknown strategy name")
	}
}

func TestSettingsDefaults(t *testing.T) {
	s := Settings{}.withDefaults()
	if s.Eps != DefaultEps || s.MaxSteps != DefaultMaxSteps ||
		s.MinSteps != DefaultMinSteps || s.RombergDegree != DefaultRombergDegree {
		t.Errorf("zero settings did not fill in defaults: %+v", s)
	}
	if s.Rule != Trapezoidal || s.Strategy != Romberg {
		t.Errorf("expected trapezoidal/romberg, got %s/%s", s.Rule, s.Strategy)
	}
	if err := DefaultSettings().validate(); err != nil {
		t.Errorf("default settings failed validation: %v", err)
	}
}

func TestSettingsValidation(t *testing.T) {
	cases := []Settings{
		{Rule: Rule(-1)},
		{Rule: DoubleExponential + 1},
		{Strategy: Simpson + 1},
		{Eps: -1e-8},
		{MinSteps: 1},
		{MinSteps: 10, MaxSteps: 4},
		{RombergDegree: -3},
	}
	for _, c := range cases {
		if err := c.withDefaults().validate(); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("%+v: expected ErrInvalidSettings, got %v", c, err)
		}
	}
}
