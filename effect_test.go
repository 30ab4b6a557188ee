package sfxmux

import (
	"errors"
	"testing"
)

func TestEffectNamesRoundTrip(t *testing.T) {
	effects := Effects()
	if len(effects) != 7 {
		t.Fatalf("effects = %d, want 7", len(effects))
	}
	for i, e := range effects {
		if int(e) != i {
			t.Errorf("effect %d out of order: %v", i, e)
		}
		got, err := ParseEffect(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEffect(%q) = %v, %v", e.String(), got, err)
		}
	}
}

func TestParseEffectSpellings(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Effect
	}{
		{"click", EffectClick},
		{" Click ", EffectClick},
		{"USER_OPTION", EffectUserOption},
		{"new-spore", EffectNewSpore},
		{"die_minion", EffectDieMinion},
	} {
		got, err := ParseEffect(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseEffect(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseEffect("explosion"); !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("unknown effect err = %v", err)
	}
}

func TestInvalidEffectString(t *testing.T) {
	if got := Effect(99).String(); got != "Effect(99)" {
		t.Errorf("String = %q", got)
	}
}
