package sfxmux

import (
	"fmt"
	"strconv"
	"strings"
)

// Effect names one entry of the built-in catalog.
type Effect int

const (
	EffectStartup Effect = iota
	EffectClick
	EffectUserOption
	EffectFertilised
	EffectNewSpore
	EffectNewMinion
	EffectDieMinion

	effectCount
)

var effectNames = [effectCount]string{
	EffectStartup:    "startup",
	EffectClick:      "click",
	EffectUserOption: "user-option",
	EffectFertilised: "fertilised",
	EffectNewSpore:   "new-spore",
	EffectNewMinion:  "new-minion",
	EffectDieMinion:  "die-minion",
}

func (e Effect) valid() bool {
	return e >= 0 && e < effectCount
}

func (e Effect) String() string {
	if !e.valid() {
		return "Effect(" + strconv.Itoa(int(e)) + ")"
	}
	return effectNames[e]
}

// ParseEffect accepts the names printed by String, case-insensitively, with
// either dashes or underscores.
func ParseEffect(name string) (Effect, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for e, n := range effectNames {
		if n == key {
			return Effect(e), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// Effects lists every built-in effect in catalog order.
func Effects() []Effect {
	out := make([]Effect, effectCount)
	for i := range out {
		out[i] = Effect(i)
	}
	return out
}
