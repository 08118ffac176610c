package engine

import "strconv"

// Input tolerance policy: the dialogue never rejects a sloppy amount.
// Non-numeric or out-of-range requests clamp into [MinAmount, MaxAmount]
// instead of producing an error. This mirrors the bot's long-standing
// observed behavior and is asserted directly by tests; do not "fix" it
// into strict validation.

const (
	// MinAmount is the smallest batch a generation request may produce.
	MinAmount = 1
	// MaxAmount caps a single batch.
	MaxAmount = 10
)

// ClampAmount parses a raw amount argument and clamps it into the
// accepted range. Anything unparseable falls back to MinAmount.
func ClampAmount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return MinAmount
	}
	if n < MinAmount {
		return MinAmount
	}
	if n > MaxAmount {
		return MaxAmount
	}
	return n
}

// Locale pairs a user-facing country token with its generator locale code.
type Locale struct {
	Name string
	Code string
}

// SupportedLocales lists the selectable countries in menu order. The Name
// doubles as the button token, so an incoming button press is valid
// exactly when it matches one of these names.
var SupportedLocales = []Locale{
	{"🇺🇸 USA", "en_US"},
	{"🇬🇧 UK", "en_GB"},
	{"🇮🇳 India", "en_IN"},
	{"🇩🇪 Germany", "de_DE"},
	{"🇧🇩 Bangladesh", "bn_BD"},
}

// LocaleByName resolves a button token to its locale.
func LocaleByName(name string) (Locale, bool) {
	for _, loc := range SupportedLocales {
		if loc.Name == name {
			return loc, true
		}
	}
	return Locale{}, false
}

// Gender tokens accepted by the generation dialogue. The settings
// dialogue accepts male and female only.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderRandom = "random"
)

func validGender(token string, allowRandom bool) bool {
	switch token {
	case GenderMale, GenderFemale:
		return true
	case GenderRandom:
		return allowRandom
	}
	return false
}
