package cards

import (
	"math"
	"strconv"
	"strings"

	"github.com/mcdev12/planpoker/go/internal/models"
)

// Special cards carry no numeric meaning.
const (
	Unknown  = "?"
	Infinity = "∞"
	Coffee   = "☕"
)

const (
	MinCustomCards = 2
	MaxCustomCards = 20
)

var special = []string{Unknown, Infinity, Coffee}

var presets = map[models.CardSet][]string{
	models.CardSetFibonacci: {"0", "1", "2", "3", "5", "8", "13", "21", "34", Unknown, Infinity, Coffee},
	models.CardSetTShirt:    {"XS", "S", "M", "L", "XL", "XXL", Unknown, Coffee},
	models.CardSetPowerOf2:  {"1", "2", "4", "8", "16", "32", "64", Unknown, Infinity, Coffee},
}

// Special returns the special card tokens in display order.
func Special() []string {
	return append([]string(nil), special...)
}

// ForRoom returns the selectable cards for a room's card set.
// Custom sets with no cards and unknown identifiers fall back to fibonacci.
func ForRoom(set models.CardSet, custom []string) []string {
	if set == models.CardSetCustom && len(custom) > 0 {
		out := make([]string, 0, len(custom)+len(special))
		out = append(out, custom...)
		return append(out, special...)
	}
	preset, ok := presets[set]
	if !ok {
		preset = presets[models.CardSetFibonacci]
	}
	return append([]string(nil), preset...)
}

// ForSettings is ForRoom applied to a room's settings.
func ForSettings(s models.RoomSettings) []string {
	return ForRoom(s.CardSet, s.CustomCards)
}

// IsKnownSet reports whether set names a deck a room may be configured with.
func IsKnownSet(set models.CardSet) bool {
	if set == models.CardSetCustom {
		return true
	}
	_, ok := presets[set]
	return ok
}

// IsSpecial reports whether value is one of the special cards.
func IsSpecial(value string) bool {
	for _, s := range special {
		if value == s {
			return true
		}
	}
	return false
}

// ParseNumber parses a card as a number. Special cards never parse.
func ParseNumber(value string) (float64, bool) {
	if IsSpecial(value) {
		return 0, false
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether value takes part in numeric aggregation.
func IsNumeric(value string) bool {
	_, ok := ParseNumber(value)
	return ok
}

// ParseCustom splits a comma separated card list, trimming blanks.
func ParseCustom(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateCustom checks a custom deck: between 2 and 20 cards, all numeric.
func ValidateCustom(custom []string) error {
	if len(custom) < MinCustomCards || len(custom) > MaxCustomCards {
		return models.ErrCustomCardsInvalid
	}
	for _, c := range custom {
		if !IsNumeric(c) {
			return models.ErrCustomCardsInvalid
		}
	}
	return nil
}
