package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/planpoker/go/internal/models"
)

func TestForRoom(t *testing.T) {
	fibonacci := []string{"0", "1", "2", "3", "5", "8", "13", "21", "34", "?", "∞", "☕"}

	tests := []struct {
		name   string
		set    models.CardSet
		custom []string
		want   []string
	}{
		{"fibonacci", models.CardSetFibonacci, nil, fibonacci},
		{"tshirt has no infinity", models.CardSetTShirt, nil, []string{"XS", "S", "M", "L", "XL", "XXL", "?", "☕"}},
		{"power of two", models.CardSetPowerOf2, nil, []string{"1", "2", "4", "8", "16", "32", "64", "?", "∞", "☕"}},
		{"custom appends specials", models.CardSetCustom, []string{"1", "2", "3"}, []string{"1", "2", "3", "?", "∞", "☕"}},
		{"custom without cards", models.CardSetCustom, nil, fibonacci},
		{"custom with empty list", models.CardSetCustom, []string{}, fibonacci},
		{"unknown set", models.CardSet("bogus"), nil, fibonacci},
		{"custom cards ignored for presets", models.CardSetPowerOf2, []string{"7"}, []string{"1", "2", "4", "8", "16", "32", "64", "?", "∞", "☕"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForRoom(tt.set, tt.custom))
		})
	}
}

func TestForRoomReturnsCopy(t *testing.T) {
	first := ForRoom(models.CardSetFibonacci, nil)
	first[0] = "mutated"

	assert.Equal(t, "0", ForRoom(models.CardSetFibonacci, nil)[0])
}

func TestParseNumber(t *testing.T) {
	for _, v := range []string{"0", "13", "0.5", " 8 "} {
		_, ok := ParseNumber(v)
		assert.True(t, ok, v)
	}
	for _, v := range []string{"?", "∞", "☕", "XL", "", "NaN"} {
		_, ok := ParseNumber(v)
		assert.False(t, ok, v)
	}
}

func TestValidateCustom(t *testing.T) {
	assert.NoError(t, ValidateCustom([]string{"1", "2"}))
	assert.NoError(t, ValidateCustom(ParseCustom("1, 2, 3,, 5 ")))

	assert.ErrorIs(t, ValidateCustom([]string{"1"}), models.ErrCustomCardsInvalid)
	assert.ErrorIs(t, ValidateCustom([]string{"1", "two"}), models.ErrCustomCardsInvalid)

	tooMany := make([]string, MaxCustomCards+1)
	for i := range tooMany {
		tooMany[i] = "1"
	}
	assert.ErrorIs(t, ValidateCustom(tooMany), models.ErrCustomCardsInvalid)
}

func TestIsKnownSet(t *testing.T) {
	assert.True(t, IsKnownSet(models.CardSetCustom))
	assert.True(t, IsKnownSet(models.CardSetTShirt))
	assert.False(t, IsKnownSet("bogus"))
}
