package collectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Pokemon", RemoveDiacritics("Pokémon"))
	assert.Equal(t, "Labubu", RemoveDiacritics("Labubu"))
	assert.Equal(t, "creme brulee", RemoveDiacritics("crème brûlée"))
	assert.Equal(t, "", RemoveDiacritics(""))
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blind Box", "blind_box"},
		{"blind-box", "blind_box"},
		{"BLIND  BOX", "blind_box"},
		{"  booster ", "booster"},
		{"Théme Deck", "theme_deck"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Limited ", "sound", "LIMITED", "", "Pokémon", "pokemon"})
	assert.Equal(t, []string{"limited", "sound", "pokemon"}, got)

	assert.Empty(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags([]string{"", "  "}))
}
