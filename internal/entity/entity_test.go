package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Bag of Holding":  "bag-of-holding",
		"Knight's Shield": "knight-s-shield",
		"  Ash Totem  ":   "ash-totem",
		"Tome IV":         "tome-iv",
		"X":               "x",
		"Mk. 2 Blaster":   "mk-2-blaster",
	}
	for in, want := range cases {
		require.Equal(t, want, Slug(in), in)
	}
}

func TestParseType(t *testing.T) {
	for s, want := range map[string]Type{
		"item":      TypeItem,
		"Weapon":    TypeWeapon,
		" TOME ":    TypeTome,
		"character": TypeCharacter,
	} {
		got, err := ParseType(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got, s)
	}

	_, err := ParseType("relic")
	require.Error(t, err)
}

func TestParseRarity(t *testing.T) {
	got, err := ParseRarity("")
	require.NoError(t, err)
	require.Equal(t, RarityCommon, got)

	got, err = ParseRarity("LEGENDARY")
	require.NoError(t, err)
	require.Equal(t, RarityLegendary, got)

	_, err = ParseRarity("mythic")
	require.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "Weapon", TypeWeapon.String())
	require.Equal(t, "Epic", RarityEpic.String())
	require.Equal(t, "Unknown", Type(99).String())
	require.Equal(t, "Unknown", Rarity(99).String())
}
