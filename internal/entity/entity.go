// Package entity defines the catalog of game entities the scanner can recognize.
package entity

import (
	"fmt"
	"strings"
)

// Type classifies what kind of entity a catalog entry describes.
type Type int

const (
	// TypeItem is a passive inventory item.
	TypeItem Type = iota
	// TypeWeapon is an equippable weapon.
	TypeWeapon
	// TypeTome is a stat tome.
	TypeTome
	// TypeCharacter is a playable character portrait.
	TypeCharacter
)

func (t Type) String() string {
	switch t {
	case TypeItem:
		return "Item"
	case TypeWeapon:
		return "Weapon"
	case TypeTome:
		return "Tome"
	case TypeCharacter:
		return "Character"
	default:
		return "Unknown"
	}
}

// ParseType parses a catalog type string. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "item":
		return TypeItem, nil
	case "weapon":
		return TypeWeapon, nil
	case "tome":
		return TypeTome, nil
	case "character":
		return TypeCharacter, nil
	default:
		return TypeItem, fmt.Errorf("unknown entity type %q", s)
	}
}

// Rarity is the drop-rarity tier of an entity.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// ParseRarity parses a catalog rarity string. Matching is case-insensitive;
// an empty string maps to Common.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "common":
		return RarityCommon, nil
	case "uncommon":
		return RarityUncommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	default:
		return RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}

// GameEntity is one recognizable entity. Entities are loaded once at startup
// and never mutated afterwards.
type GameEntity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   Type   `json:"-"`
	Rarity Rarity `json:"-"`
}

// Slug converts a display name to the stable identifier used for template
// asset paths: lower case, spaces and apostrophes collapsed to hyphens.
// E.g., "Bag of Holding" -> "bag-of-holding".
func Slug(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
