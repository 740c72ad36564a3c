// Package character generates deterministic rpg-like avatars from a seed.
package character

import (
	"github.com/cespare/xxhash/v2"
)

var (
	skinTones   = []string{"#f9dcc4", "#f1c27d", "#e0ac69", "#c68642", "#8d5524", "#5c3a21"}
	hairColors  = []string{"#2c1b10", "#6a4e42", "#b55239", "#e6be8a", "#d9d9d9", "#3b5ba5", "#7d3c98"}
	shirtColors = []string{"#1e407c", "#bf8226", "#3e8e41", "#a61c3c", "#4a4a4a", "#009cde", "#6d2077"}
)

// Hair styles.
const (
	HairBald = iota
	HairShort
	HairLong
	HairSpiky
	hairStyles
)

// Hats.
const (
	HatNone = iota
	HatWizard
	HatKnight
	HatCrown
	HatBandana
	hats
)

// Faces.
const (
	FaceHappy = iota
	FaceNeutral
	FaceSurprised
	faces
)

// Accessories.
const (
	AccessoryNone = iota
	AccessorySword
	AccessoryStaff
	AccessoryShield
	accessories
)

// Character is a set of visual traits.
type Character struct {
	Seed       string
	Skin       string
	HairColor  string
	ShirtColor string
	HairStyle  int
	Hat        int
	Face       int
	Accessory  int
}

// New generates character for given seed.
// The same seed always gives the same character.
func New(seed string) Character {
	h := xxhash.Sum64String(seed)
	pick := func(n int) int {
		v := int(h % uint64(n))
		h /= uint64(n)
		return v
	}

	return Character{
		Seed:       seed,
		Skin:       skinTones[pick(len(skinTones))],
		HairColor:  hairColors[pick(len(hairColors))],
		ShirtColor: shirtColors[pick(len(shirtColors))],
		HairStyle:  pick(hairStyles),
		Hat:        pick(hats),
		Face:       pick(faces),
		Accessory:  pick(accessories),
	}
}
