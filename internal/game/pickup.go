package game

import (
	"image/color"

	"github.com/google/uuid"
	"golang.org/x/image/colornames"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// PickupKind identifies what a pickup does when collected.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupCoin
	PickupSideBullet
	PickupDoubleCoins
	PickupDoubleExp
	PickupExp
)

// String returns the display name of the pickup kind.
func (k PickupKind) String() string {
	switch k {
	case PickupHealth:
		return "health"
	case PickupCoin:
		return "coin"
	case PickupSideBullet:
		return "side bullets"
	case PickupDoubleCoins:
		return "double coins"
	case PickupDoubleExp:
		return "double exp"
	case PickupExp:
		return "exp"
	default:
		return "unknown"
	}
}

// Color returns the draw color of the pickup kind.
func (k PickupKind) Color() color.RGBA {
	switch k {
	case PickupHealth:
		return colornames.Crimson
	case PickupCoin:
		return colornames.Gold
	case PickupSideBullet:
		return colornames.Deepskyblue
	case PickupDoubleCoins:
		return colornames.Darkorange
	case PickupDoubleExp:
		return colornames.Mediumpurple
	case PickupExp:
		return colornames.Lime
	default:
		return colornames.White
	}
}

// Pickup is something left behind by a destroyed asteroid.
type Pickup struct {
	ID    uuid.UUID
	Kind  PickupKind
	Value int
	Pos   geometry.Point
	TTL   int // Ticks left before it vanishes
}
