package game

// UpgradeKind identifies what an upgrade card improves.
type UpgradeKind int

const (
	UpgradeAttackSpeed UpgradeKind = iota
	UpgradeShotRange
	UpgradeShipSpeed
	UpgradeHullSize
	UpgradeRepair
)

// UpgradeCard is one choice offered on level up.
type UpgradeCard struct {
	Kind        UpgradeKind
	Name        string
	Description string
}

var upgradeCards = []UpgradeCard{
	{UpgradeAttackSpeed, "Rapid fire", "Gun reloads 10% faster"},
	{UpgradeShotRange, "Long barrel", "Shots reach 10% further"},
	{UpgradeShipSpeed, "Afterburner", "Ship accelerates 10% faster"},
	{UpgradeHullSize, "Armor plating", "Max health +20"},
	{UpgradeRepair, "Nanobots", "Repair 1 health every 2 seconds"},
}

const (
	minFireCooldown = 2   // Ticks
	hullUpgrade     = 20  // Max health per armor card
	upgradeFactor   = 1.1 // Range and thrust multiplier per card
)

// Apply improves the player's ship
func (c UpgradeCard) Apply(p *Player) {
	switch c.Kind {
	case UpgradeAttackSpeed:
		p.FireCooldown = int(float64(p.FireCooldown) * 0.9)
		if p.FireCooldown < minFireCooldown {
			p.FireCooldown = minFireCooldown
		}
	case UpgradeShotRange:
		p.ShotRange *= upgradeFactor
	case UpgradeShipSpeed:
		p.Acceleration *= upgradeFactor
		p.MaxSpeed *= upgradeFactor
	case UpgradeHullSize:
		p.MaxHealth += hullUpgrade
		p.Health += hullUpgrade
	case UpgradeRepair:
		p.Repair++
	}
}
