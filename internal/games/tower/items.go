package tower

import "math/rand"

// ItemKind is a consumable pickup type.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemBoost          // Upward impulse
	ItemShield         // One-time rescue from the death line
	ItemSpark          // Charges the nearest magnetic platform
)

// String returns a human-readable item name.
func (k ItemKind) String() string {
	switch k {
	case ItemBoost:
		return "boost"
	case ItemShield:
		return "shield"
	case ItemSpark:
		return "spark"
	default:
		return "none"
	}
}

// randomItem picks a pickup kind for level generation.
func randomItem(rng *rand.Rand) ItemKind {
	switch rng.Intn(3) {
	case 0:
		return ItemBoost
	case 1:
		return ItemShield
	default:
		return ItemSpark
	}
}

// Inventory holds collected items in fixed slots, oldest first. When full,
// collecting a new item drops the oldest slot. Consumption is oldest-first.
type Inventory struct {
	slots []ItemKind
	cap   int
}

// NewInventory creates an inventory with the given capacity.
func NewInventory(capacity int) *Inventory {
	if capacity < 1 {
		capacity = 1
	}
	return &Inventory{cap: capacity}
}

// Reset empties the inventory.
func (inv *Inventory) Reset() {
	inv.slots = inv.slots[:0]
}

// Add stores an item. Returns the kind that was displaced (ItemNone if the
// inventory had a free slot).
func (inv *Inventory) Add(k ItemKind) ItemKind {
	if k == ItemNone {
		return ItemNone
	}
	if len(inv.slots) < inv.cap {
		inv.slots = append(inv.slots, k)
		return ItemNone
	}
	dropped := inv.slots[0]
	copy(inv.slots, inv.slots[1:])
	inv.slots[len(inv.slots)-1] = k
	return dropped
}

// UseOldest removes and returns the oldest item. False if empty.
func (inv *Inventory) UseOldest() (ItemKind, bool) {
	if len(inv.slots) == 0 {
		return ItemNone, false
	}
	k := inv.slots[0]
	copy(inv.slots, inv.slots[1:])
	inv.slots = inv.slots[:len(inv.slots)-1]
	return k, true
}

// Take removes the first item of the given kind. False if absent.
func (inv *Inventory) Take(k ItemKind) bool {
	for i, s := range inv.slots {
		if s == k {
			copy(inv.slots[i:], inv.slots[i+1:])
			inv.slots = inv.slots[:len(inv.slots)-1]
			return true
		}
	}
	return false
}

// Has reports whether an item of the given kind is held.
func (inv *Inventory) Has(k ItemKind) bool {
	for _, s := range inv.slots {
		if s == k {
			return true
		}
	}
	return false
}

// Items returns a copy of the current slots, oldest first.
func (inv *Inventory) Items() []ItemKind {
	out := make([]ItemKind, len(inv.slots))
	copy(out, inv.slots)
	return out
}

// Len returns the number of held items.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}
