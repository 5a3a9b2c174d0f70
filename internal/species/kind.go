package species

import "fmt"

// Kind selects the behavior an entity runs every tick. The set is closed:
// the world dispatches over it with an exhaustive switch.
type Kind int

const (
	KindStaticObject Kind = iota
	KindHero
	KindNpc
	KindBuilding
	KindPickableObject
	KindBundle
	KindTeleporter
	KindPushableObject
	KindGate
	KindInverseGate
	KindPressurePlate
	KindBullet
	KindHint
)

var kindNames = [...]string{
	KindStaticObject:   "static_object",
	KindHero:           "hero",
	KindNpc:            "npc",
	KindBuilding:       "building",
	KindPickableObject: "pickable_object",
	KindBundle:         "bundle",
	KindTeleporter:     "teleporter",
	KindPushableObject: "pushable_object",
	KindGate:           "gate",
	KindInverseGate:    "inverse_gate",
	KindPressurePlate:  "pressure_plate",
	KindBullet:         "bullet",
	KindHint:           "hint",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the snake_case name used in data files.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("species: unknown kind %q", string(text))
}

// MarshalText is the inverse of UnmarshalText.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsPickable reports whether the hero can put entities of this kind in the inventory.
func (k Kind) IsPickable() bool {
	return k == KindPickableObject || k == KindBundle
}
