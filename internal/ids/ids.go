// Package ids provides the dense identifier types used across the
// simulation: country tags and small integer ids for provinces, armies,
// fleets, wars, trade nodes, goods, buildings, subject types, and
// institutions. Province/good/building/etc ids are allocated at data-load
// time; army/fleet/war ids are monotone counters allocated during play.
package ids

import "fmt"

// Tag is a three-uppercase-letter country code, e.g. "SWE".
type Tag string

// Valid reports whether t looks like a well-formed country tag.
func (t Tag) Valid() bool {
	if len(t) != 3 {
		return false
	}
	for _, r := range t {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

type (
	ProvinceID    uint32
	ArmyID        uint32
	FleetID       uint32
	WarID         uint32
	TradeNodeID   uint16
	GoodID        uint16
	BuildingID    uint16
	SubjectTypeID uint16
	InstitutionID uint16
)

// Counter allocates monotonically increasing ids starting at 1 (0 is never
// issued, so it can be used as a "no id" sentinel in zero-value structs).
type Counter struct {
	next uint32
}

// NewCounter returns a Counter whose first Next() is 1.
func NewCounter() *Counter { return &Counter{next: 1} }

// Next returns the next id and advances the counter.
func (c *Counter) Next() uint32 {
	v := c.next
	c.next++
	return v
}

// SetFloor ensures subsequent ids are strictly greater than floor — used
// when restoring a counter from a hydrated or loaded world so newly
// allocated ids never collide with existing ones.
func (c *Counter) SetFloor(floor uint32) {
	if c.next <= floor {
		c.next = floor + 1
	}
}

// String implements fmt.Stringer for log output.
func (id ProvinceID) String() string { return fmt.Sprintf("prov#%d", uint32(id)) }
func (id ArmyID) String() string     { return fmt.Sprintf("army#%d", uint32(id)) }
func (id FleetID) String() string    { return fmt.Sprintf("fleet#%d", uint32(id)) }
func (id WarID) String() string      { return fmt.Sprintf("war#%d", uint32(id)) }
