package weight

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Collection is an ordered, mutable sequence of point masses behaving
// as a single equivalent weight. Members are held by reference and may
// be shared between collections; duplicates are allowed and counted
// once per occurrence. Insertion order is preserved for iteration but
// has no effect on the aggregates.
//
// Aggregates are recomputed from the current members on every call,
// never cached. A Collection performs no internal locking: callers
// using it from multiple goroutines must synchronize Add/Remove
// against concurrent reads.
type Collection struct {
	members []PointMass
}

// NewCollection creates a collection holding the given members, in
// order. With no arguments it is empty.
func NewCollection(members ...PointMass) *Collection {
	c := &Collection{}
	c.members = append(c.members, members...)
	return c
}

// Add appends a member to the collection. Any PointMass is accepted,
// including zero-mass weights and other collections.
func (c *Collection) Add(m PointMass) {
	c.members = append(c.members, m)
}

// Remove removes the first member identical to m, comparing by
// reference identity (the == of the interface values, i.e. pointer
// equality for *Weight and *Collection members). Two distinct weights
// with equal mass and position are distinct members. Returns
// ErrNotFound if m is not a member.
func (c *Collection) Remove(m PointMass) error {
	for i, member := range c.members {
		if member == m {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Len returns the number of member entries, counting duplicates.
func (c *Collection) Len() int { return len(c.members) }

// Members returns the members in insertion order. The returned slice
// is a copy; mutating it does not affect the collection.
func (c *Collection) Members() []PointMass {
	out := make([]PointMass, len(c.members))
	copy(out, c.members)
	return out
}

// Mass returns the sum of the member masses in kilograms. An empty
// collection has mass 0.
func (c *Collection) Mass() float64 {
	var total float64
	for _, m := range c.members {
		total += m.Mass()
	}
	return total
}

// CG returns the mass-weighted average of the member positions,
// computed per axis from the current members.
//
// A zero-mass member contributes nothing to the average, so its CG is
// never consulted; nesting an empty or all-massless collection leaves
// the result identical to the flattened equivalent. An empty collection
// has no centre of gravity and returns ErrEmptyCollection. A non-empty
// collection whose total mass is zero returns ErrZeroTotalMass: the
// weighted average would be 0/0 and no fallback is guessed. An error
// from a massive nested member's CG propagates wrapped with the member
// index.
func (c *Collection) CG() (v3.Vec, error) {
	if len(c.members) == 0 {
		return v3.Vec{}, ErrEmptyCollection
	}

	var sum v3.Vec
	var total float64
	for i, m := range c.members {
		mass := m.Mass()
		if mass == 0 {
			continue
		}
		cg, err := m.CG()
		if err != nil {
			return v3.Vec{}, fmt.Errorf("member %d: %w", i, err)
		}
		sum.X += mass * cg.X
		sum.Y += mass * cg.Y
		sum.Z += mass * cg.Z
		total += mass
	}

	if total == 0 {
		return v3.Vec{}, ErrZeroTotalMass
	}
	return v3.Vec{X: sum.X / total, Y: sum.Y / total, Z: sum.Z / total}, nil
}
