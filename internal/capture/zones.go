// Package capture holds the stationary holes a ball can fall into.
package capture

import "github.com/san-kum/holesim/internal/dynamo"

// Zone is a capture rectangle. Its identity is its index in the set.
type Zone struct {
	Index int
	Rect  dynamo.Rect
}

// ZoneSet is an ordered, fixed set of zones.
type ZoneSet struct {
	zones []Zone
}

func NewZoneSet(rects ...dynamo.Rect) *ZoneSet {
	zones := make([]Zone, len(rects))
	for i, r := range rects {
		zones[i] = Zone{Index: i, Rect: r}
	}
	return &ZoneSet{zones: zones}
}

func (s *ZoneSet) Len() int { return len(s.zones) }

// Zones returns a copy of the zones in declaration order.
func (s *ZoneSet) Zones() []Zone {
	out := make([]Zone, len(s.zones))
	copy(out, s.zones)
	return out
}

// FirstContaining returns the lowest-index zone whose rectangle contains p,
// edges included.
func (s *ZoneSet) FirstContaining(p dynamo.Vec2) (Zone, bool) {
	for _, z := range s.zones {
		if z.Rect.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}

// BallCenter is the point tested against zones for a ball at pos of size size.
func BallCenter(pos, size dynamo.Vec2) dynamo.Vec2 {
	return dynamo.Vec2{X: pos.X + size.X/2, Y: pos.Y + size.Y/2}
}
