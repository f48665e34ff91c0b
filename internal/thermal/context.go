package thermal

// GroupKey identifies one temperature grouping: frames sharing a session
// date, target, gain, exposure, and filter accumulate into the same running
// range. Darks leave Target and Filter empty.
type GroupKey struct {
	Date        string
	Target      string
	Filter      string
	Gain        int
	ExposureSec float64
}

type groupRange struct {
	floor int
	ceil  int
}

// Context is the per-run accumulator of observed group temperatures. It is
// mutated only by Observe, strictly in chronological frame order; processing
// out of order would change absorb/outlier decisions.
type Context struct {
	toleranceC float64
	groups     map[GroupKey]*groupRange
}

// NewContext builds an empty accumulator with the given tolerance window
// width in degrees Celsius.
func NewContext(toleranceC float64) *Context {
	return &Context{toleranceC: toleranceC, groups: make(map[GroupKey]*groupRange)}
}

// Observe folds one session frame's temperature into its group and returns
// the bucket decision. The first frame of a group seeds a zero-width range
// at its own rounded degree and is never an outlier. A later frame is
// absorbed, extending the range, when its rounded degree lies strictly
// within the tolerance of the current range and absorbing it keeps the range
// width at most the tolerance; otherwise it becomes an Outlier and the range
// does not move.
//
// A Range result carries the bounds as of this observation; the settled
// bounds for path assignment come from RangeOf after the whole run has been
// observed.
func (c *Context) Observe(key GroupKey, tempC float64) Bucket {
	r := Round(tempC)
	g, ok := c.groups[key]
	if !ok {
		g = &groupRange{floor: r, ceil: r}
		c.groups[key] = g
		return Bucket{Kind: Range, Floor: r, Ceil: r}
	}

	floor, ceil := g.floor, g.ceil
	if r < floor {
		floor = r
	}
	if r > ceil {
		ceil = r
	}

	if float64(distance(r, g.floor, g.ceil)) < c.toleranceC && float64(ceil-floor) <= c.toleranceC {
		g.floor, g.ceil = floor, ceil
		return Bucket{Kind: Range, Floor: floor, Ceil: ceil}
	}

	if r < g.floor {
		return Bucket{Kind: Outlier, Value: r, Direction: Below}
	}
	return Bucket{Kind: Outlier, Value: r, Direction: Above}
}

// RangeOf returns the group's settled representative range. It reports false
// for groups that never observed a frame.
func (c *Context) RangeOf(key GroupKey) (Bucket, bool) {
	g, ok := c.groups[key]
	if !ok {
		return Bucket{}, false
	}
	return Bucket{Kind: Range, Floor: g.floor, Ceil: g.ceil}, true
}

func distance(r, floor, ceil int) int {
	switch {
	case r < floor:
		return floor - r
	case r > ceil:
		return r - ceil
	default:
		return 0
	}
}
