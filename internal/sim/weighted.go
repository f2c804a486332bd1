package sim

import "sort"

// WeightedChooser draws indices with replacement, proportionally to a fixed
// set of weights. Negative weights count as zero; when every weight is zero
// the draw is uniform.
type WeightedChooser struct {
	cumulative []float64
	total      float64
}

func NewWeightedChooser(weights []float64) *WeightedChooser {
	c := &WeightedChooser{cumulative: make([]float64, len(weights))}
	for i, w := range weights {
		if w > 0 {
			c.total += w
		}
		c.cumulative[i] = c.total
	}
	return c
}

func (c *WeightedChooser) Len() int {
	return len(c.cumulative)
}

// Pick returns an index in [0, Len()), or -1 for an empty chooser.
func (c *WeightedChooser) Pick(src Source) int {
	n := len(c.cumulative)
	if n == 0 {
		return -1
	}
	if c.total <= 0 {
		return src.IntN(n)
	}

	x := src.Float64() * c.total
	i := sort.Search(n, func(i int) bool { return c.cumulative[i] > x })
	if i == n {
		i = n - 1
	}
	return i
}
