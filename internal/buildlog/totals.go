package buildlog

import "slices"

// LeanLabel is the totals key for plain module builds.
const LeanLabel = "lean"

// Totals maps a phase label to accumulated seconds.
type Totals map[string]float64

// Add accumulates seconds under label.
func (t Totals) Add(label string, seconds float64) {
	t[label] += seconds
}

// Labels returns the labels in sorted order.
func (t Totals) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}
