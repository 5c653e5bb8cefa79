package colour

import "sort"

// Histogram counts quantised colours and remembers the order in which each
// colour was first seen, so ties in MostCommon resolve deterministically.
type Histogram struct {
	counts map[RGB]int
	order  []RGB
	total  int
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[RGB]int)}
}

// Add records one occurrence of c.
func (h *Histogram) Add(c RGB) {
	if _, ok := h.counts[c]; !ok {
		h.order = append(h.order, c)
	}
	h.counts[c]++
	h.total++
}

// Total returns the number of Add calls.
func (h *Histogram) Total() int {
	return h.total
}

// MostCommon returns up to n entries ordered by descending count. Equal
// counts keep first-seen order. n <= 0 returns every entry.
func (h *Histogram) MostCommon(n int) []Entry {
	entries := make([]Entry, len(h.order))
	for i, c := range h.order {
		entries[i] = Entry{Colour: c, Count: h.counts[c]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
