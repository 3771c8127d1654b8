package paging

// ShouldLoadMore reports whether the last visible row is the last row of the
// list. Index 0 never qualifies, which keeps an empty or single-row list
// from firing right after it is shown. Pass -1 when nothing is visible.
func ShouldLoadMore(lastVisible, total int) bool {
	return lastVisible > 0 && lastVisible == total-1
}

// Trigger fires once per false-to-true transition of ShouldLoadMore
type Trigger struct {
	armed bool
}

// Observe feeds the current viewport and returns true when a fetch should start
func (t *Trigger) Observe(lastVisible, total int) bool {
	at := ShouldLoadMore(lastVisible, total)
	fire := at && !t.armed
	t.armed = at
	return fire
}

// Reset forgets the last observation
func (t *Trigger) Reset() {
	t.armed = false
}
