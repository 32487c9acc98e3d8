// Package selection tracks a row selection that spans pages of a remote
// dataset. Only the visible page is ever in memory, so membership is kept by
// record id in two sets: ids the user included and ids the user excluded
// afterwards. Exclusion always wins.
package selection

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Ledger is an immutable snapshot of the selection state.
// Reduce returns a new Ledger and never mutates the one it was given,
// so a Ledger can be shared freely once built.
type Ledger struct {
	included *roaring64.Bitmap
	excluded *roaring64.Bitmap
	pending  int // rows still owed to the last bulk request
}

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return Ledger{
		included: roaring64.New(),
		excluded: roaring64.New(),
	}
}

// clone returns a deep copy safe to mutate.
func (l Ledger) clone() Ledger {
	c := Ledger{pending: l.pending}
	if l.included != nil {
		c.included = l.included.Clone()
	} else {
		c.included = roaring64.New()
	}
	if l.excluded != nil {
		c.excluded = l.excluded.Clone()
	} else {
		c.excluded = roaring64.New()
	}
	return c
}

// IsIncluded reports whether id was explicitly included.
func (l Ledger) IsIncluded(id int) bool {
	return l.included != nil && l.included.Contains(uint64(id))
}

// IsExcluded reports whether id was explicitly excluded.
func (l Ledger) IsExcluded(id int) bool {
	return l.excluded != nil && l.excluded.Contains(uint64(id))
}

// IsSelected reports the effective selection of id.
func (l Ledger) IsSelected(id int) bool {
	return l.IsIncluded(id) && !l.IsExcluded(id)
}

// Pending returns how many rows the last bulk request still owes.
func (l Ledger) Pending() int {
	return l.pending
}

// IncludedCount returns |included|.
func (l Ledger) IncludedCount() int {
	if l.included == nil {
		return 0
	}
	return int(l.included.GetCardinality())
}

// ExcludedCount returns |excluded|.
func (l Ledger) ExcludedCount() int {
	if l.excluded == nil {
		return 0
	}
	return int(l.excluded.GetCardinality())
}

// SelectedCount returns |included \ excluded|.
func (l Ledger) SelectedCount() int {
	if l.included == nil {
		return 0
	}
	if l.excluded == nil {
		return int(l.included.GetCardinality())
	}
	return int(roaring64.AndNot(l.included, l.excluded).GetCardinality())
}

// SelectedIDs returns the effectively selected ids in ascending order.
func (l Ledger) SelectedIDs() []int {
	if l.included == nil {
		return []int{}
	}
	set := l.included
	if l.excluded != nil {
		set = roaring64.AndNot(l.included, l.excluded)
	}
	ids := make([]int, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}

// IncludedIDs returns the explicitly included ids in ascending order.
func (l Ledger) IncludedIDs() []int {
	return toInts(l.included)
}

// ExcludedIDs returns the explicitly excluded ids in ascending order.
func (l Ledger) ExcludedIDs() []int {
	return toInts(l.excluded)
}

func toInts(b *roaring64.Bitmap) []int {
	if b == nil {
		return []int{}
	}
	ids := make([]int, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}

// include marks id selected, overriding any earlier exclusion.
func (l *Ledger) include(id int) {
	l.included.Add(uint64(id))
	l.excluded.Remove(uint64(id))
}

// exclude records a deselection, but only for ids that were included.
// A row that was never selected needs nothing to override.
func (l *Ledger) exclude(id int) {
	if l.included.Contains(uint64(id)) {
		l.excluded.Add(uint64(id))
	}
}
