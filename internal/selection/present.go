package selection

import "github.com/mmcdole/vitrine/internal/domain"

// VisibleSelected returns the rows of the visible page that render as selected.
func VisibleSelected(rows []domain.Record, l Ledger) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		if l.IsSelected(row.ID) {
			out = append(out, row)
		}
	}
	return out
}

// CheckedIDs returns the ids of VisibleSelected, in page order.
func CheckedIDs(rows []domain.Record, l Ledger) []int {
	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		if l.IsSelected(row.ID) {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// IsAllSelected drives the header checkbox: true iff rows is non-empty and
// every row is selected.
func IsAllSelected(rows []domain.Record, l Ledger) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !l.IsSelected(row.ID) {
			return false
		}
	}
	return true
}

// DisplayedCount is the user-facing "Selected: N rows" figure: rows actually
// selected plus rows still owed to a bulk request.
func DisplayedCount(l Ledger) int {
	return l.SelectedCount() + l.Pending()
}

// LegacyCount is |included| - |excluded| + pending. It only agrees with
// DisplayedCount while excluded is a subset of included, which every command
// preserves; a ledger built any other way over-subtracts.
func LegacyCount(l Ledger) int {
	return l.IncludedCount() - l.ExcludedCount() + l.Pending()
}
