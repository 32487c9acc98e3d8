package selection

// Result reports what a command did.
type Result struct {
	Applied      int  // rows auto-selected by a fill
	Rejected     bool // command ignored, state unchanged
	Reset        bool // bulk count of zero cleared everything
	CloseOverlay bool // bulk overlay should close
}

// Reduce applies cmd to l and returns the new ledger. l is never mutated.
func Reduce(l Ledger, cmd Command) (Ledger, Result) {
	switch cmd.Kind {
	case KindPageVisible:
		if l.pending <= 0 || len(cmd.Rows) == 0 {
			return l, Result{}
		}
		next := l.clone()
		applied := next.fill(cmd)
		return next, Result{Applied: applied}

	case KindBulk:
		if cmd.Count == 0 {
			return NewLedger(), Result{Reset: true, CloseOverlay: true}
		}
		if cmd.Count < 0 || len(cmd.Rows) == 0 {
			return l, Result{Rejected: true}
		}
		next := l.clone()
		// A new request overwrites an unfinished quota rather than adding to it.
		next.pending = cmd.Count
		applied := next.fill(cmd)
		return next, Result{Applied: applied, CloseOverlay: true}

	case KindToggle:
		next := l.clone()
		if cmd.On {
			next.include(cmd.ID)
		} else {
			next.exclude(cmd.ID)
		}
		return next, Result{}

	case KindSelectAll:
		next := l.clone()
		for _, row := range cmd.Rows {
			if cmd.On {
				next.include(row.ID)
			} else {
				next.exclude(row.ID)
			}
		}
		return next, Result{}

	case KindWidgetChange:
		checked := make(map[int]struct{}, len(cmd.Checked))
		for _, id := range cmd.Checked {
			checked[id] = struct{}{}
		}
		next := l.clone()
		for _, row := range cmd.Rows {
			if _, ok := checked[row.ID]; ok {
				next.include(row.ID)
			} else {
				next.exclude(row.ID)
			}
		}
		return next, Result{}
	}

	return l, Result{Rejected: true}
}

// fill selects the leading rows still owed and decrements pending.
// Rows already selected still count toward the quota.
func (l *Ledger) fill(cmd Command) int {
	k := min(l.pending, len(cmd.Rows))
	for _, row := range cmd.Rows[:k] {
		l.include(row.ID)
	}
	l.pending -= k
	return k
}
