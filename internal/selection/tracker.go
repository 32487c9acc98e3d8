package selection

import (
	"log/slog"
	"sync"
)

// Tracker owns the process-wide ledger and serializes every command.
type Tracker struct {
	mu     sync.Mutex
	ledger Ledger
	logger *slog.Logger
}

// NewTracker creates a tracker with an empty ledger
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		ledger: NewLedger(),
		logger: logger,
	}
}

// Dispatch applies cmd and returns what it did.
func (t *Tracker) Dispatch(cmd Command) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, res := Reduce(t.ledger, cmd)
	t.ledger = next

	t.logger.Debug("selection command",
		"kind", cmd.Kind.String(),
		"rows", len(cmd.Rows),
		"applied", res.Applied,
		"rejected", res.Rejected,
		"included", next.IncludedCount(),
		"excluded", next.ExcludedCount(),
		"pending", next.Pending(),
	)
	return res
}

// Snapshot returns the current ledger. The value is immutable.
func (t *Tracker) Snapshot() Ledger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger
}
