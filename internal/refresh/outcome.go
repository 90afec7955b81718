package refresh

import "fundrefresh/internal/fund"

// Outcome is the terminal result for one work item. Exactly one Outcome is
// produced per item per session: either a snapshot (success) or nil after
// retries were exhausted (failure). There are no other states, and no error
// detail survives past this point.
type Outcome struct {
	// Key identifies the work item, normally a fund code.
	Key string

	// Snapshot holds the refreshed fund data on success, nil on failure.
	Snapshot *fund.Snapshot
}

// Succeeded reports whether the item ended in success.
func (o Outcome) Succeeded() bool {
	return o.Snapshot != nil
}
