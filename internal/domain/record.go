package domain

import "time"

// Record is one journaled delivery attempt. The journal is an audit log,
// not a retry queue: failed attempts are recorded but never replayed.
type Record struct {
	ID        string
	Tag       string
	Section   string
	Text      string
	Who       string
	Status    OutcomeStatus
	Detail    string
	CreatedAt time.Time
}
