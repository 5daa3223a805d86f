package domain

import "time"

// Store persists the last verdict and notification history per domain so a
// transition to available is reported exactly once. Implementations must be
// durable across process invocations.
type Store interface {
	// Get returns the record for a domain and whether one exists.
	Get(fqdn string) (Record, bool, error)
	// ShouldNotify reports whether the given verdict warrants a fresh
	// notification given the stored state. It never mutates the store.
	ShouldNotify(fqdn string, v Verdict) (bool, error)
	// RecordTransition persists the new verdict, stamping NotifiedAt on the
	// first transition into available after any non-available state.
	RecordTransition(fqdn string, v Verdict, at time.Time) error
	Close() error
}

// ShouldNotifyRecord is the one-shot rule shared by all store backends:
// notify only when the verdict is available and the previous state was
// absent or anything other than available.
func ShouldNotifyRecord(prev Record, exists bool, v Verdict) bool {
	if v != VerdictAvailable {
		return false
	}
	return !exists || prev.LastVerdict != VerdictAvailable
}

// ApplyTransition computes the successor record for a verdict. NotifiedAt is
// carried over unchanged unless this transition re-arms a notification.
func ApplyTransition(prev Record, exists bool, fqdn string, v Verdict, at time.Time) Record {
	next := Record{Domain: fqdn, LastVerdict: v, CheckedAt: at}
	if exists {
		next.NotifiedAt = prev.NotifiedAt
	}
	if ShouldNotifyRecord(prev, exists, v) {
		t := at
		next.NotifiedAt = &t
	}
	return next
}
