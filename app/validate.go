package app

import (
	"errors"
	"time"

	"traytime/store"
	"traytime/tracker"
)

var (
	errEndBeforeStart = errors.New(
		"the session end time must be later than its start time",
	)
	errSessionInFuture = errors.New(
		"sessions cannot end in the future",
	)
	errTimerRunning = errors.New(
		"the aligners are currently out: put them back in before editing sessions",
	)
	errSessionOverlap = errors.New(
		"new sessions cannot overlap with existing ones",
	)
)

// validateSessionBounds applies the user-facing session rules: end after
// start, not in the future, not while a removal is open, and no overlap with
// an existing session. excludeID skips the session being edited.
func validateSessionBounds(
	db store.DB,
	t *tracker.Tracker,
	start, end time.Time,
	excludeID int64,
) error {
	if !end.After(start) {
		return errEndBeforeStart
	}

	if end.After(time.Now()) {
		return errSessionInFuture
	}

	if t.State().IsOut {
		return errTimerRunning
	}

	sessions, err := db.History()
	if err != nil {
		return err
	}

	for _, sess := range sessions {
		if sess.ID == excludeID {
			continue
		}

		if start.Before(sess.EndTime) && sess.StartTime.Before(end) {
			return errSessionOverlap
		}
	}

	return nil
}
