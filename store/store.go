// Package store connects to the local data stores: the SQLite database
// holding removal sessions and cleaning tasks, and the bbolt file holding
// tracker state snapshots.
package store

import (
	"time"

	"traytime/internal/models"
)

// DB is the session and cleaning-task storage interface.
type DB interface {
	// AddSession persists a completed removal. Duration and the local
	// calendar date are derived from the timestamps; the caller guarantees
	// end > start.
	AddSession(
		start, end time.Time,
		cleaning models.Cleaning,
	) (*models.Session, error)
	// DaySessions returns all sessions for a date, ordered by start time.
	DaySessions(date string) ([]models.Session, error)
	// History returns all sessions, newest first.
	History() ([]models.Session, error)
	// UpdateSession rewrites the bounds of a session, recomputing its
	// duration and date.
	UpdateSession(id int64, start, end time.Time) error
	// UpdateSessionCleaning rewrites the hygiene data of a session.
	UpdateSessionCleaning(id int64, cleaning models.Cleaning) error
	// DeleteSession removes a session.
	DeleteSession(id int64) error
	// TodayTotalSeconds sums the committed out time for the current logical
	// date. Read failures degrade to zero.
	TodayTotalSeconds(resetHour int) int
	// DayStats, WeekStats, and MonthStats aggregate per-day totals. Read
	// failures and empty periods yield a zero-valued result, never an error.
	DayStats(date string) models.PeriodStats
	WeekStats(mondayStart time.Time) models.PeriodStats
	MonthStats(year int, month time.Month) models.PeriodStats
	// CleaningTasks returns the active tasks, ordered by scheduled time.
	CleaningTasks() ([]models.CleaningTask, error)
	// AllCleaningTasks returns every task, including soft-deleted ones.
	AllCleaningTasks() ([]models.CleaningTask, error)
	AddCleaningTask(
		name, scheduledTime string,
		requiresBrushing, requiresFlossing, requiresMouthwash bool,
	) (int64, error)
	UpdateCleaningTask(
		id int64,
		name, scheduledTime string,
		requiresBrushing, requiresFlossing, requiresMouthwash bool,
	) error
	// DeleteCleaningTask soft-deletes a task by marking it inactive.
	DeleteCleaningTask(id int64) error
	// PermanentlyDeleteCleaningTask removes a task row. Session references
	// to it are left in place.
	PermanentlyDeleteCleaningTask(id int64) error
	// DayCleaningStatus reports per-day task completion. A day with no
	// active tasks is vacuously complete.
	DayCleaningStatus(date string) models.DayCleaningStatus
	// CleaningStatusRange reports completion for every date in [start, end].
	CleaningStatusRange(
		start, end time.Time,
	) map[string]models.DayCleaningStatus
	// Reset deletes all sessions and all cleaning tasks.
	Reset() error
	// Close ends the database connection.
	Close() error
}

// SnapshotStore persists the tracker state as a single opaque snapshot
// surviving process restarts.
type SnapshotStore interface {
	Save(snapshot []byte) error
	// Load returns the saved snapshot, or nil if none exists yet.
	Load() ([]byte, error)
	Close() error
}
