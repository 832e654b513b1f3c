package app

import (
	"errors"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hako/durafmt"
	"github.com/urfave/cli/v2"

	"traytime/config"
	"traytime/internal/models"
	"traytime/internal/ui"
	"traytime/reminder"
	"traytime/store"
	"traytime/tracker"
)

var (
	errSessionNotFound = errors.New("no session exists with the specified id")
	errInvalidMonth    = errors.New("the month must be between 1 and 12")
)

// openTracker wires the tracker to its stores and the reminder scheduler.
// The caller owns closing both stores.
func openTracker(
	ctx *cli.Context,
) (*tracker.Tracker, store.DB, store.SnapshotStore, error) {
	cfg := config.Tracker(ctx)

	ui.DarkTheme = cfg.DarkTheme

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, nil, err
	}

	snap, err := store.NewStateClient(config.StateFilePath())
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	t, err := tracker.New(db, snap, reminder.NewNotifier(cfg.Notify), cfg)
	if err != nil {
		_ = db.Close()
		_ = snap.Close()

		return nil, nil, nil, err
	}

	return t, db, snap, nil
}

func closeStores(db store.DB, snap store.SnapshotStore) {
	_ = db.Close()
	_ = snap.Close()
}

// cleaningFromFlags assembles the hygiene data passed on the command line,
// or nil when no hygiene flag was set.
func cleaningFromFlags(ctx *cli.Context) *models.Cleaning {
	if !ctx.Bool("brushing") && !ctx.Bool("flossing") &&
		!ctx.Bool("mouthwash") && !ctx.IsSet("task") {
		return nil
	}

	cleaning := &models.Cleaning{
		Brushing:  ctx.Bool("brushing"),
		Flossing:  ctx.Bool("flossing"),
		Mouthwash: ctx.Bool("mouthwash"),
	}

	if ctx.IsSet("task") {
		id := ctx.Int64("task")
		cleaning.TaskID = &id
	}

	return cleaning
}

// findSession looks a session up by id.
func findSession(db store.DB, id int64) (*models.Session, error) {
	sessions, err := db.History()
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}

	return nil, errSessionNotFound
}

// parseDateFlag reads a --date style flag, defaulting to now.
func parseDateFlag(ctx *cli.Context, name string) (time.Time, error) {
	val := ctx.String(name)
	if val == "" {
		return time.Now(), nil
	}

	return dateparse.ParseIn(val, time.Local)
}

// formatSeconds expresses a seconds value as e.g. "1 hour 30 minutes".
// Negative values are formatted by magnitude; callers label the overtime.
func formatSeconds(secs int) string {
	if secs < 0 {
		secs = -secs
	}

	return durafmt.Parse(time.Duration(secs) * time.Second).
		LimitToUnit("hours").LimitFirstN(2).String()
}

// monthFromNumber converts a --month value to a time.Month, rejecting
// values outside the calendar instead of letting time.Date normalize them.
func monthFromNumber(n int) (time.Month, error) {
	if n < 1 || n > 12 {
		return 0, errInvalidMonth
	}

	return time.Month(n), nil
}

// clockFormat is the time layout matching the 24-hour clock preference.
func clockFormat(cfg *config.TrackerConfig) string {
	if cfg.TwentyFourHourClock {
		return "Jan 02, 2006 15:04"
	}

	return "Jan 02, 2006 03:04 PM"
}

func yesNoMark(b bool) string {
	if b {
		return ui.Green("✓")
	}

	return "-"
}
