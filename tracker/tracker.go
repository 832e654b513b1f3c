// Package tracker owns the aligner wear-budget state machine: it tracks
// whether the aligners are out, accumulates committed out time against the
// daily budget, and persists completed removals.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"traytime/config"
	"traytime/internal/models"
	"traytime/internal/timeutil"
	"traytime/reminder"
	"traytime/store"
)

const secondsInADay = 24 * 60 * 60

var errResetHourOutOfRange = errors.New(
	"the day reset hour must be between 0 and 23",
)

// State is the tracker snapshot persisted across restarts.
type State struct {
	IsOut        bool      `json:"is_out"`
	OutStartTime time.Time `json:"out_start_time"` // zero while worn
	// SecondsConsumedToday holds committed out time only; an open removal
	// is not included until it is committed by a toggle.
	SecondsConsumedToday int    `json:"seconds_consumed_today"`
	SecondsRemaining     int    `json:"seconds_remaining"`
	LastResetDate        string `json:"last_reset_date"`
	DailyGoalHours       int    `json:"daily_goal_hours"`
	DailyGoalMinutes     int    `json:"daily_goal_minutes"`
	DayResetHour         int    `json:"day_reset_hour"`
	ReminderDelayMinutes int    `json:"reminder_delay_mins"`
	MinSessionSeconds    int    `json:"min_session_secs"`
	// ReminderDue lets a later watch process pick up a reminder scheduled
	// by a one-shot toggle.
	ReminderDue      time.Time     `json:"reminder_due"`
	UpperTrays       []models.Tray `json:"upper_trays"`
	LowerTrays       []models.Tray `json:"lower_trays"`
	CurrentUpperTray int           `json:"current_upper_tray"`
	CurrentLowerTray int           `json:"current_lower_tray"`
}

// Tracker is the state owner. It is constructed once at process start and
// injected into collaborators; every committed transition saves a snapshot.
type Tracker struct {
	db        store.DB
	snapshots store.SnapshotStore
	reminders reminder.Scheduler
	state     State
	now       func() time.Time
}

// New loads the last snapshot from snap, or seeds a fresh state from cfg,
// and returns the tracker.
func New(
	db store.DB,
	snap store.SnapshotStore,
	rem reminder.Scheduler,
	cfg *config.TrackerConfig,
) (*Tracker, error) {
	t := &Tracker{
		db:        db,
		snapshots: snap,
		reminders: rem,
		now:       time.Now,
	}

	b, err := snap.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tracker state: %w", err)
	}

	if b == nil {
		t.state = State{
			DailyGoalHours:       cfg.DailyGoalHours,
			DailyGoalMinutes:     cfg.DailyGoalMinutes,
			DayResetHour:         cfg.DayResetHour,
			ReminderDelayMinutes: cfg.ReminderDelayMinutes,
			MinSessionSeconds:    cfg.MinSessionSeconds,
			CurrentUpperTray:     1,
			CurrentLowerTray:     1,
		}
		t.state.LastResetDate = timeutil.LogicalDateString(
			t.now(),
			t.state.DayResetHour,
		)
		t.state.SecondsRemaining = t.BudgetSeconds()

		return t, t.save()
	}

	if err := json.Unmarshal(b, &t.state); err != nil {
		return nil, fmt.Errorf("decoding tracker state: %w", err)
	}

	return t, nil
}

// State returns a copy of the current tracker state for rendering. The tray
// slices are copied too, so callers cannot write through to the live state.
func (t *Tracker) State() State {
	s := t.state
	s.UpperTrays = append([]models.Tray(nil), t.state.UpperTrays...)
	s.LowerTrays = append([]models.Tray(nil), t.state.LowerTrays...)

	return s
}

// BudgetSeconds derives the daily out-time budget as the complement of the
// wear goal: a 22h goal leaves 2h of allowed out time.
func (t *Tracker) BudgetSeconds() int {
	goal := t.state.DailyGoalHours*3600 + t.state.DailyGoalMinutes*60

	return secondsInADay - goal
}

// Toggle flips the aligner state. Removing the aligners schedules the
// reminder; reinserting them cancels it and commits the removal as a session
// when it meets the minimum duration. The persisted session is returned on a
// committed reinsert, nil otherwise.
func (t *Tracker) Toggle(cleaning *models.Cleaning) (*models.Session, error) {
	now := t.now()

	if !t.state.IsOut {
		delay := time.Duration(t.state.ReminderDelayMinutes) * time.Minute

		// fire and forget: the toggle completes regardless of whether the
		// notification could be scheduled
		_ = t.reminders.Schedule(delay)

		t.state.IsOut = true
		t.state.OutStartTime = now
		t.state.ReminderDue = now.Add(delay)

		return nil, t.save()
	}

	// Removed state without a start timestamp: nothing to commit, nothing
	// to mutate.
	if t.state.OutStartTime.IsZero() {
		return nil, nil
	}

	t.reminders.CancelAll()
	t.state.ReminderDue = time.Time{}

	sessionSeconds := int(now.Sub(t.state.OutStartTime).Seconds())

	var sess *models.Session

	if sessionSeconds >= t.state.MinSessionSeconds {
		var data models.Cleaning
		if cleaning != nil {
			data = *cleaning
		}

		s, err := t.db.AddSession(t.state.OutStartTime, now, data)
		if err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}

		sess = s
		t.state.SecondsConsumedToday += sessionSeconds
	}

	t.state.SecondsRemaining = t.BudgetSeconds() - t.state.SecondsConsumedToday
	t.state.IsOut = false
	t.state.OutStartTime = time.Time{}

	return sess, t.save()
}

// Tick recomputes the remaining out time. The result may be negative, which
// is the overtime signal; no clamping is applied. The daily-reset check runs
// first.
func (t *Tracker) Tick() int {
	now := t.now()

	t.checkDailyReset(now)

	if t.state.IsOut && !t.state.OutStartTime.IsZero() {
		open := int(now.Sub(t.state.OutStartTime).Seconds())
		t.state.SecondsRemaining = t.BudgetSeconds() -
			t.state.SecondsConsumedToday - open
	}

	return t.state.SecondsRemaining
}

// CheckDailyReset rolls the committed totals over to a new logical day when
// needed. Repeated calls on the same logical day are no-ops.
func (t *Tracker) CheckDailyReset() bool {
	return t.checkDailyReset(t.now())
}

func (t *Tracker) checkDailyReset(now time.Time) bool {
	logical := timeutil.LogicalDateString(now, t.state.DayResetHour)
	if t.state.LastResetDate == logical {
		return false
	}

	// An open removal spanning the boundary keeps accruing from its
	// original start timestamp; the session is not split at the reset.
	// Whether it should be is unresolved upstream.
	t.state.SecondsConsumedToday = 0
	t.state.SecondsRemaining = t.BudgetSeconds()
	t.state.LastResetDate = logical

	if err := t.save(); err != nil {
		pterm.Error.Printfln("%v", err)
	}

	return true
}

// SetDailyGoal updates the wear goal and immediately recomputes the
// remaining time against the existing committed total.
func (t *Tracker) SetDailyGoal(hours, minutes int) error {
	t.state.DailyGoalHours = hours
	t.state.DailyGoalMinutes = minutes
	t.state.SecondsRemaining = t.BudgetSeconds() - t.state.SecondsConsumedToday

	return t.save()
}

func (t *Tracker) SetDayResetHour(hour int) error {
	if hour < 0 || hour > 23 {
		return errResetHourOutOfRange
	}

	t.state.DayResetHour = hour

	return t.save()
}

func (t *Tracker) SetReminderDelay(minutes int) error {
	t.state.ReminderDelayMinutes = minutes

	return t.save()
}

func (t *Tracker) SetMinSession(seconds int) error {
	t.state.MinSessionSeconds = seconds

	return t.save()
}

// ReloadToday resyncs the committed total from the session store, e.g.
// after sessions were edited, backfilled, or deleted.
func (t *Tracker) ReloadToday() error {
	total := t.db.TodayTotalSeconds(t.state.DayResetHour)

	t.state.SecondsConsumedToday = total
	t.state.SecondsRemaining = t.BudgetSeconds() - total

	return t.save()
}

func (t *Tracker) save() error {
	b, err := json.Marshal(&t.state)
	if err != nil {
		return err
	}

	err = t.snapshots.Save(b)
	if err != nil {
		return fmt.Errorf("saving tracker state: %w", err)
	}

	return nil
}
