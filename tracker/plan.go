package tracker

import (
	"errors"
	"time"

	"traytime/internal/models"
	"traytime/internal/timeutil"
)

var errTrayIndexOutOfRange = errors.New(
	"tray index is out of range for the current plan",
)

// SetupPlan generates a fresh tray plan for both arches: tray i starts
// i*daysPerTray days after startDate. Both current-tray pointers reset to 1.
func (t *Tracker) SetupPlan(
	upperCount, lowerCount, daysPerTray int,
	startDate time.Time,
) error {
	start := timeutil.RoundToStart(startDate)

	generate := func(count int, isUpper bool) []models.Tray {
		trays := make([]models.Tray, 0, count)

		for i := 0; i < count; i++ {
			trays = append(trays, models.Tray{
				TrayNumber: i + 1,
				StartDate:  start.AddDate(0, 0, i*daysPerTray),
				IsUpper:    isUpper,
			})
		}

		return trays
	}

	t.state.UpperTrays = generate(upperCount, true)
	t.state.LowerTrays = generate(lowerCount, false)
	t.state.CurrentUpperTray = 1
	t.state.CurrentLowerTray = 1

	return t.save()
}

// UpdateTrayDate moves the start date of the tray at index and shifts every
// later tray by the same number of days, preserving uniform spacing from
// that point on. Earlier trays are untouched.
func (t *Tracker) UpdateTrayDate(
	isUpper bool,
	index int,
	newDate time.Time,
) error {
	trays := t.state.LowerTrays
	if isUpper {
		trays = t.state.UpperTrays
	}

	if index < 0 || index >= len(trays) {
		return errTrayIndexOutOfRange
	}

	newStart := timeutil.RoundToStart(newDate)
	diffDays := timeutil.DiffDays(trays[index].StartDate, newStart)

	trays[index].StartDate = newStart

	for i := index + 1; i < len(trays); i++ {
		trays[i].StartDate = trays[i].StartDate.AddDate(0, 0, diffDays)
	}

	return t.save()
}

// SetCurrentTray records which tray is in use for an arch. The pointer is
// not validated against the plan length; advancing it is a deliberate user
// action.
func (t *Tracker) SetCurrentTray(isUpper bool, trayNumber int) error {
	if isUpper {
		t.state.CurrentUpperTray = trayNumber
	} else {
		t.state.CurrentLowerTray = trayNumber
	}

	return t.save()
}
