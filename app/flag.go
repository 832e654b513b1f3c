package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the reminder notification that fires after the aligners have been out for too long",
	}

	goalFlag = &cli.StringFlag{
		Name:    "goal",
		Aliases: []string{"g"},
		Usage:   "Daily wear goal (e.g. '22h30m'). The out-time budget is the rest of the day (default: 22h)",
	}

	resetHourFlag = &cli.UintFlag{
		Name:  "reset-hour",
		Usage: "Hour of the day (0-23) at which 'today' rolls over (default: 0)",
	}

	reminderDelayFlag = &cli.UintFlag{
		Name:  "reminder-delay",
		Usage: "Minutes the aligners may be out before the reminder fires (default: 60)",
	}

	minSessionFlag = &cli.UintFlag{
		Name:  "min-session",
		Usage: "Removals shorter than this many seconds are discarded (default: 10)",
	}

	brushingFlag = &cli.BoolFlag{
		Name:    "brushing",
		Aliases: []string{"b"},
		Usage:   "Record that the teeth were brushed during this removal",
	}

	flossingFlag = &cli.BoolFlag{
		Name:    "flossing",
		Aliases: []string{"f"},
		Usage:   "Record that the teeth were flossed during this removal",
	}

	mouthwashFlag = &cli.BoolFlag{
		Name:    "mouthwash",
		Aliases: []string{"m"},
		Usage:   "Record that mouthwash was used during this removal",
	}

	taskFlag = &cli.Int64Flag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "ID of the cleaning task this removal counts towards",
	}

	idFlag = &cli.Int64Flag{
		Name:  "id",
		Usage: "Session or task ID",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "A calendar date (e.g. '2026-08-30'). Defaults to today",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Session start time (e.g. '2026-08-30 13:00')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Session end time (e.g. '2026-08-30 13:45')",
	}

	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Include everything, not just the default selection",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: day, week, or month (default: week)",
		Value:   "week",
	}

	yearFlag = &cli.IntFlag{
		Name:  "year",
		Usage: "Reporting year for monthly stats. Defaults to the current year",
	}

	monthFlag = &cli.IntFlag{
		Name:  "month",
		Usage: "Reporting month (1-12) for monthly stats. Defaults to the current month",
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Cleaning task name",
	}

	timeFlag = &cli.StringFlag{
		Name:  "time",
		Usage: "Scheduled time of day for the task (HH:MM)",
	}

	upperCountFlag = &cli.IntFlag{
		Name:  "upper",
		Usage: "Number of upper trays in the plan",
	}

	lowerCountFlag = &cli.IntFlag{
		Name:  "lower",
		Usage: "Number of lower trays in the plan",
	}

	daysPerTrayFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Days each tray is worn before changing to the next",
		Value: 14,
	}

	upperArchFlag = &cli.BoolFlag{
		Name:  "upper-arch",
		Usage: "Apply to the upper arch (default: lower)",
	}

	trayFlag = &cli.IntFlag{
		Name:  "tray",
		Usage: "Tray number (1-indexed)",
	}
)
