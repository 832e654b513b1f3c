package app

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"traytime/config"
	"traytime/internal/models"
	"traytime/internal/timeutil"
	"traytime/internal/ui"
	"traytime/reminder"
	"traytime/stats"
)

var (
	errMissingID = errors.New(
		"please specify a session or task id with --id",
	)
	errMissingBounds = errors.New(
		"please specify both --start and --end",
	)
	errTaskNameEmpty = errors.New(
		"the task name must not be empty",
	)
	errTaskNoRequirement = errors.New(
		"a cleaning task must require at least one of brushing, flossing, or mouthwash",
	)
	errInvalidScheduledTime = errors.New(
		"the scheduled time must be in HH:MM format",
	)
	errInvalidPeriod = errors.New(
		"please provide a valid reporting period: day, week, or month",
	)
	errNotOut = errors.New(
		"the aligners are not out right now",
	)
	errPlanFlags = errors.New(
		"please specify --upper, --lower, and --start for the new plan",
	)
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// statusAction is the default action: a short report of the tracker state.
func statusAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	remaining := t.Tick()
	state := t.State()
	cfg := config.Tracker(ctx)

	if state.IsOut {
		pterm.Printfln(
			"%s since %s",
			ui.Red("[Aligners out]"),
			ui.Highlight(state.OutStartTime.Format(clockFormat(cfg))),
		)
	} else {
		pterm.Printfln("%s", ui.Green("[Aligners in]"))
	}

	budget := t.BudgetSeconds()

	pterm.Printfln(
		"Out time used today: %s of %s",
		ui.Highlight(formatSeconds(budget-remaining)),
		formatSeconds(budget),
	)

	if remaining >= 0 {
		pterm.Printfln("Remaining: %s", ui.Green(formatSeconds(remaining)))
	} else {
		pterm.Printfln("Overtime: %s", ui.Red(formatSeconds(remaining)))
	}

	if len(state.UpperTrays) > 0 || len(state.LowerTrays) > 0 {
		pterm.Printfln(
			"Current trays: upper %s of %d, lower %s of %d",
			ui.Highlight(state.CurrentUpperTray),
			len(state.UpperTrays),
			ui.Highlight(state.CurrentLowerTray),
			len(state.LowerTrays),
		)
	}

	return nil
}

// toggleAction flips the aligner state, attaching hygiene data on reinsert.
func toggleAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	wasOut := t.State().IsOut

	sess, err := t.Toggle(cleaningFromFlags(ctx))
	if err != nil {
		return err
	}

	if !wasOut {
		state := t.State()
		pterm.Info.Printfln(
			"Aligners out. Reminder in %d minutes (%s).",
			state.ReminderDelayMinutes,
			state.ReminderDue.Format("15:04"),
		)
		pterm.Info.Println(
			"Run 'traytime watch' for a live countdown, or 'traytime toggle' when they are back in.",
		)

		return nil
	}

	if sess == nil {
		pterm.Info.Println(
			"Aligners back in. The removal was too short to be recorded.",
		)

		return nil
	}

	pterm.Success.Printfln(
		"Aligners back in. Recorded %s out.",
		formatSeconds(sess.DurationSeconds),
	)

	remaining := t.Tick()
	if remaining >= 0 {
		pterm.Printfln("Remaining today: %s", ui.Green(formatSeconds(remaining)))
	} else {
		pterm.Printfln("Overtime: %s", ui.Red(formatSeconds(remaining)))
	}

	return nil
}

// countdown prints the remaining out time for the watch loop.
func countdown(remaining int) {
	secs := remaining
	label := "remaining"

	if secs < 0 {
		secs = -secs
		label = "overtime"
	}

	fmt.Fprintf(
		os.Stdout,
		"\r🕒%s:%s:%s %s",
		pterm.Yellow(fmt.Sprintf("%02d", secs/3600)),
		pterm.Yellow(fmt.Sprintf("%02d", secs%3600/60)),
		pterm.Yellow(fmt.Sprintf("%02d", secs%60)),
		label,
	)
}

// watchAction runs a live countdown until the aligners are put back in. The
// reminder fires from here if its due time passes while watching.
func watchAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	if !t.State().IsOut {
		return errNotOut
	}

	pterm.Info.Println("Press ENTER to put the aligners back in, Ctrl-C to leave them out.")

	enter := make(chan struct{})

	go func() {
		reader := bufio.NewReader(os.Stdin)
		_, _ = reader.ReadString('\n')
		close(enter)
	}()

	var reminded bool

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-enter:
			fmt.Fprintln(os.Stdout)

			sess, err := t.Toggle(cleaningFromFlags(ctx))
			if err != nil {
				return err
			}

			if sess == nil {
				pterm.Info.Println("The removal was too short to be recorded.")
				return nil
			}

			pterm.Success.Printfln(
				"Recorded %s out.",
				formatSeconds(sess.DurationSeconds),
			)

			return nil
		case <-ticker.C:
			remaining := t.Tick()

			due := t.State().ReminderDue
			if !reminded && !due.IsZero() && time.Now().After(due) {
				reminder.Fire()

				reminded = true
			}

			countdown(remaining)
		}
	}
}

// printSessionsTable prints a session table to the command line.
func printSessionsTable(
	cfg *config.TrackerConfig,
	sessions []models.Session,
) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		taskRef := "-"
		if sess.CleaningTaskID != nil {
			taskRef = strconv.FormatInt(*sess.CleaningTaskID, 10)
		}

		row := []string{
			strconv.FormatInt(sess.ID, 10),
			sess.StartTime.Format(clockFormat(cfg)),
			sess.EndTime.Format(clockFormat(cfg)),
			formatSeconds(sess.DurationSeconds),
			yesNoMark(sess.Brushing),
			yesNoMark(sess.Flossing),
			yesNoMark(sess.Mouthwash),
			taskRef,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"ID", "START", "END", "OUT FOR", "BRUSH", "FLOSS", "RINSE", "TASK"},
	}, tableBody...)

	ui.PrintTable(tableBody, cfg.Stdout)
}

// logAction lists sessions for a day, or the full history with --all.
func logAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	cfg := config.Tracker(ctx)

	var sessions []models.Session

	if ctx.Bool("all") {
		sessions, err = db.History()
	} else {
		var date time.Time

		date, err = parseDateFlag(ctx, "date")
		if err != nil {
			return err
		}

		day := timeutil.DateString(date)
		if !ctx.IsSet("date") {
			day = timeutil.LogicalDateString(date, t.State().DayResetHour)
		}

		sessions, err = db.DaySessions(day)
	}

	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(sessions)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(sessions) == 0 {
		pterm.Info.Println("No sessions found for the specified time range")
		return nil
	}

	printSessionsTable(cfg, sessions)

	return nil
}

// backfillAction records a past session manually.
func backfillAction(ctx *cli.Context) error {
	if ctx.String("start") == "" || ctx.String("end") == "" {
		return errMissingBounds
	}

	start, err := dateparse.ParseIn(ctx.String("start"), time.Local)
	if err != nil {
		return err
	}

	end, err := dateparse.ParseIn(ctx.String("end"), time.Local)
	if err != nil {
		return err
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	if err := validateSessionBounds(db, t, start, end, 0); err != nil {
		return err
	}

	var cleaning models.Cleaning
	if c := cleaningFromFlags(ctx); c != nil {
		cleaning = *c
	}

	sess, err := db.AddSession(start, end, cleaning)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Recorded %s out on %s.",
		formatSeconds(sess.DurationSeconds),
		sess.Date,
	)

	return t.ReloadToday()
}

// editAction rewrites a session's bounds and/or hygiene data.
func editAction(ctx *cli.Context) error {
	if !ctx.IsSet("id") {
		return errMissingID
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	sess, err := findSession(db, ctx.Int64("id"))
	if err != nil {
		return err
	}

	if ctx.String("start") != "" || ctx.String("end") != "" {
		start := sess.StartTime
		end := sess.EndTime

		if s := ctx.String("start"); s != "" {
			start, err = dateparse.ParseIn(s, time.Local)
			if err != nil {
				return err
			}
		}

		if e := ctx.String("end"); e != "" {
			end, err = dateparse.ParseIn(e, time.Local)
			if err != nil {
				return err
			}
		}

		err = validateSessionBounds(db, t, start, end, sess.ID)
		if err != nil {
			return err
		}

		err = db.UpdateSession(sess.ID, start, end)
		if err != nil {
			return err
		}
	}

	if c := cleaningFromFlags(ctx); c != nil {
		err = db.UpdateSessionCleaning(sess.ID, *c)
		if err != nil {
			return err
		}
	}

	pterm.Success.Printfln("Session %d updated.", sess.ID)

	return t.ReloadToday()
}

// deleteAction removes a session.
func deleteAction(ctx *cli.Context) error {
	if !ctx.IsSet("id") {
		return errMissingID
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	sess, err := findSession(db, ctx.Int64("id"))
	if err != nil {
		return err
	}

	err = db.DeleteSession(sess.ID)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Session %d deleted.", sess.ID)

	return t.ReloadToday()
}

// statsAction reports out-time statistics for the selected period.
func statsAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	cfg := config.Tracker(ctx)

	_ = t.Tick()

	anchor, err := parseDateFlag(ctx, "date")
	if err != nil {
		return err
	}

	report := &stats.Report{}

	switch strings.TrimSpace(ctx.String("period")) {
	case "day":
		date := timeutil.DateString(anchor)
		report.Title = stats.DayTitle(anchor)
		report.Stats = db.DayStats(date)
		report.Cleaning = db.CleaningStatusRange(anchor, anchor)
	case "week":
		monday := stats.WeekOf(anchor)
		sunday := monday.AddDate(0, 0, 6)
		report.Title = stats.RangeTitle(monday, sunday)
		report.Stats = db.WeekStats(monday)
		report.Cleaning = db.CleaningStatusRange(monday, sunday)
	case "month":
		year := anchor.Year()
		if ctx.IsSet("year") {
			year = ctx.Int("year")
		}

		month := anchor.Month()
		if ctx.IsSet("month") {
			month, err = monthFromNumber(ctx.Int("month"))
			if err != nil {
				return err
			}
		}

		start, end := timeutil.MonthBounds(year, month)
		report.Title = stats.RangeTitle(start, end)
		report.Stats = db.MonthStats(year, month)
		report.Cleaning = db.CleaningStatusRange(start, end)
	default:
		return errInvalidPeriod
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(report)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	report.Render(cfg.Stdout)

	return nil
}

// validateTask applies the task rules at the collaborator boundary: a
// non-empty name, an HH:MM schedule, and at least one requirement.
func validateTask(ctx *cli.Context) error {
	if strings.TrimSpace(ctx.String("name")) == "" {
		return errTaskNameEmpty
	}

	if _, err := time.Parse("15:04", ctx.String("time")); err != nil {
		return errInvalidScheduledTime
	}

	if !ctx.Bool("brushing") && !ctx.Bool("flossing") &&
		!ctx.Bool("mouthwash") {
		return errTaskNoRequirement
	}

	return nil
}

func listTasksAction(ctx *cli.Context) error {
	_, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	cfg := config.Tracker(ctx)

	var tasks []models.CleaningTask

	if ctx.Bool("all") {
		tasks, err = db.AllCleaningTasks()
	} else {
		tasks, err = db.CleaningTasks()
	}

	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		pterm.Info.Println("No cleaning tasks found")
		return nil
	}

	tableBody := make([][]string, len(tasks))

	for i, task := range tasks {
		active := ui.Green("active")
		if !task.IsActive {
			active = ui.Red("inactive")
		}

		tableBody[i] = []string{
			strconv.FormatInt(task.ID, 10),
			task.Name,
			task.ScheduledTime,
			yesNoMark(task.RequiresBrushing),
			yesNoMark(task.RequiresFlossing),
			yesNoMark(task.RequiresMouthwash),
			active,
		}
	}

	tableBody = append([][]string{
		{"ID", "NAME", "TIME", "BRUSH", "FLOSS", "RINSE", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, cfg.Stdout)

	return nil
}

func addTaskAction(ctx *cli.Context) error {
	if err := validateTask(ctx); err != nil {
		return err
	}

	_, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	id, err := db.AddCleaningTask(
		strings.TrimSpace(ctx.String("name")),
		ctx.String("time"),
		ctx.Bool("brushing"),
		ctx.Bool("flossing"),
		ctx.Bool("mouthwash"),
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Cleaning task %d added.", id)

	return nil
}

func editTaskAction(ctx *cli.Context) error {
	if !ctx.IsSet("id") {
		return errMissingID
	}

	if err := validateTask(ctx); err != nil {
		return err
	}

	_, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = db.UpdateCleaningTask(
		ctx.Int64("id"),
		strings.TrimSpace(ctx.String("name")),
		ctx.String("time"),
		ctx.Bool("brushing"),
		ctx.Bool("flossing"),
		ctx.Bool("mouthwash"),
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Cleaning task %d updated.", ctx.Int64("id"))

	return nil
}

func deleteTaskAction(ctx *cli.Context) error {
	if !ctx.IsSet("id") {
		return errMissingID
	}

	_, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = db.DeleteCleaningTask(ctx.Int64("id"))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Cleaning task %d deactivated.", ctx.Int64("id"))

	return nil
}

func purgeTaskAction(ctx *cli.Context) error {
	if !ctx.IsSet("id") {
		return errMissingID
	}

	_, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = db.PermanentlyDeleteCleaningTask(ctx.Int64("id"))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Cleaning task %d deleted.", ctx.Int64("id"))

	return nil
}

func setupPlanAction(ctx *cli.Context) error {
	if !ctx.IsSet("upper") || !ctx.IsSet("lower") ||
		ctx.String("start") == "" {
		return errPlanFlags
	}

	start, err := dateparse.ParseIn(ctx.String("start"), time.Local)
	if err != nil {
		return err
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = t.SetupPlan(
		ctx.Int("upper"),
		ctx.Int("lower"),
		ctx.Int("days"),
		start,
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Plan created: %d upper and %d lower trays, %d days each.",
		ctx.Int("upper"),
		ctx.Int("lower"),
		ctx.Int("days"),
	)

	return nil
}

func showPlanAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	cfg := config.Tracker(ctx)
	state := t.State()

	if len(state.UpperTrays) == 0 && len(state.LowerTrays) == 0 {
		pterm.Info.Println("No tray plan configured. Run 'traytime plan setup' first.")
		return nil
	}

	rows := len(state.UpperTrays)
	if len(state.LowerTrays) > rows {
		rows = len(state.LowerTrays)
	}

	trayCell := func(trays []models.Tray, current, i int) string {
		if i >= len(trays) {
			return ""
		}

		cell := trays[i].StartDate.Format("Jan 02, 2006")
		if trays[i].TrayNumber == current {
			cell += " " + ui.Yellow("(current)")
		}

		return cell
	}

	tableBody := make([][]string, rows)

	for i := 0; i < rows; i++ {
		tableBody[i] = []string{
			strconv.Itoa(i + 1),
			trayCell(state.UpperTrays, state.CurrentUpperTray, i),
			trayCell(state.LowerTrays, state.CurrentLowerTray, i),
		}
	}

	tableBody = append([][]string{
		{"TRAY", "UPPER FROM", "LOWER FROM"},
	}, tableBody...)

	ui.PrintTable(tableBody, cfg.Stdout)

	return nil
}

func setTrayDateAction(ctx *cli.Context) error {
	if !ctx.IsSet("tray") || ctx.String("date") == "" {
		return errors.New("please specify --tray and --date")
	}

	newDate, err := dateparse.ParseIn(ctx.String("date"), time.Local)
	if err != nil {
		return err
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = t.UpdateTrayDate(
		ctx.Bool("upper-arch"),
		ctx.Int("tray")-1,
		newDate,
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Tray %d moved to %s; later trays shifted to match.",
		ctx.Int("tray"),
		newDate.Format("Jan 02, 2006"),
	)

	return nil
}

func setCurrentTrayAction(ctx *cli.Context) error {
	if !ctx.IsSet("tray") {
		return errors.New("please specify --tray")
	}

	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	err = t.SetCurrentTray(ctx.Bool("upper-arch"), ctx.Int("tray"))
	if err != nil {
		return err
	}

	arch := "lower"
	if ctx.Bool("upper-arch") {
		arch = "upper"
	}

	pterm.Success.Printfln("Current %s tray set to %d.", arch, ctx.Int("tray"))

	return nil
}

// setAction updates tracker settings in the persisted state.
func setAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	var changed bool

	if goal := ctx.String("goal"); goal != "" {
		hours, minutes, err := config.ParseGoal(goal)
		if err != nil {
			return err
		}

		if err := t.SetDailyGoal(hours, minutes); err != nil {
			return err
		}

		changed = true
	}

	if ctx.IsSet("reset-hour") {
		if err := t.SetDayResetHour(int(ctx.Uint("reset-hour"))); err != nil {
			return err
		}

		changed = true
	}

	if ctx.IsSet("reminder-delay") {
		if err := t.SetReminderDelay(int(ctx.Uint("reminder-delay"))); err != nil {
			return err
		}

		changed = true
	}

	if ctx.IsSet("min-session") {
		if err := t.SetMinSession(int(ctx.Uint("min-session"))); err != nil {
			return err
		}

		changed = true
	}

	if !changed {
		pterm.Info.Println("Nothing to change. See 'traytime set --help' for the available settings.")
		return nil
	}

	pterm.Success.Println("Settings updated.")

	return nil
}

// resetDBAction wipes all sessions and cleaning tasks after confirmation.
func resetDBAction(ctx *cli.Context) error {
	t, db, snap, err := openTracker(ctx)
	if err != nil {
		return err
	}
	defer closeStores(db, snap)

	fmt.Fprint(
		os.Stdout,
		"This will delete ALL sessions and cleaning tasks. Type 'yes' to continue: ",
	)

	reader := bufio.NewReader(os.Stdin)

	input, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	if strings.TrimSpace(input) != "yes" {
		pterm.Info.Println("Aborted.")
		return nil
	}

	if err := db.Reset(); err != nil {
		return err
	}

	pterm.Success.Println("Database reset.")

	return t.ReloadToday()
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Tracker(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}
