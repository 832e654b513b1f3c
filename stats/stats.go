// Package stats reports aligner out-time statistics.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"traytime/internal/models"
	"traytime/internal/timeutil"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

const secondsInAMinute = 60

// Report is a rendered statistics view over one reporting period.
type Report struct {
	Title    string
	Stats    models.PeriodStats
	Cleaning map[string]models.DayCleaningStatus
}

// getSummary renders the total, average, and day count for the period.
func getSummary(ps models.PeriodStats) string {
	header := fmt.Sprintf("%s\n", pterm.LightBlue("Summary"))

	total := durafmt.Parse(time.Duration(ps.TotalSeconds) * time.Second).
		LimitToUnit("hours").LimitFirstN(2)
	avg := durafmt.Parse(time.Duration(ps.AverageSeconds) * time.Second).
		LimitToUnit("hours").LimitFirstN(2)

	timeOut := fmt.Sprintf(
		"Time out: %s\n",
		pterm.LightGreen(total),
	)

	avgPerDay := fmt.Sprintf(
		"Average per day: %s\n",
		pterm.LightGreen(avg),
	)

	daysWithData := fmt.Sprintln(
		"Days with sessions:",
		pterm.LightGreen(ps.DaysWithData),
	)

	return header + timeOut + avgPerDay + daysWithData
}

// getBarChart renders out time per day in minutes.
func getBarChart(data []models.DailyStat) string {
	if len(data) == 0 {
		return ""
	}

	header := pterm.LightBlue("\nDaily breakdown (minutes)")

	sorted := make([]models.DailyStat, len(data))
	copy(sorted, data)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var bars pterm.Bars

	for _, day := range sorted {
		label := day.Date

		date, err := dateparse.ParseAny(day.Date)
		if err == nil {
			label = fmt.Sprintf(
				"%s %02d, %d",
				date.Month().String(),
				date.Day(),
				date.Year(),
			)
		}

		bars = append(bars, pterm.Bar{
			Value: day.TotalSeconds / secondsInAMinute,
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// getCleaning renders per-day cleaning task completion.
func getCleaning(cleaning map[string]models.DayCleaningStatus) string {
	if len(cleaning) == 0 {
		return ""
	}

	dates := make([]string, 0, len(cleaning))
	for date := range cleaning {
		dates = append(dates, date)
	}

	sort.Strings(dates)

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", pterm.LightBlue("Cleaning tasks")))

	for _, date := range dates {
		status := cleaning[date]
		if status.TotalTasks == 0 {
			continue
		}

		mark := pterm.LightRed("✗")
		if status.AllTasksCompleted {
			mark = pterm.LightGreen("✓")
		}

		builder.WriteString(fmt.Sprintf(
			"%s: %d/%d %s\n",
			date,
			status.CompletedTasks,
			status.TotalTasks,
			mark,
		))
	}

	return builder.String()
}

// Render writes the report to w.
func (r *Report) Render(w io.Writer) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Reporting period: %s", r.Title)

	if r.Stats.DaysWithData == 0 {
		fmt.Fprintln(w, strings.TrimSpace(header))
		pterm.Info.Println(noSessionsMsg)

		return
	}

	output := fmt.Sprint(
		header,
		getSummary(r.Stats),
		getBarChart(r.Stats.Data),
		getCleaning(r.Cleaning),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}

// DayTitle formats the reporting period for a single date.
func DayTitle(date time.Time) string {
	return date.Format("January 02, 2006")
}

// RangeTitle formats the reporting period for a date range.
func RangeTitle(start, end time.Time) string {
	return start.Format("January 02, 2006") + " - " +
		end.Format("January 02, 2006")
}

// WeekOf returns the Monday starting the week containing t.
func WeekOf(t time.Time) time.Time {
	return timeutil.WeekStart(t)
}
