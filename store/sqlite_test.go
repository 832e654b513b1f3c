package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"traytime/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(":memory:")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func mustAddSession(
	t *testing.T,
	c *Client,
	start time.Time,
	minutes int,
	cleaning models.Cleaning,
) *models.Session {
	t.Helper()

	sess, err := c.AddSession(
		start,
		start.Add(time.Duration(minutes)*time.Minute),
		cleaning,
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	return sess
}

func TestSessionRoundTrip(t *testing.T) {
	c := newTestClient(t)

	start := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	taskID := int64(7)

	added := mustAddSession(t, c, start, 25, models.Cleaning{
		Brushing: true,
		Flossing: true,
		TaskID:   &taskID,
	})

	if added.DurationSeconds != 25*60 {
		t.Errorf(
			"Expected duration to be: %d, but got: %d",
			25*60,
			added.DurationSeconds,
		)
	}

	if added.Date != "2026-03-10" {
		t.Errorf(
			"Expected date to be: 2026-03-10, but got: %s",
			added.Date,
		)
	}

	sessions, err := c.DaySessions("2026-03-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, but got: %d", len(sessions))
	}

	if diff := cmp.Diff(*added, sessions[0]); diff != "" {
		t.Errorf("Stored session did not match:\n%s", diff)
	}
}

func TestDaySessionsOrdering(t *testing.T) {
	c := newTestClient(t)

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)

	evening := mustAddSession(t, c, day.Add(20*time.Hour), 15, models.Cleaning{})
	morning := mustAddSession(t, c, day.Add(8*time.Hour), 30, models.Cleaning{})
	noon := mustAddSession(t, c, day.Add(12*time.Hour), 20, models.Cleaning{})

	sessions, err := c.DaySessions("2026-03-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantOrder := []int64{morning.ID, noon.ID, evening.ID}

	if len(sessions) != len(wantOrder) {
		t.Fatalf("Expected %d sessions, but got: %d", len(wantOrder), len(sessions))
	}

	for i, want := range wantOrder {
		if sessions[i].ID != want {
			t.Errorf(
				"Expected session at position %d to be: %d, but got: %d",
				i,
				want,
				sessions[i].ID,
			)
		}
	}
}

func TestUpdateSessionRecomputesDerivedFields(t *testing.T) {
	c := newTestClient(t)

	start := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	sess := mustAddSession(t, c, start, 25, models.Cleaning{})

	newStart := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.Local)
	newEnd := newStart.Add(40 * time.Minute)

	err := c.UpdateSession(sess.ID, newStart, newEnd)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sessions, err := c.DaySessions("2026-03-11")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sessions) != 1 {
		t.Fatalf("Expected the session to move to the new date")
	}

	if sessions[0].DurationSeconds != 40*60 {
		t.Errorf(
			"Expected duration to be: %d, but got: %d",
			40*60,
			sessions[0].DurationSeconds,
		)
	}

	old, err := c.DaySessions("2026-03-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(old) != 0 {
		t.Errorf("Expected no sessions left on the old date, but got: %d", len(old))
	}
}

func TestDeleteSession(t *testing.T) {
	c := newTestClient(t)

	start := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	sess := mustAddSession(t, c, start, 25, models.Cleaning{})

	err := c.DeleteSession(sess.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sessions, err := c.History()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sessions) != 0 {
		t.Errorf("Expected no sessions, but got: %d", len(sessions))
	}
}

func TestWeekStats(t *testing.T) {
	c := newTestClient(t)

	// Monday, March 9th 2026.
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)

	mustAddSession(t, c, monday.Add(10*time.Hour), 30, models.Cleaning{})
	mustAddSession(t, c, monday.Add(14*time.Hour), 30, models.Cleaning{})
	mustAddSession(t, c, monday.AddDate(0, 0, 2).Add(10*time.Hour), 60, models.Cleaning{})
	// Outside the week.
	mustAddSession(t, c, monday.AddDate(0, 0, 7).Add(10*time.Hour), 90, models.Cleaning{})

	stats := c.WeekStats(monday)

	if stats.TotalSeconds != 2*3600 {
		t.Errorf(
			"Expected total to be: %d, but got: %d",
			2*3600,
			stats.TotalSeconds,
		)
	}

	if stats.DaysWithData != 2 {
		t.Errorf("Expected 2 days with data, but got: %d", stats.DaysWithData)
	}

	// The average divides by days with data, not days in the period.
	if stats.AverageSeconds != 3600 {
		t.Errorf(
			"Expected average to be: %d, but got: %d",
			3600,
			stats.AverageSeconds,
		)
	}

	wantData := []models.DailyStat{
		{Date: "2026-03-09", TotalSeconds: 3600},
		{Date: "2026-03-11", TotalSeconds: 3600},
	}

	if diff := cmp.Diff(wantData, stats.Data); diff != "" {
		t.Errorf("Per-day totals did not match:\n%s", diff)
	}
}

func TestMonthStats(t *testing.T) {
	c := newTestClient(t)

	mustAddSession(
		t,
		c,
		time.Date(2026, time.February, 1, 10, 0, 0, 0, time.Local),
		45,
		models.Cleaning{},
	)
	mustAddSession(
		t,
		c,
		time.Date(2026, time.February, 28, 10, 0, 0, 0, time.Local),
		15,
		models.Cleaning{},
	)
	// The next month is excluded.
	mustAddSession(
		t,
		c,
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.Local),
		60,
		models.Cleaning{},
	)

	stats := c.MonthStats(2026, time.February)

	if stats.TotalSeconds != 3600 {
		t.Errorf(
			"Expected total to be: %d, but got: %d",
			3600,
			stats.TotalSeconds,
		)
	}

	if stats.DaysWithData != 2 {
		t.Errorf("Expected 2 days with data, but got: %d", stats.DaysWithData)
	}
}

func TestStatsEmptyPeriod(t *testing.T) {
	c := newTestClient(t)

	stats := c.DayStats("2026-03-10")

	if stats.TotalSeconds != 0 || stats.AverageSeconds != 0 ||
		stats.DaysWithData != 0 {
		t.Errorf("Expected a zero-valued result, but got: %+v", stats)
	}

	if stats.Data == nil {
		t.Error("Expected an empty slice rather than nil data")
	}
}

func TestCleaningTaskSoftDelete(t *testing.T) {
	c := newTestClient(t)

	id, err := c.AddCleaningTask("Morning clean", "08:00", true, true, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = c.DeleteCleaningTask(id)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	active, err := c.CleaningTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(active) != 0 {
		t.Errorf("Expected no active tasks, but got: %d", len(active))
	}

	all, err := c.AllCleaningTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(all) != 1 {
		t.Fatalf("Expected the soft-deleted task to remain, but got: %d", len(all))
	}

	if all[0].IsActive {
		t.Error("Expected the task to be marked inactive")
	}

	err = c.PermanentlyDeleteCleaningTask(id)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	all, err = c.AllCleaningTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(all) != 0 {
		t.Errorf("Expected no tasks after a purge, but got: %d", len(all))
	}
}

func TestDayCleaningStatus(t *testing.T) {
	c := newTestClient(t)

	brushOnly, err := c.AddCleaningTask("Quick brush", "08:00", true, false, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	full, err := c.AddCleaningTask("Evening clean", "21:00", true, true, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)

	// Satisfies the brush-only task; flossing is not required so its
	// absence does not matter.
	mustAddSession(t, c, day.Add(8*time.Hour), 20, models.Cleaning{
		Brushing: true,
		TaskID:   &brushOnly,
	})

	// References the full task but misses mouthwash.
	mustAddSession(t, c, day.Add(21*time.Hour), 20, models.Cleaning{
		Brushing: true,
		Flossing: true,
		TaskID:   &full,
	})

	status := c.DayCleaningStatus("2026-03-10")

	if status.TotalTasks != 2 {
		t.Errorf("Expected 2 total tasks, but got: %d", status.TotalTasks)
	}

	if status.CompletedTasks != 1 {
		t.Errorf("Expected 1 completed task, but got: %d", status.CompletedTasks)
	}

	if status.AllTasksCompleted {
		t.Error("Expected the day to be incomplete")
	}
}

func TestDayCleaningStatusNoTasks(t *testing.T) {
	c := newTestClient(t)

	status := c.DayCleaningStatus("2026-03-10")

	if !status.AllTasksCompleted {
		t.Error("Expected a day with no tasks to be vacuously complete")
	}

	if status.TotalTasks != 0 || status.CompletedTasks != 0 {
		t.Errorf("Expected zero task counts, but got: %+v", status)
	}
}

func TestCleaningStatusRange(t *testing.T) {
	c := newTestClient(t)

	id, err := c.AddCleaningTask("Morning clean", "08:00", true, false, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	start := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 2)

	mustAddSession(t, c, start.Add(8*time.Hour), 20, models.Cleaning{
		Brushing: true,
		TaskID:   &id,
	})

	statuses := c.CleaningStatusRange(start, end)

	if len(statuses) != 3 {
		t.Fatalf("Expected 3 days of statuses, but got: %d", len(statuses))
	}

	if !statuses["2026-03-09"].AllTasksCompleted {
		t.Error("Expected March 9th to be complete")
	}

	if statuses["2026-03-10"].AllTasksCompleted {
		t.Error("Expected March 10th to be incomplete")
	}
}

func TestDanglingTaskReference(t *testing.T) {
	c := newTestClient(t)

	id, err := c.AddCleaningTask("Morning clean", "08:00", true, false, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	start := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.Local)
	mustAddSession(t, c, start, 20, models.Cleaning{
		Brushing: true,
		TaskID:   &id,
	})

	err = c.PermanentlyDeleteCleaningTask(id)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The session keeps its reference to the deleted task.
	sessions, err := c.DaySessions("2026-03-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sessions) != 1 {
		t.Fatalf("Expected the session to survive, but got: %d", len(sessions))
	}

	if sessions[0].CleaningTaskID == nil {
		t.Fatal("Expected the task reference to remain")
	}

	if *sessions[0].CleaningTaskID != id {
		t.Errorf(
			"Expected the task reference to be: %d, but got: %d",
			id,
			*sessions[0].CleaningTaskID,
		)
	}
}

func TestReset(t *testing.T) {
	c := newTestClient(t)

	start := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	mustAddSession(t, c, start, 25, models.Cleaning{})

	_, err := c.AddCleaningTask("Morning clean", "08:00", true, false, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err = c.Reset()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sessions, err := c.History()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(sessions) != 0 {
		t.Errorf("Expected no sessions after a reset, but got: %d", len(sessions))
	}

	tasks, err := c.AllCleaningTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tasks) != 0 {
		t.Errorf("Expected no tasks after a reset, but got: %d", len(tasks))
	}
}
