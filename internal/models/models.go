package models

import (
	"time"
)

// Cleaning captures the hygiene actions performed during a removal and the
// scheduled task (if any) they count towards.
type Cleaning struct {
	Brushing  bool   `json:"brushing"`
	Flossing  bool   `json:"flossing"`
	Mouthwash bool   `json:"mouthwash"`
	TaskID    *int64 `json:"task_id"`
}

// Session is a completed interval during which the aligners were out.
type Session struct {
	ID              int64     `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds int       `json:"duration_seconds"`
	// Date is the local calendar date of StartTime (YYYY-MM-DD) and is the
	// grouping key for all aggregate queries.
	Date           string `json:"date"`
	Brushing       bool   `json:"brushing"`
	Flossing       bool   `json:"flossing"`
	Mouthwash      bool   `json:"mouthwash"`
	CleaningTaskID *int64 `json:"cleaning_task_id"`
}

// CleaningTask is a named, recurring hygiene reminder.
type CleaningTask struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	ScheduledTime     string `json:"scheduled_time"` // HH:MM
	RequiresBrushing  bool   `json:"requires_brushing"`
	RequiresFlossing  bool   `json:"requires_flossing"`
	RequiresMouthwash bool   `json:"requires_mouthwash"`
	IsActive          bool   `json:"is_active"`
}

// DailyStat is the total out time recorded for a single date.
type DailyStat struct {
	Date         string `json:"date"`
	TotalSeconds int    `json:"total_seconds"`
}

// PeriodStats aggregates daily totals over a reporting period.
type PeriodStats struct {
	Data           []DailyStat `json:"data"`
	TotalSeconds   int         `json:"total_seconds"`
	AverageSeconds int         `json:"average_seconds"`
	DaysWithData   int         `json:"days_with_data"`
}

// DayCleaningStatus reports how many of the active cleaning tasks were
// completed on a given date.
type DayCleaningStatus struct {
	Date              string `json:"date"`
	AllTasksCompleted bool   `json:"all_tasks_completed"`
	CompletedTasks    int    `json:"completed_tasks"`
	TotalTasks        int    `json:"total_tasks"`
}

// Tray is one aligner in the sequential replacement plan for an arch.
type Tray struct {
	TrayNumber int       `json:"tray_number"` // 1-indexed, contiguous
	StartDate  time.Time `json:"start_date"`
	IsUpper    bool      `json:"is_upper"`
}
