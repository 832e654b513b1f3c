package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"traytime/internal/models"
	"traytime/internal/timeutil"
)

// Client is a SQLite database client.
type Client struct {
	db *sql.DB
}

// NewClient opens or creates the session database at dbPath and ensures the
// schema exists.
func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db: db}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) createTables() error {
	// cleaningTaskId deliberately carries no foreign-key constraint:
	// sessions may reference a deleted task.
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		startTime INTEGER NOT NULL,
		endTime INTEGER NOT NULL,
		durationSeconds INTEGER NOT NULL,
		date TEXT NOT NULL,
		brushing INTEGER DEFAULT 0,
		flossing INTEGER DEFAULT 0,
		mouthwash INTEGER DEFAULT 0,
		cleaningTaskId INTEGER DEFAULT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);

	CREATE TABLE IF NOT EXISTS cleaning_tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		scheduledTime TEXT NOT NULL,
		requiresBrushing INTEGER DEFAULT 1,
		requiresFlossing INTEGER DEFAULT 0,
		requiresMouthwash INTEGER DEFAULT 0,
		isActive INTEGER DEFAULT 1
	);
	`

	_, err := c.db.Exec(schema)

	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func taskID(cleaning models.Cleaning) any {
	if cleaning.TaskID == nil {
		return nil
	}

	return *cleaning.TaskID
}

func (c *Client) AddSession(
	start, end time.Time,
	cleaning models.Cleaning,
) (*models.Session, error) {
	duration := int(end.Sub(start).Seconds())
	date := timeutil.DateString(start)

	res, err := c.db.Exec(
		`INSERT INTO sessions
		(startTime, endTime, durationSeconds, date, brushing, flossing, mouthwash, cleaningTaskId)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		timeutil.ToMillis(start),
		timeutil.ToMillis(end),
		duration,
		date,
		boolToInt(cleaning.Brushing),
		boolToInt(cleaning.Flossing),
		boolToInt(cleaning.Mouthwash),
		taskID(cleaning),
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:              id,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: duration,
		Date:            date,
		Brushing:        cleaning.Brushing,
		Flossing:        cleaning.Flossing,
		Mouthwash:       cleaning.Mouthwash,
		CleaningTaskID:  cleaning.TaskID,
	}, nil
}

func scanSessions(rows *sql.Rows) ([]models.Session, error) {
	defer rows.Close()

	var sessions []models.Session

	for rows.Next() {
		var (
			sess                          models.Session
			startMs, endMs                int64
			brushing, flossing, mouthwash int
			cleaningTaskID                sql.NullInt64
		)

		err := rows.Scan(
			&sess.ID,
			&startMs,
			&endMs,
			&sess.DurationSeconds,
			&sess.Date,
			&brushing,
			&flossing,
			&mouthwash,
			&cleaningTaskID,
		)
		if err != nil {
			return nil, err
		}

		sess.StartTime = timeutil.FromMillis(startMs)
		sess.EndTime = timeutil.FromMillis(endMs)
		sess.Brushing = brushing == 1
		sess.Flossing = flossing == 1
		sess.Mouthwash = mouthwash == 1

		if cleaningTaskID.Valid {
			id := cleaningTaskID.Int64
			sess.CleaningTaskID = &id
		}

		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

const sessionColumns = `id, startTime, endTime, durationSeconds, date,
	brushing, flossing, mouthwash, cleaningTaskId`

func (c *Client) DaySessions(date string) ([]models.Session, error) {
	rows, err := c.db.Query(
		`SELECT `+sessionColumns+`
		FROM sessions
		WHERE date = ?
		ORDER BY startTime ASC`,
		date,
	)
	if err != nil {
		return nil, err
	}

	return scanSessions(rows)
}

func (c *Client) History() ([]models.Session, error) {
	rows, err := c.db.Query(
		`SELECT ` + sessionColumns + `
		FROM sessions
		ORDER BY startTime DESC`,
	)
	if err != nil {
		return nil, err
	}

	return scanSessions(rows)
}

func (c *Client) UpdateSession(id int64, start, end time.Time) error {
	duration := int(end.Sub(start).Seconds())
	date := timeutil.DateString(start)

	_, err := c.db.Exec(
		`UPDATE sessions
		SET startTime = ?, endTime = ?, durationSeconds = ?, date = ?
		WHERE id = ?`,
		timeutil.ToMillis(start),
		timeutil.ToMillis(end),
		duration,
		date,
		id,
	)

	return err
}

func (c *Client) UpdateSessionCleaning(
	id int64,
	cleaning models.Cleaning,
) error {
	_, err := c.db.Exec(
		`UPDATE sessions
		SET brushing = ?, flossing = ?, mouthwash = ?, cleaningTaskId = ?
		WHERE id = ?`,
		boolToInt(cleaning.Brushing),
		boolToInt(cleaning.Flossing),
		boolToInt(cleaning.Mouthwash),
		taskID(cleaning),
		id,
	)

	return err
}

func (c *Client) DeleteSession(id int64) error {
	_, err := c.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)

	return err
}

func (c *Client) TodayTotalSeconds(resetHour int) int {
	date := timeutil.LogicalDateString(time.Now(), resetHour)

	var total sql.NullInt64

	err := c.db.QueryRow(
		`SELECT SUM(durationSeconds) FROM sessions WHERE date = ?`,
		date,
	).Scan(&total)
	if err != nil || !total.Valid {
		return 0
	}

	return int(total.Int64)
}

// rangeStats aggregates per-day totals for dates in [startDate, endDate].
func (c *Client) rangeStats(startDate, endDate string) models.PeriodStats {
	stats := models.PeriodStats{Data: []models.DailyStat{}}

	rows, err := c.db.Query(
		`SELECT date, SUM(durationSeconds) AS totalSeconds
		FROM sessions
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date ASC`,
		startDate,
		endDate,
	)
	if err != nil {
		return stats
	}

	defer rows.Close()

	for rows.Next() {
		var day models.DailyStat

		if err := rows.Scan(&day.Date, &day.TotalSeconds); err != nil {
			return models.PeriodStats{Data: []models.DailyStat{}}
		}

		stats.Data = append(stats.Data, day)
		stats.TotalSeconds += day.TotalSeconds
	}

	if err := rows.Err(); err != nil {
		return models.PeriodStats{Data: []models.DailyStat{}}
	}

	stats.DaysWithData = len(stats.Data)
	if stats.DaysWithData > 0 {
		stats.AverageSeconds = stats.TotalSeconds / stats.DaysWithData
	}

	return stats
}

func (c *Client) DayStats(date string) models.PeriodStats {
	return c.rangeStats(date, date)
}

func (c *Client) WeekStats(mondayStart time.Time) models.PeriodStats {
	end := mondayStart.AddDate(0, 0, 6)

	return c.rangeStats(
		timeutil.DateString(mondayStart),
		timeutil.DateString(end),
	)
}

func (c *Client) MonthStats(year int, month time.Month) models.PeriodStats {
	start, end := timeutil.MonthBounds(year, month)

	return c.rangeStats(
		timeutil.DateString(start),
		timeutil.DateString(end),
	)
}

func scanCleaningTasks(rows *sql.Rows) ([]models.CleaningTask, error) {
	defer rows.Close()

	var tasks []models.CleaningTask

	for rows.Next() {
		var (
			task                models.CleaningTask
			reqB, reqF, reqM, a int
		)

		err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.ScheduledTime,
			&reqB,
			&reqF,
			&reqM,
			&a,
		)
		if err != nil {
			return nil, err
		}

		task.RequiresBrushing = reqB == 1
		task.RequiresFlossing = reqF == 1
		task.RequiresMouthwash = reqM == 1
		task.IsActive = a == 1

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

const taskColumns = `id, name, scheduledTime,
	requiresBrushing, requiresFlossing, requiresMouthwash, isActive`

func (c *Client) CleaningTasks() ([]models.CleaningTask, error) {
	rows, err := c.db.Query(
		`SELECT ` + taskColumns + `
		FROM cleaning_tasks
		WHERE isActive = 1
		ORDER BY scheduledTime ASC`,
	)
	if err != nil {
		return nil, err
	}

	return scanCleaningTasks(rows)
}

func (c *Client) AllCleaningTasks() ([]models.CleaningTask, error) {
	rows, err := c.db.Query(
		`SELECT ` + taskColumns + `
		FROM cleaning_tasks
		ORDER BY scheduledTime ASC`,
	)
	if err != nil {
		return nil, err
	}

	return scanCleaningTasks(rows)
}

func (c *Client) AddCleaningTask(
	name, scheduledTime string,
	requiresBrushing, requiresFlossing, requiresMouthwash bool,
) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO cleaning_tasks
		(name, scheduledTime, requiresBrushing, requiresFlossing, requiresMouthwash, isActive)
		VALUES (?, ?, ?, ?, ?, 1)`,
		name,
		scheduledTime,
		boolToInt(requiresBrushing),
		boolToInt(requiresFlossing),
		boolToInt(requiresMouthwash),
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (c *Client) UpdateCleaningTask(
	id int64,
	name, scheduledTime string,
	requiresBrushing, requiresFlossing, requiresMouthwash bool,
) error {
	_, err := c.db.Exec(
		`UPDATE cleaning_tasks
		SET name = ?, scheduledTime = ?, requiresBrushing = ?,
			requiresFlossing = ?, requiresMouthwash = ?
		WHERE id = ?`,
		name,
		scheduledTime,
		boolToInt(requiresBrushing),
		boolToInt(requiresFlossing),
		boolToInt(requiresMouthwash),
		id,
	)

	return err
}

func (c *Client) DeleteCleaningTask(id int64) error {
	_, err := c.db.Exec(
		`UPDATE cleaning_tasks SET isActive = 0 WHERE id = ?`,
		id,
	)

	return err
}

func (c *Client) PermanentlyDeleteCleaningTask(id int64) error {
	_, err := c.db.Exec(`DELETE FROM cleaning_tasks WHERE id = ?`, id)

	return err
}

func (c *Client) DayCleaningStatus(date string) models.DayCleaningStatus {
	status := models.DayCleaningStatus{
		Date:              date,
		AllTasksCompleted: true,
	}

	tasks, err := c.CleaningTasks()
	if err != nil || len(tasks) == 0 {
		return status
	}

	sessions, err := c.DaySessions(date)
	if err != nil {
		return status
	}

	for _, task := range tasks {
		for _, sess := range sessions {
			if sess.CleaningTaskID == nil ||
				*sess.CleaningTaskID != task.ID {
				continue
			}

			// A requirement the task does not set is ignored.
			brushingOk := !task.RequiresBrushing || sess.Brushing
			flossingOk := !task.RequiresFlossing || sess.Flossing
			mouthwashOk := !task.RequiresMouthwash || sess.Mouthwash

			if brushingOk && flossingOk && mouthwashOk {
				status.CompletedTasks++
			}

			break
		}
	}

	status.TotalTasks = len(tasks)
	status.AllTasksCompleted = status.CompletedTasks >= status.TotalTasks

	return status
}

func (c *Client) CleaningStatusRange(
	start, end time.Time,
) map[string]models.DayCleaningStatus {
	result := make(map[string]models.DayCleaningStatus)

	for date := timeutil.RoundToStart(start); !date.After(end); date = date.AddDate(0, 0, 1) {
		status := c.DayCleaningStatus(timeutil.DateString(date))
		result[status.Date] = status
	}

	return result
}

func (c *Client) Reset() error {
	_, err := c.db.Exec(`DELETE FROM sessions`)
	if err != nil {
		return err
	}

	_, err = c.db.Exec(`DELETE FROM cleaning_tasks`)

	return err
}

func (c *Client) Close() error {
	return c.db.Close()
}
