package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"dayplanner/internal/models"
)

// Store wraps access to the SQLite database and exposes high level helpers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            kind TEXT NOT NULL DEFAULT 'flexible',
            priority TEXT NOT NULL DEFAULT 'medium',
            duration_minutes INTEGER NOT NULL,
            start_time DATETIME,
            end_time DATETIME,
            preferred_start DATETIME,
            preferred_end DATETIME,
            frequency TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_kind ON tasks(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_start ON tasks(start_time);`,
		`CREATE TRIGGER IF NOT EXISTS trg_tasks_updated
            AFTER UPDATE ON tasks
            FOR EACH ROW BEGIN
                UPDATE tasks SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
            END;`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const taskColumns = `id, name, kind, priority, duration_minutes, start_time, end_time, preferred_start, preferred_end, frequency, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var start, end, prefStart, prefEnd sql.NullTime
	err := row.Scan(&t.ID, &t.Name, &t.Kind, &t.Priority, &t.DurationMinutes,
		&start, &end, &prefStart, &prefEnd, &t.Frequency, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	if start.Valid {
		t.StartTime = &start.Time
	}
	if end.Valid {
		t.EndTime = &end.Time
	}
	if prefStart.Valid {
		t.PreferredStart = &prefStart.Time
	}
	if prefEnd.Valid {
		t.PreferredEnd = &prefEnd.Time
	}
	return t, nil
}

// ListTasks retrieves all tasks ordered by creation date.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask persists a new task.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Name) == "" {
		return models.Task{}, fmt.Errorf("task name must not be empty")
	}
	if _, ok := models.ValidTaskKinds[t.Kind]; !ok {
		t.Kind = models.KindFlexible
	}
	if _, ok := models.ValidPriorities[t.Priority]; !ok {
		t.Priority = models.PriorityMedium
	}
	if t.DurationMinutes <= 0 {
		return models.Task{}, fmt.Errorf("task duration must be positive")
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(name, kind, priority, duration_minutes, start_time, end_time, preferred_start, preferred_end, frequency)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(t.Name), t.Kind, t.Priority, t.DurationMinutes,
		t.StartTime, t.EndTime, t.PreferredStart, t.PreferredEnd, strings.TrimSpace(t.Frequency))
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task not found")
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask applies the recognized changes to a task and returns the result.
func (s *Store) UpdateTask(ctx context.Context, id int64, changes map[string]any) (models.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if v, ok := changes["name"].(string); ok && strings.TrimSpace(v) != "" {
		current.Name = strings.TrimSpace(v)
	}
	if v, ok := changes["kind"].(models.TaskKind); ok {
		if _, valid := models.ValidTaskKinds[v]; valid {
			current.Kind = v
		}
	}
	if v, ok := changes["priority"].(models.Priority); ok {
		if _, valid := models.ValidPriorities[v]; valid {
			current.Priority = v
		}
	}
	if v, ok := changes["duration_minutes"].(int64); ok && v > 0 {
		current.DurationMinutes = v
	}
	if v, ok := changes["frequency"].(string); ok {
		current.Frequency = strings.TrimSpace(v)
	}
	if v, ok := changes["start_time"].(*time.Time); ok {
		current.StartTime = v
	}
	if v, ok := changes["end_time"].(*time.Time); ok {
		current.EndTime = v
	}
	if v, ok := changes["preferred_start"].(*time.Time); ok {
		current.PreferredStart = v
	}
	if v, ok := changes["preferred_end"].(*time.Time); ok {
		current.PreferredEnd = v
	}

	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET name = ?, kind = ?, priority = ?, duration_minutes = ?, start_time = ?, end_time = ?, preferred_start = ?, preferred_end = ?, frequency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		current.Name, current.Kind, current.Priority, current.DurationMinutes,
		current.StartTime, current.EndTime, current.PreferredStart, current.PreferredEnd, current.Frequency, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task not found")
	}
	return nil
}

// SaveSchedule persists the start and end times of placed tasks in a single
// transaction so a failed run never leaves a half-applied plan.
func (s *Store) SaveSchedule(ctx context.Context, placed []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range placed {
		res, err := tx.ExecContext(ctx, `UPDATE tasks SET start_time = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			t.StartTime, t.EndTime, t.ID)
		if err != nil {
			return fmt.Errorf("save schedule for task %d: %w", t.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("task %d not found", t.ID)
		}
	}
	return tx.Commit()
}
