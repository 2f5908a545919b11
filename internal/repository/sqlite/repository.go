// Package sqlite stores tasks for the reference backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	status INTEGER DEFAULT 0,
	priority TEXT NOT NULL,
	created_date TEXT NOT NULL,
	due_date TEXT
)`

// Task is a row of the tasks table.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      bool
	Priority    string
	CreatedDate string
	DueDate     string
}

// Repository defines the storage operations used by the HTTP handlers.
type Repository interface {
	ListTasks(ctx context.Context) ([]*Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id int64) error
	Close() error
}

// SQLiteRepository implements Repository on top of modernc.org/sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath. ":memory:" gives a
// private in-memory database.
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own empty
	// database, and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListTasks returns every task, newest first.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, description, status, priority, created_date, due_date
	FROM tasks
	ORDER BY created_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns the task with the given id or ErrNotFound.
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, description, status, priority, created_date, due_date
	FROM tasks
	WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// CreateTask inserts t and sets its ID.
func (r *SQLiteRepository) CreateTask(ctx context.Context, t *Task) error {
	result, err := r.db.ExecContext(ctx, `
	INSERT INTO tasks (title, description, status, priority, created_date, due_date)
	VALUES (?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, boolToInt(t.Status), t.Priority, t.CreatedDate, t.DueDate)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert ID: %w", err)
	}
	t.ID = id
	return nil
}

// UpdateTask overwrites the mutable columns of t. created_date is never changed.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, t *Task) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE tasks
	SET title = ?, description = ?, status = ?, priority = ?, due_date = ?
	WHERE id = ?`,
		t.Title, t.Description, boolToInt(t.Status), t.Priority, t.DueDate, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(result)
}

// DeleteTask removes the task with the given id.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(result)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*Task, error) {
	var (
		t           Task
		description sql.NullString
		dueDate     sql.NullString
		status      int
	)
	if err := s.Scan(&t.ID, &t.Title, &description, &status, &t.Priority, &t.CreatedDate, &dueDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.Description = description.String
	t.DueDate = dueDate.String
	t.Status = status != 0
	return &t, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
