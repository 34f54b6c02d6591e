package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// inMemoryDSN keeps the journal inside the process; it is gone when the
// connection closes.
const inMemoryDSN = ":memory:"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenInMemory opens a migrated journal that lives for the lifetime of the
// returned repository. A single connection is kept because every new
// connection to :memory: would see an empty database.
func OpenInMemory() (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", inMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, in Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, category, points, is_completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Category, in.Points, boolInt(in.IsCompleted), mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, points, is_completed, created_at, completed_at
		FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Goal{}, ErrNotFound
		}
		return Goal{}, err
	}
	return goal, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, category = ?, points = ?, is_completed = ?, completed_at = ?
		WHERE id = ?`,
		in.Title, in.Category, in.Points, boolInt(in.IsCompleted), nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error) {
	query := `SELECT id, title, category, points, is_completed, created_at, completed_at FROM goals`
	args := make([]any, 0, 3)
	if filter.Completed != nil {
		query += ` WHERE is_completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	query += ` ORDER BY rowid ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, goal)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateBadge(ctx context.Context, in Badge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO badges (id, title, description, image_name, unlocked_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.ImageName, mustTime(in.UnlockedAt),
	)
	return err
}

func (r *SQLiteRepository) ListBadges(ctx context.Context) ([]Badge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, image_name, unlocked_at
		FROM badges ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Badge, 0)
	for rows.Next() {
		item, scanErr := scanBadge(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AppendEvent(ctx context.Context, in Event) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO session_events (kind, goal_id, title, points, total, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Kind, in.GoalID, in.Title, in.Points, in.Total, mustTime(in.OccurredAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, filter EventListFilter) ([]Event, error) {
	query := `SELECT id, kind, goal_id, title, points, total, occurred_at FROM session_events`
	args := make([]any, 0, 3)
	if filter.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Newest {
		query += ` ORDER BY id DESC`
	} else {
		query += ` ORDER BY id ASC`
	}
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		item, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountEvents(ctx context.Context, kind string) (int, error) {
	query := `SELECT COUNT(*) FROM session_events`
	args := make([]any, 0, 1)
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (Goal, error) {
	var out Goal
	var completedFlag int
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Title, &out.Category, &out.Points, &completedFlag, &created, &completed); err != nil {
		return Goal{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Goal{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return Goal{}, err
	}
	out.IsCompleted = completedFlag == 1
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanBadge(s scanner) (Badge, error) {
	var out Badge
	var unlocked string
	if err := s.Scan(&out.ID, &out.Title, &out.Description, &out.ImageName, &unlocked); err != nil {
		return Badge{}, err
	}
	unlockedAt, err := parseRequiredTime(unlocked)
	if err != nil {
		return Badge{}, err
	}
	out.UnlockedAt = unlockedAt
	return out, nil
}

func scanEvent(s scanner) (Event, error) {
	var out Event
	var occurred string
	if err := s.Scan(&out.ID, &out.Kind, &out.GoalID, &out.Title, &out.Points, &out.Total, &occurred); err != nil {
		return Event{}, err
	}
	occurredAt, err := parseRequiredTime(occurred)
	if err != nil {
		return Event{}, err
	}
	out.OccurredAt = occurredAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
