package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/google/uuid"
)

// Fixed width so ORDER BY created_at sorts chronologically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLitePostRepository backs local development and tests.
type SQLitePostRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLitePostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *SQLitePostRepository) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at, id")
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.Post, 0)
	for rows.Next() {
		post, err := scanSQLitePost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return out, nil
}

func (r *SQLitePostRepository) FindByID(ctx context.Context, id string) (domain.Post, error) {
	id, err := sqlitePostID(id)
	if err != nil {
		return domain.Post{}, err
	}

	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	return scanSQLitePost(row)
}

func (r *SQLitePostRepository) Create(ctx context.Context, record domain.CreatePostRecord) (domain.Post, error) {
	id, err := sqlitePostID(record.ID)
	if err != nil {
		return domain.Post{}, err
	}

	now := r.now().Format(sqliteTimeLayout)
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO posts (id, title, content, author_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+postColumns,
		id, record.Title, record.Content, record.AuthorID, now, now,
	)
	return scanSQLitePost(row)
}

func (r *SQLitePostRepository) Update(ctx context.Context, input domain.UpdatePostInput) (domain.Post, error) {
	id, err := sqlitePostID(input.ID)
	if err != nil {
		return domain.Post{}, err
	}

	row := r.db.QueryRowContext(ctx,
		"UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ? RETURNING "+postColumns,
		input.Title, input.Content, r.now().Format(sqliteTimeLayout), id,
	)
	return scanSQLitePost(row)
}

// sqlitePostID returns the canonical text form ids are stored under, so lookups
// match regardless of case or braces, as the uuid column does on Postgres.
func sqlitePostID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid post id", domain.ErrInvalidInput)
	}
	return parsed.String(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePost(row rowScanner) (domain.Post, error) {
	var (
		post                 domain.Post
		createdAt, updatedAt string
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &createdAt, &updatedAt); err != nil {
		return domain.Post{}, mapError(err)
	}

	var err error
	if post.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return domain.Post{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if post.UpdatedAt, err = time.Parse(sqliteTimeLayout, updatedAt); err != nil {
		return domain.Post{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}

	return post, nil
}
