package db

import (
	"context"
	"fmt"

	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const postColumns = "id, title, content, author_id, created_at, updated_at"

// querier is the subset of *pgxpool.Pool the repository needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postRow struct {
	ID        pgtype.UUID        `db:"id"`
	Title     string             `db:"title"`
	Content   string             `db:"content"`
	AuthorID  string             `db:"author_id"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

type PostgresPostRepository struct {
	db querier
}

func NewPostgresPostRepository(db querier) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, "SELECT "+postColumns+" FROM posts ORDER BY created_at, id")
	if err != nil {
		return nil, mapError(err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]domain.Post, 0, len(posts))
	for _, post := range posts {
		out = append(out, toDomainPost(post))
	}

	return out, nil
}

func (r *PostgresPostRepository) FindByID(ctx context.Context, id string) (domain.Post, error) {
	parsedID, err := parsePostID(id)
	if err != nil {
		return domain.Post{}, err
	}

	rows, err := r.db.Query(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", parsedID)
	if err != nil {
		return domain.Post{}, mapError(err)
	}

	return collectOne(rows)
}

func (r *PostgresPostRepository) Create(ctx context.Context, record domain.CreatePostRecord) (domain.Post, error) {
	parsedID, err := parsePostID(record.ID)
	if err != nil {
		return domain.Post{}, err
	}

	rows, err := r.db.Query(ctx,
		"INSERT INTO posts (id, title, content, author_id) VALUES ($1, $2, $3, $4) RETURNING "+postColumns,
		parsedID, record.Title, record.Content, record.AuthorID,
	)
	if err != nil {
		return domain.Post{}, mapError(err)
	}

	return collectOne(rows)
}

func (r *PostgresPostRepository) Update(ctx context.Context, input domain.UpdatePostInput) (domain.Post, error) {
	parsedID, err := parsePostID(input.ID)
	if err != nil {
		return domain.Post{}, err
	}

	rows, err := r.db.Query(ctx,
		"UPDATE posts SET title = $2, content = $3, updated_at = now() WHERE id = $1 RETURNING "+postColumns,
		parsedID, input.Title, input.Content,
	)
	if err != nil {
		return domain.Post{}, mapError(err)
	}

	return collectOne(rows)
}

func collectOne(rows pgx.Rows) (domain.Post, error) {
	post, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[postRow])
	if err != nil {
		return domain.Post{}, mapError(err)
	}
	return toDomainPost(post), nil
}

func toDomainPost(post postRow) domain.Post {
	return domain.Post{
		ID:        uuid.UUID(post.ID.Bytes).String(),
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt.Time,
		UpdatedAt: post.UpdatedAt.Time,
	}
}

func parsePostID(id string) (pgtype.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("%w: invalid post id", domain.ErrInvalidInput)
	}

	var parsed pgtype.UUID
	copy(parsed.Bytes[:], u[:])
	parsed.Valid = true

	return parsed, nil
}
