package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo writes the same tables directly over a pgx pool.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindAuthorIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, "SELECT id FROM authors WHERE name = $1 LIMIT 1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find author: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) InsertAuthor(ctx context.Context, a Author) error {
	_, err := r.db.Exec(ctx, "INSERT INTO authors (id, name) VALUES ($1, $2)", a.ID, a.Name)
	if err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) InsertBook(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books_metadata (
			id, title, description, ai_description, cover_path, language, original_url,
			page_count, chapter_count, word_count, rating, created_at, updated_at,
			main_author_id, is_public_domain)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, sql,
		b.ID, b.Title, b.Description, b.AIDescription, b.CoverPath, b.Language, b.OriginalURL,
		b.PageCount, b.ChapterCount, b.WordCount, b.Rating, b.CreatedAt, b.UpdatedAt,
		b.MainAuthorID, b.IsPublicDomain,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) InsertBookAuthor(ctx context.Context, rel BookAuthor) error {
	_, err := r.db.Exec(ctx, "INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)", rel.BookID, rel.AuthorID)
	if err != nil {
		return fmt.Errorf("insert book author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) InsertBookCategory(ctx context.Context, rel BookCategory) error {
	_, err := r.db.Exec(ctx, "INSERT INTO book_categories (book_id, category_id) VALUES ($1, $2)", rel.BookID, rel.CategoryID)
	if err != nil {
		return fmt.Errorf("insert book category: %w", err)
	}
	return nil
}
