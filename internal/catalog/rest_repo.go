package catalog

import (
	"context"
	"fmt"

	"bookloader/internal/platform/supabase"
)

// RESTRepo stores the catalog through the Supabase table API.
type RESTRepo struct {
	client *supabase.Client
}

func NewRESTRepo(client *supabase.Client) *RESTRepo {
	return &RESTRepo{client: client}
}

func (r *RESTRepo) FindAuthorIDByName(ctx context.Context, name string) (string, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	_, err := r.client.From(ctx, AuthorsTable).
		Select("id", "", false).
		Eq("name", name).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return "", fmt.Errorf("find author: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

func (r *RESTRepo) InsertAuthor(ctx context.Context, a Author) error {
	if err := r.insert(ctx, AuthorsTable, a); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *RESTRepo) InsertBook(ctx context.Context, b *Book) error {
	if err := r.insert(ctx, BooksTable, b); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *RESTRepo) InsertBookAuthor(ctx context.Context, rel BookAuthor) error {
	if err := r.insert(ctx, BookAuthorsTable, rel); err != nil {
		return fmt.Errorf("insert book author: %w", err)
	}
	return nil
}

func (r *RESTRepo) InsertBookCategory(ctx context.Context, rel BookCategory) error {
	if err := r.insert(ctx, BookCategoriesTable, rel); err != nil {
		return fmt.Errorf("insert book category: %w", err)
	}
	return nil
}

// insert writes one row without asking for it back.
func (r *RESTRepo) insert(ctx context.Context, table string, row any) error {
	_, _, err := r.client.From(ctx, table).Insert(row, false, "", "minimal", "").Execute()
	return err
}
