package catalog

import (
	"context"
)

// Repository is the write side of the catalog. Every insert is a single row
// with no surrounding transaction.
type Repository interface {
	// FindAuthorIDByName returns "" and a nil error when no author matches.
	FindAuthorIDByName(ctx context.Context, name string) (string, error)
	InsertAuthor(ctx context.Context, a Author) error
	InsertBook(ctx context.Context, b *Book) error
	InsertBookAuthor(ctx context.Context, rel BookAuthor) error
	InsertBookCategory(ctx context.Context, rel BookCategory) error
}
