package catalog

import (
	"time"
)

const (
	BooksTable          = "books_metadata"
	AuthorsTable        = "authors"
	BookAuthorsTable    = "book_authors"
	BookCategoriesTable = "book_categories"
)

// DefaultCategoryID is the category every imported book is tagged with.
const DefaultCategoryID = "f7985ed7-f1ae-4dae-a7d7-b7340a1a174b"

// Book is one books_metadata row. CoverPath and Language are nil when the
// source record had nothing to derive them from.
type Book struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	AIDescription  string    `json:"ai_description"`
	CoverPath      *string   `json:"cover_path"`
	Language       *string   `json:"language"`
	OriginalURL    string    `json:"original_url"`
	PageCount      int       `json:"page_count"`
	ChapterCount   int       `json:"chapter_count"`
	WordCount      int       `json:"word_count"`
	Rating         float64   `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	MainAuthorID   string    `json:"main_author_id"`
	IsPublicDomain bool      `json:"is_public_domain"`
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookAuthor struct {
	BookID   string `json:"book_id"`
	AuthorID string `json:"author_id"`
}

type BookCategory struct {
	BookID     string `json:"book_id"`
	CategoryID string `json:"category_id"`
}
