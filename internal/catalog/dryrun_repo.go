package catalog

import (
	"context"

	"github.com/rs/zerolog"
)

// AuthorFinder is the read side of Repository.
type AuthorFinder interface {
	FindAuthorIDByName(ctx context.Context, name string) (string, error)
}

// DryRunRepo logs every write instead of performing it. Authors "inserted"
// during the run are remembered so later rows resolve to the same id.
//
// Without a finder, authors already in storage are unknown and get reported
// as new.
type DryRunRepo struct {
	log     zerolog.Logger
	finder  AuthorFinder
	authors map[string]string
}

// NewDryRunRepo returns a repo that writes nothing. finder may be nil; when
// set, author lookups fall through to it.
func NewDryRunRepo(log zerolog.Logger, finder AuthorFinder) *DryRunRepo {
	return &DryRunRepo{log: log, finder: finder, authors: make(map[string]string)}
}

func (r *DryRunRepo) FindAuthorIDByName(ctx context.Context, name string) (string, error) {
	if id, ok := r.authors[name]; ok {
		return id, nil
	}
	if r.finder == nil {
		return "", nil
	}
	return r.finder.FindAuthorIDByName(ctx, name)
}

func (r *DryRunRepo) InsertAuthor(_ context.Context, a Author) error {
	r.authors[a.Name] = a.ID
	r.log.Debug().Str("table", AuthorsTable).Str("author_id", a.ID).Str("name", a.Name).Msg("dry run: skip insert")
	return nil
}

func (r *DryRunRepo) InsertBook(_ context.Context, b *Book) error {
	r.log.Debug().Str("table", BooksTable).Str("book_id", b.ID).Str("title", b.Title).Msg("dry run: skip insert")
	return nil
}

func (r *DryRunRepo) InsertBookAuthor(_ context.Context, rel BookAuthor) error {
	r.log.Debug().Str("table", BookAuthorsTable).Str("book_id", rel.BookID).Str("author_id", rel.AuthorID).Msg("dry run: skip insert")
	return nil
}

func (r *DryRunRepo) InsertBookCategory(_ context.Context, rel BookCategory) error {
	r.log.Debug().Str("table", BookCategoriesTable).Str("book_id", rel.BookID).Str("category_id", rel.CategoryID).Msg("dry run: skip insert")
	return nil
}
