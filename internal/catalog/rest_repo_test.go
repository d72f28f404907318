package catalog

import (
	"context"
	"testing"
	"time"

	"bookloader/internal/platform/supabase"
	"bookloader/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTRepo_FindAuthorIDByName(t *testing.T) {
	fake := testutil.NewSupabase(t, map[string]string{"Herbert": "author-1"})
	repo := NewRESTRepo(supabase.NewClient(fake.URL, "key", 0))
	ctx := context.Background()

	id, err := repo.FindAuthorIDByName(ctx, "Herbert")
	require.NoError(t, err)
	assert.Equal(t, "author-1", id)

	id, err = repo.FindAuthorIDByName(ctx, "herbert")
	require.NoError(t, err)
	assert.Empty(t, id, "lookup is case-sensitive")
}

func TestRESTRepo_Inserts(t *testing.T) {
	fake := testutil.NewSupabase(t, nil)
	repo := NewRESTRepo(supabase.NewClient(fake.URL, "key", 0))
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.InsertAuthor(ctx, Author{ID: "a-1", Name: "Herbert"}))
	require.NoError(t, repo.InsertBook(ctx, &Book{ID: "b-1", Title: "Dune", CreatedAt: now, UpdatedAt: now, MainAuthorID: "a-1"}))
	require.NoError(t, repo.InsertBookAuthor(ctx, BookAuthor{BookID: "b-1", AuthorID: "a-1"}))
	require.NoError(t, repo.InsertBookCategory(ctx, BookCategory{BookID: "b-1", CategoryID: DefaultCategoryID}))

	got := fake.Inserts()
	require.Len(t, got, 4)

	assert.Equal(t, AuthorsTable, got[0].Table)
	assert.Equal(t, "Herbert", got[0].Row["name"])

	assert.Equal(t, BooksTable, got[1].Table)
	assert.Equal(t, "Dune", got[1].Row["title"])
	assert.Nil(t, got[1].Row["cover_path"])
	assert.Nil(t, got[1].Row["language"])
	assert.Equal(t, false, got[1].Row["is_public_domain"])
	assert.Equal(t, "2024-05-01T12:00:00Z", got[1].Row["created_at"])

	assert.Equal(t, BookAuthorsTable, got[2].Table)
	assert.Equal(t, map[string]any{"book_id": "b-1", "author_id": "a-1"}, got[2].Row)

	assert.Equal(t, BookCategoriesTable, got[3].Table)
	assert.Equal(t, DefaultCategoryID, got[3].Row["category_id"])

	id, err := repo.FindAuthorIDByName(ctx, "Herbert")
	require.NoError(t, err)
	assert.Equal(t, "a-1", id)
}

func TestRESTRepo_InsertError(t *testing.T) {
	fake := testutil.NewSupabase(t, nil)
	fake.FailTable = BooksTable
	repo := NewRESTRepo(supabase.NewClient(fake.URL, "key", 0))

	err := repo.InsertBook(context.Background(), &Book{ID: "b-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert book")
	assert.Contains(t, err.Error(), "internal error")
}

func TestRESTRepo_LookupLimitsToOneRow(t *testing.T) {
	fake := testutil.NewSupabase(t, map[string]string{"Herbert": "author-1"})
	repo := NewRESTRepo(supabase.NewClient(fake.URL, "key", 0))

	_, err := repo.FindAuthorIDByName(context.Background(), "Herbert")
	require.NoError(t, err)

	queries := fake.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "/rest/v1/authors", queries[0].Path)
	assert.Equal(t, "1", queries[0].Query.Get("limit"))
	assert.Equal(t, "eq.Herbert", queries[0].Query.Get("name"))
}
