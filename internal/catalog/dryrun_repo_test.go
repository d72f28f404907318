package catalog

import (
	"context"
	"testing"

	"bookloader/internal/platform/supabase"
	"bookloader/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunRepo_RemembersAuthors(t *testing.T) {
	repo := NewDryRunRepo(zerolog.Nop(), nil)
	ctx := context.Background()

	id, err := repo.FindAuthorIDByName(ctx, "Herbert")
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.InsertAuthor(ctx, Author{ID: "a-1", Name: "Herbert"}))

	id, err = repo.FindAuthorIDByName(ctx, "Herbert")
	require.NoError(t, err)
	assert.Equal(t, "a-1", id)
}

func TestDryRunRepo_ReadsThroughToStorage(t *testing.T) {
	fake := testutil.NewSupabase(t, map[string]string{"Herbert": "stored-1"})
	repo := NewDryRunRepo(zerolog.Nop(), NewRESTRepo(supabase.NewClient(fake.URL, "key", 0)))
	ctx := context.Background()

	id, err := repo.FindAuthorIDByName(ctx, "Herbert")
	require.NoError(t, err)
	assert.Equal(t, "stored-1", id)

	require.NoError(t, repo.InsertAuthor(ctx, Author{ID: "a-2", Name: "Gaiman"}))
	require.NoError(t, repo.InsertBook(ctx, &Book{ID: "b-1", Title: "Dune"}))
	require.NoError(t, repo.InsertBookAuthor(ctx, BookAuthor{BookID: "b-1", AuthorID: "stored-1"}))
	require.NoError(t, repo.InsertBookCategory(ctx, BookCategory{BookID: "b-1", CategoryID: DefaultCategoryID}))

	id, err = repo.FindAuthorIDByName(ctx, "Gaiman")
	require.NoError(t, err)
	assert.Equal(t, "a-2", id)
	assert.Empty(t, fake.Inserts())
}
