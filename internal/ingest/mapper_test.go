package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"bookloader/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, s string) *openlibrary.Doc {
	t.Helper()
	var d openlibrary.Doc
	require.NoError(t, json.Unmarshal([]byte(s), &d))
	return &d
}

func TestMapper_Map(t *testing.T) {
	m := NewMapper("", "")
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		doc := decodeDoc(t, `{"key": "/works/OL893415W", "title": "Dune",
			"first_sentence": ["A beginning is the time for taking the most delicate care."],
			"cover_i": 12345, "language": ["eng", "spa"], "number_of_pages_median": 604}`)

		b := m.Map(doc, "book-1", "author-1", now)

		assert.Equal(t, "book-1", b.ID)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, "A beginning is the time for taking the most delicate care.", b.Description)
		assert.Equal(t, "", b.AIDescription)
		require.NotNil(t, b.CoverPath)
		assert.Equal(t, "http://covers.openlibrary.org/b/id/12345-L.jpg", *b.CoverPath)
		require.NotNil(t, b.Language)
		assert.Equal(t, "eng", *b.Language)
		assert.Equal(t, "http://openlibrary.org/works/OL893415W", b.OriginalURL)
		assert.Equal(t, 604, b.PageCount)
		assert.Zero(t, b.ChapterCount)
		assert.Zero(t, b.WordCount)
		assert.Zero(t, b.Rating)
		assert.Equal(t, now, b.CreatedAt)
		assert.Equal(t, now, b.UpdatedAt)
		assert.Equal(t, "author-1", b.MainAuthorID)
		assert.False(t, b.IsPublicDomain)
	})

	t.Run("absent fields use defaults", func(t *testing.T) {
		doc := decodeDoc(t, `{"key": "/works/OL1W", "title": "Bare"}`)

		b := m.Map(doc, "book-2", "author-2", now)

		assert.Equal(t, "", b.Description)
		assert.Nil(t, b.CoverPath)
		assert.Nil(t, b.Language)
		assert.Equal(t, 0, b.PageCount)
	})

	t.Run("empty first sentence and zero cover", func(t *testing.T) {
		doc := decodeDoc(t, `{"key": "/works/OL2W", "first_sentence": [], "cover_i": 0, "language": []}`)

		b := m.Map(doc, "book-3", "author-3", now)

		assert.Equal(t, "", b.Description)
		assert.Nil(t, b.CoverPath)
		assert.Nil(t, b.Language)
	})

	t.Run("custom origins", func(t *testing.T) {
		custom := NewMapper("https://ol.example.org/", "https://covers.example.org")
		doc := decodeDoc(t, `{"key": "/works/OL3W", "cover_i": 7}`)

		b := custom.Map(doc, "b", "a", now)

		assert.Equal(t, "https://ol.example.org/works/OL3W", b.OriginalURL)
		assert.Equal(t, "https://covers.example.org/b/id/7-L.jpg", *b.CoverPath)
	})

	t.Run("same input maps to identical output", func(t *testing.T) {
		doc := decodeDoc(t, `{"key": "/works/OL4W", "title": "Twice", "cover_i": 99, "language": ["fre"]}`)

		first, err := json.Marshal(m.Map(doc, "b", "a", now))
		require.NoError(t, err)
		second, err := json.Marshal(m.Map(doc, "b", "a", now))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
