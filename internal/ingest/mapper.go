package ingest

import (
	"fmt"
	"strings"
	"time"

	"bookloader/internal/catalog"
	"bookloader/internal/platform/openlibrary"
)

const DefaultCoversURL = "http://covers.openlibrary.org"

// Mapper turns a search doc into a books_metadata row. It holds only the
// URL origins and has no other state.
type Mapper struct {
	OpenLibraryURL string
	CoversURL      string
}

func NewMapper(openLibraryURL, coversURL string) Mapper {
	if openLibraryURL == "" {
		openLibraryURL = openlibrary.DefaultBaseURL
	}
	if coversURL == "" {
		coversURL = DefaultCoversURL
	}
	return Mapper{
		OpenLibraryURL: strings.TrimRight(openLibraryURL, "/"),
		CoversURL:      strings.TrimRight(coversURL, "/"),
	}
}

func (m Mapper) Map(doc *openlibrary.Doc, bookID, authorID string, now time.Time) catalog.Book {
	b := catalog.Book{
		ID:           bookID,
		Title:        doc.Title,
		OriginalURL:  m.OpenLibraryURL + doc.Key,
		CreatedAt:    now,
		UpdatedAt:    now,
		MainAuthorID: authorID,
	}

	if len(doc.FirstSentence) > 0 {
		b.Description = doc.FirstSentence[0]
	}
	if doc.CoverI != nil && *doc.CoverI != 0 {
		cover := fmt.Sprintf("%s/b/id/%d-L.jpg", m.CoversURL, *doc.CoverI)
		b.CoverPath = &cover
	}
	if doc.HasLanguage && len(doc.Language) > 0 {
		lang := doc.Language[0]
		b.Language = &lang
	}
	if doc.NumberOfPagesMedian != nil {
		b.PageCount = *doc.NumberOfPagesMedian
	}

	return b
}
