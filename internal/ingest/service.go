package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"bookloader/internal/catalog"
	"bookloader/internal/platform/openlibrary"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Config struct {
	CategoryID string
	// FailFast aborts the run on the first row error instead of logging it
	// and moving on.
	FailFast bool
}

type OpenLibraryClient interface {
	Search(ctx context.Context, title, author string) (*openlibrary.Doc, error)
}

// RowSource yields input rows until io.EOF.
type RowSource interface {
	Read() (Row, error)
}

type Service struct {
	olClient OpenLibraryClient
	repo     catalog.Repository
	mapper   Mapper
	cfg      Config
	log      zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewService(olClient OpenLibraryClient, repo catalog.Repository, mapper Mapper, cfg Config, log zerolog.Logger) *Service {
	if cfg.CategoryID == "" {
		cfg.CategoryID = catalog.DefaultCategoryID
	}
	return &Service{
		olClient: olClient,
		repo:     repo,
		mapper:   mapper,
		cfg:      cfg,
		log:      log,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Run processes every row from src in order, one at a time.
func (s *Service) Run(ctx context.Context, src RowSource) (run *Run, err error) {
	run = &Run{
		Status:    StatusRunning,
		StartedAt: s.now(),
	}

	defer func() {
		now := s.now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		s.log.Info().
			Str("status", run.Status).
			Int("rows", run.RowsRead).
			Int("books_inserted", run.BooksInserted).
			Int("authors_inserted", run.AuthorsInserted).
			Int("skipped", run.Skipped).
			Int("failed", run.Failed).
			Dur("elapsed", now.Sub(run.StartedAt)).
			Msg("import finished")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		row, readErr := src.Read()
		if errors.Is(readErr, io.EOF) {
			return run, nil
		}
		run.RowsRead++
		if readErr != nil {
			run.Failed++
			// Only a malformed line leaves the reader positioned past it.
			// Other read errors repeat on every call.
			var parseErr *csv.ParseError
			if s.cfg.FailFast || !errors.As(readErr, &parseErr) {
				return run, fmt.Errorf("line %d: %w", row.Line, readErr)
			}
			s.log.Error().Err(readErr).Int("line", row.Line).Msg("cannot read row")
			continue
		}

		outcome, authorCreated, procErr := s.processRow(ctx, row)
		if authorCreated {
			run.AuthorsInserted++
		}
		if procErr != nil {
			run.Failed++
			if s.cfg.FailFast || ctx.Err() != nil {
				return run, fmt.Errorf("line %d: %w", row.Line, procErr)
			}
			s.log.Error().Err(procErr).Int("line", row.Line).Str("title", row.Title).Msg("row failed")
			continue
		}

		switch outcome {
		case OutcomeInserted:
			run.BooksInserted++
		default:
			run.Skipped++
		}
	}
}

// ProcessRow runs the fetch, resolve, map and write sequence for one row.
func (s *Service) ProcessRow(ctx context.Context, row Row) (Outcome, error) {
	outcome, _, err := s.processRow(ctx, row)
	return outcome, err
}

func (s *Service) processRow(ctx context.Context, row Row) (Outcome, bool, error) {
	title := row.Title
	author := PrimaryAuthor(row.Author)

	if err := validation.Validate(title, validation.Required); err != nil {
		s.log.Warn().Int("line", row.Line).Msg("skipping row without a title")
		return OutcomeInvalid, false, nil
	}
	if err := validation.Validate(author, validation.Required); err != nil {
		s.log.Warn().Int("line", row.Line).Str("title", title).Msg("skipping row without an author")
		return OutcomeInvalid, false, nil
	}

	doc, err := s.olClient.Search(ctx, title, author)
	if err != nil {
		return OutcomeFailed, false, fmt.Errorf("fetch metadata: %w", err)
	}
	if doc == nil {
		s.log.Info().Str("title", title).Str("author", author).Msg("no data found, skipping")
		return OutcomeNoMatch, false, nil
	}

	authorID, created, err := s.ResolveAuthor(ctx, author)
	if err != nil {
		return OutcomeFailed, false, err
	}

	bookID := s.newID()
	book := s.mapper.Map(doc, bookID, authorID, s.now())
	l := s.log.With().Str("title", title).Str("book_id", bookID).Logger()

	if err := s.repo.InsertBook(ctx, &book); err != nil {
		return OutcomeFailed, created, err
	}
	l.Info().Msg("inserted book metadata")

	if err := s.repo.InsertBookAuthor(ctx, catalog.BookAuthor{BookID: bookID, AuthorID: authorID}); err != nil {
		return OutcomeFailed, created, err
	}
	l.Info().Str("author", author).Str("author_id", authorID).Msg("inserted book-author relation")

	if err := s.repo.InsertBookCategory(ctx, catalog.BookCategory{BookID: bookID, CategoryID: s.cfg.CategoryID}); err != nil {
		return OutcomeFailed, created, err
	}
	l.Info().Str("category_id", s.cfg.CategoryID).Msg("inserted book category")

	return OutcomeInserted, created, nil
}

// ResolveAuthor returns the id of the author with exactly this name,
// inserting a new author when none exists.
func (s *Service) ResolveAuthor(ctx context.Context, name string) (string, bool, error) {
	id, err := s.repo.FindAuthorIDByName(ctx, name)
	if err != nil {
		return "", false, err
	}
	if id != "" {
		return id, false, nil
	}

	id = s.newID()
	if err := s.repo.InsertAuthor(ctx, catalog.Author{ID: id, Name: name}); err != nil {
		return "", false, err
	}
	s.log.Info().Str("author", name).Str("author_id", id).Msg("inserted new author")
	return id, true, nil
}
