package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadieom/BiblioMatch/internal/external"
	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/models"
)

// DescriptionProvider fuentes externas de descripciones.
type DescriptionProvider interface {
	OpenLibraryDescription(ctx context.Context, isbn string) (string, error)
	GoogleBooksDescription(ctx context.Context, query string) (string, error)
}

type BookService struct {
	ext   DescriptionProvider
	store Snapshotter
}

func NewBookService(ext DescriptionProvider, store Snapshotter) *BookService {
	return &BookService{ext: ext, store: store}
}

// Details busca la descripción en Open Library y, si no hay, en Google Books
// por isbn y después por título. Sin título explícito se usa el del
// catálogo cargado.
func (s *BookService) Details(ctx context.Context, isbn, title string) (*models.BookDetails, error) {
	if title == "" {
		if m := s.store.Current(); m != nil {
			title, _ = m.TitleByISBN(isbn)
		}
	}

	type lookup struct {
		source string
		fn     func() (string, error)
	}
	steps := []lookup{
		{external.ProviderOpenLibrary, func() (string, error) { return s.ext.OpenLibraryDescription(ctx, isbn) }},
		{external.ProviderGoogleBooks, func() (string, error) { return s.ext.GoogleBooksDescription(ctx, "isbn:"+isbn) }},
	}
	if title != "" {
		steps = append(steps, lookup{external.ProviderGoogleBooks, func() (string, error) {
			return s.ext.GoogleBooksDescription(ctx, "intitle:"+title)
		}})
	}

	var lastErr error
	for _, st := range steps {
		desc, err := st.fn()
		if err == nil {
			return &models.BookDetails{ISBN: isbn, Title: title, Description: desc, Source: st.source}, nil
		}
		if !errors.Is(err, external.ErrNotFound) {
			logging.Warn().Err(err).Str("provider", st.source).Str("isbn", isbn).Msg("lookup falló")
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("lookup details: %w", lastErr)
	}
	return nil, ErrDetailsNotFound
}
