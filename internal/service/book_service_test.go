package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadieom/BiblioMatch/internal/external"
)

type fakeProvider struct {
	openLibrary map[string]string
	google      map[string]string
	olErr       error
	queries     []string
}

func (f *fakeProvider) OpenLibraryDescription(_ context.Context, isbn string) (string, error) {
	if f.olErr != nil {
		return "", f.olErr
	}
	if d, ok := f.openLibrary[isbn]; ok {
		return d, nil
	}
	return "", external.ErrNotFound
}

func (f *fakeProvider) GoogleBooksDescription(_ context.Context, q string) (string, error) {
	f.queries = append(f.queries, q)
	if d, ok := f.google[q]; ok {
		return d, nil
	}
	return "", external.ErrNotFound
}

func TestDetailsOpenLibraryFirst(t *testing.T) {
	ext := &fakeProvider{openLibrary: map[string]string{"439023483": "Katniss."}}
	svc := NewBookService(ext, staticStore{fixtureModel(t)})

	d, err := svc.Details(context.Background(), "439023483", "")
	require.NoError(t, err)
	assert.Equal(t, "Katniss.", d.Description)
	assert.Equal(t, external.ProviderOpenLibrary, d.Source)
	assert.Equal(t, hunger, d.Title)
	assert.Empty(t, ext.queries)
}

func TestDetailsFallsBackToTitle(t *testing.T) {
	ext := &fakeProvider{google: map[string]string{"intitle:" + twilight: "Vampires."}}
	svc := NewBookService(ext, staticStore{fixtureModel(t)})

	d, err := svc.Details(context.Background(), "316015849", "")
	require.NoError(t, err)
	assert.Equal(t, "Vampires.", d.Description)
	assert.Equal(t, external.ProviderGoogleBooks, d.Source)
	assert.Equal(t, []string{"isbn:316015849", "intitle:" + twilight}, ext.queries)
}

func TestDetailsNotFound(t *testing.T) {
	svc := NewBookService(&fakeProvider{}, staticStore{})

	_, err := svc.Details(context.Background(), "123", "")
	require.ErrorIs(t, err, ErrDetailsNotFound)
}

func TestDetailsProviderError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewBookService(&fakeProvider{olErr: boom}, staticStore{})

	_, err := svc.Details(context.Background(), "123", "Dune")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDetailsNotFound)
}
