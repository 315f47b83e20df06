package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	f := cmd.Flags()

	for flag, want := range map[string]string{
		"books":            "data/books.csv",
		"ratings":          "data/ratings.csv",
		"min-user-ratings": "50",
		"neighbors":        "5",
		"workers":          "0",
		"dry-run":          "false",
		"keep":             "2",
	} {
		got := f.Lookup(flag)
		require.NotNil(t, got, flag)
		assert.Equal(t, want, got.DefValue, flag)
	}
}

func TestDryRunPrintsReport(t *testing.T) {
	dir := t.TempDir()
	books := filepath.Join(dir, "books.csv")
	ratings := filepath.Join(dir, "ratings.csv")
	require.NoError(t, os.WriteFile(books, []byte("book_id,original_title,title,isbn,authors,image_url\n1,Dune,Dune,441172717,Frank Herbert,x\n2,Emma,Emma,141439580,Jane Austen,y\n"), 0o644))
	require.NoError(t, os.WriteFile(ratings, []byte("user_id,book_id,rating\n1,1,5\n1,2,3\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--books", books, "--ratings", ratings, "--min-user-ratings", "1", "--dry-run"})
	require.NoError(t, cmd.Execute())

	var got struct {
		Version string `json:"version"`
		Stats   struct {
			Titles int `json:"titles"`
			Users  int `json:"users"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.NotEmpty(t, got.Version)
	assert.Equal(t, 2, got.Stats.Titles)
	assert.Equal(t, 1, got.Stats.Users)
}
