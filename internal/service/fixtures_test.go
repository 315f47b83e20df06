package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadieom/BiblioMatch/internal/models"
)

const (
	chamber  = "Harry Potter and the Chamber of Secrets"
	sorcerer = "Harry Potter and the Sorcerer's Stone"
	hobbit   = "The Hobbit"
	hunger   = "The Hunger Games"
	twilight = "Twilight"
)

func nb(row int, title string, sim float64) models.Neighbor {
	return models.Neighbor{Title: title, Row: row, Sim: sim, Distance: 1 - sim}
}

// fixtureSims filas en orden alfabético; The Hobbit no tiene metadata.
func fixtureSims() []models.SimilarityDoc {
	return []models.SimilarityDoc{
		{Version: "v1", Row: 0, Title: chamber, Neighbors: []models.Neighbor{nb(1, sorcerer, .9), nb(2, hobbit, .5), nb(4, twilight, .2)}},
		{Version: "v1", Row: 1, Title: sorcerer, Neighbors: []models.Neighbor{nb(0, chamber, .9), nb(2, hobbit, .6), nb(3, hunger, .3)}},
		{Version: "v1", Row: 2, Title: hobbit, Neighbors: []models.Neighbor{nb(1, sorcerer, .6), nb(0, chamber, .5)}},
		{Version: "v1", Row: 3, Title: hunger, Neighbors: []models.Neighbor{nb(4, twilight, .7), nb(1, sorcerer, .3)}},
		{Version: "v1", Row: 4, Title: twilight, Neighbors: []models.Neighbor{nb(3, hunger, .7), nb(0, chamber, .2)}},
	}
}

func fixtureBooks() []models.BookDoc {
	return []models.BookDoc{
		{Version: "v1", BookID: 2, Title: sorcerer, ISBN: "439554934", Authors: "J.K. Rowling, Mary GrandPré", ImgURL: "img/2", Position: 0},
		{Version: "v1", BookID: 23, Title: chamber, ISBN: "439064864", Authors: "J.K. Rowling, Mary GrandPré", ImgURL: "img/23", Position: 1},
		{Version: "v1", BookID: 1, Title: hunger, ISBN: "439023483", Authors: "Suzanne Collins", ImgURL: "img/1", Position: 2},
		{Version: "v1", BookID: 3, Title: twilight, ISBN: "316015849", Authors: "Stephenie Meyer", ImgURL: "img/3", Position: 3},
		{Version: "v1", BookID: 900, Title: twilight, ISBN: "000000000", Authors: "Someone Else", ImgURL: "img/900", Position: 4},
	}
}

func fixtureModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel("v1", fixtureSims(), fixtureBooks())
	require.NoError(t, err)
	return m
}

type staticStore struct{ m *Model }

func (s staticStore) Current() *Model { return s.m }

func titlesOf(cards []models.BookCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Title)
	}
	return out
}
