package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/sadieom/BiblioMatch/internal/fuzzy"
	"github.com/sadieom/BiblioMatch/internal/models"
)

// Model es una versión del modelo cargada en memoria. Es inmutable: una
// recarga arma un Model nuevo y lo reemplaza entero.
type Model struct {
	Version  string
	LoadedAt time.Time

	titles    []string
	neighbors [][]models.Neighbor
	meta      map[string]models.BookDoc
	byISBN    map[string]string
	books     int
	matcher   *fuzzy.Matcher
}

// NewModel arma el snapshot. sims debe traer exactamente una fila por título
// (0..n-1); books puede traer títulos repetidos, gana el de menor posición.
func NewModel(version string, sims []models.SimilarityDoc, books []models.BookDoc) (*Model, error) {
	sorted := make([]models.SimilarityDoc, len(sims))
	copy(sorted, sims)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Row < sorted[j].Row })

	m := &Model{
		Version:   version,
		LoadedAt:  time.Now().UTC(),
		titles:    make([]string, len(sorted)),
		neighbors: make([][]models.Neighbor, len(sorted)),
		meta:      make(map[string]models.BookDoc, len(books)),
		byISBN:    make(map[string]string, len(books)),
		books:     len(books),
	}
	for i, s := range sorted {
		if s.Row != i {
			return nil, fmt.Errorf("similarities: expected row %d, got %d (%q)", i, s.Row, s.Title)
		}
		m.titles[i] = s.Title
		m.neighbors[i] = s.Neighbors
	}
	isbnPos := make(map[string]int, len(books))
	for _, b := range books {
		if p, ok := isbnPos[b.ISBN]; !ok || b.Position < p {
			isbnPos[b.ISBN] = b.Position
			m.byISBN[b.ISBN] = b.Title
		}
		if cur, ok := m.meta[b.Title]; ok && cur.Position <= b.Position {
			continue
		}
		m.meta[b.Title] = b
	}
	m.matcher = fuzzy.NewMatcher(m.titles)
	return m, nil
}

// Len cantidad de títulos en la matriz.
func (m *Model) Len() int { return len(m.titles) }

// Books cantidad de libros con metadata.
func (m *Model) Books() int { return m.books }

func (m *Model) Titles() []string { return m.titles }

// Match mejor título para la búsqueda del usuario.
func (m *Model) Match(query string) (fuzzy.Match, bool) {
	return m.matcher.ExtractOne(query)
}

// Card metadata del primer libro con ese título.
func (m *Model) Card(title string) (models.BookCard, bool) {
	b, ok := m.meta[title]
	if !ok {
		return models.BookCard{}, false
	}
	return b.Card(), true
}

// TitleByISBN título del primer libro con ese isbn.
func (m *Model) TitleByISBN(isbn string) (string, bool) {
	t, ok := m.byISBN[isbn]
	return t, ok
}

// NeighborsOf vecinos precalculados de la fila.
func (m *Model) NeighborsOf(row int) ([]models.Neighbor, error) {
	if row < 0 || row >= len(m.neighbors) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(m.neighbors))
	}
	return m.neighbors[row], nil
}
