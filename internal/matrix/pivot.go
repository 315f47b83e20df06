// Package matrix arma la matriz dispersa título x usuario a partir de las
// interacciones limpias.
package matrix

import (
	"math"
	"sort"

	"github.com/sadieom/BiblioMatch/internal/dataset"
)

// Entry es un valor no nulo de una fila (columna = índice de usuario).
type Entry struct {
	Col   int
	Value float64
}

// Matrix guarda las filas en formato CSR simplificado más un índice invertido
// columna -> filas para los productos punto dispersos.
type Matrix struct {
	titles []string
	users  []int
	rows   [][]Entry
	norms  []float64
	cols   [][]Entry // por columna: Entry.Col es el índice de fila
	index  map[string]int
}

// Pivot construye la matriz. Filas = títulos ordenados, columnas = user ids
// ordenados, celdas vacías = 0 (no se almacenan).
// Si un par (usuario, título) se repite se promedia, aunque después de
// dataset.Dedupe no debería pasar.
func Pivot(interactions []dataset.Interaction) *Matrix {
	titleSet := make(map[string]struct{})
	userSet := make(map[int]struct{})
	for _, it := range interactions {
		titleSet[it.Title] = struct{}{}
		userSet[it.UserID] = struct{}{}
	}

	titles := make([]string, 0, len(titleSet))
	for t := range titleSet {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	users := make([]int, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Ints(users)

	rowOf := make(map[string]int, len(titles))
	for i, t := range titles {
		rowOf[t] = i
	}
	colOf := make(map[int]int, len(users))
	for j, u := range users {
		colOf[u] = j
	}

	type cell struct{ sum, n float64 }
	cells := make([]map[int]*cell, len(titles))
	for _, it := range interactions {
		i := rowOf[it.Title]
		if cells[i] == nil {
			cells[i] = make(map[int]*cell)
		}
		j := colOf[it.UserID]
		c := cells[i][j]
		if c == nil {
			c = &cell{}
			cells[i][j] = c
		}
		c.sum += it.Rating
		c.n++
	}

	m := &Matrix{
		titles: titles,
		users:  users,
		rows:   make([][]Entry, len(titles)),
		norms:  make([]float64, len(titles)),
		cols:   make([][]Entry, len(users)),
		index:  rowOf,
	}

	for i, row := range cells {
		entries := make([]Entry, 0, len(row))
		for j, c := range row {
			v := c.sum / c.n
			if v == 0 {
				continue
			}
			entries = append(entries, Entry{Col: j, Value: v})
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].Col < entries[b].Col })

		var sq float64
		for _, e := range entries {
			sq += e.Value * e.Value
			m.cols[e.Col] = append(m.cols[e.Col], Entry{Col: i, Value: e.Value})
		}
		m.rows[i] = entries
		m.norms[i] = math.Sqrt(sq)
	}
	return m
}

// Shape devuelve (filas, columnas).
func (m *Matrix) Shape() (int, int) { return len(m.titles), len(m.users) }

// NNZ cantidad de celdas no nulas.
func (m *Matrix) NNZ() int {
	n := 0
	for _, r := range m.rows {
		n += len(r)
	}
	return n
}

func (m *Matrix) Title(i int) string { return m.titles[i] }

func (m *Matrix) Titles() []string { return m.titles }

func (m *Matrix) Row(i int) []Entry { return m.rows[i] }

func (m *Matrix) Norm(i int) float64 { return m.norms[i] }

// Column devuelve las filas con valor en la columna j (Entry.Col = fila).
func (m *Matrix) Column(j int) []Entry { return m.cols[j] }

// Index busca la fila de un título exacto.
func (m *Matrix) Index(title string) (int, bool) {
	i, ok := m.index[title]
	return i, ok
}
