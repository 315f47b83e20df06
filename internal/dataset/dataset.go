// Package dataset carga y limpia los CSV de libros y ratings que alimentan al
// builder del modelo.
//
// Pipeline (mismo orden que el job original):
//  1. seleccionar columnas de books.csv, completar original_title con title y
//     descartar filas sin título o sin isbn;
//  2. quedarse con los usuarios que tienen >= MinUserRatings ratings;
//  3. join ratings x books por book_id;
//  4. deduplicar (user_id, title) conservando la primera aparición.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const DefaultMinUserRatings = 50

var (
	ErrMissingColumn  = errors.New("dataset: missing column")
	ErrNoInteractions = errors.New("dataset: no interactions left after cleaning")
)

// Book es una fila limpia de books.csv. Position es el orden en el archivo
// y decide qué libro representa a un título repetido.
type Book struct {
	BookID   int
	Title    string
	ISBN     string
	Authors  string
	ImgURL   string
	Position int
}

type Rating struct {
	UserID int
	BookID int
	Rating float64
}

// Interaction es un rating ya unido con el título del libro.
type Interaction struct {
	UserID int
	Title  string
	Rating float64
}

type Options struct {
	MinUserRatings int
}

// Report resume cada etapa de la limpieza.
type Report struct {
	RawBooks       int `json:"rawBooks"`
	SkippedBooks   int `json:"skippedBooks"`
	DroppedBooks   int `json:"droppedBooks"`
	Books          int `json:"books"`
	RawRatings     int `json:"rawRatings"`
	SkippedRatings int `json:"skippedRatings"`
	ActiveUsers    int `json:"activeUsers"`
	ActiveRatings  int `json:"activeRatings"`
	Merged         int `json:"merged"`
	Duplicates     int `json:"duplicates"`
	Interactions   int `json:"interactions"`
}

type Result struct {
	Books        []Book
	Interactions []Interaction
	Report       Report
}

// Clean ejecuta todo el pipeline sobre los dos lectores.
func Clean(booksR, ratingsR io.Reader, opts Options) (*Result, error) {
	if opts.MinUserRatings <= 0 {
		opts.MinUserRatings = DefaultMinUserRatings
	}

	books, bstats, err := LoadBooks(booksR)
	if err != nil {
		return nil, fmt.Errorf("books: %w", err)
	}
	ratings, rstats, err := LoadRatings(ratingsR)
	if err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}

	rep := Report{
		RawBooks:       bstats.Rows,
		SkippedBooks:   bstats.Skipped,
		DroppedBooks:   bstats.Dropped,
		Books:          len(books),
		RawRatings:     rstats.Rows,
		SkippedRatings: rstats.Skipped,
	}

	active, users := FilterActiveUsers(ratings, opts.MinUserRatings)
	rep.ActiveUsers = users
	rep.ActiveRatings = len(active)

	merged := Merge(active, books)
	rep.Merged = len(merged)

	interactions := Dedupe(merged)
	rep.Duplicates = len(merged) - len(interactions)
	rep.Interactions = len(interactions)

	if len(interactions) == 0 {
		return &Result{Books: books, Report: rep}, ErrNoInteractions
	}
	return &Result{Books: books, Interactions: interactions, Report: rep}, nil
}

// LoadStats cuenta filas leídas, filas ilegibles (skip) y filas descartadas
// por datos faltantes.
type LoadStats struct {
	Rows    int
	Skipped int
	Dropped int
}

// LoadBooks lee books.csv. Las columnas se ubican por nombre en la cabecera.
func LoadBooks(r io.Reader) ([]Book, LoadStats, error) {
	var st LoadStats
	rows, header, err := readAll(r, &st)
	if err != nil {
		return nil, st, err
	}
	col, err := columns(header, "book_id", "original_title", "title", "isbn", "authors", "image_url")
	if err != nil {
		return nil, st, err
	}

	var out []Book
	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[col["book_id"]]))
		if err != nil {
			st.Skipped++
			continue
		}

		title := strings.TrimSpace(row[col["original_title"]])
		if title == "" {
			title = strings.TrimSpace(row[col["title"]])
		}
		isbn := strings.TrimSpace(row[col["isbn"]])
		if title == "" || isbn == "" {
			st.Dropped++
			continue
		}

		out = append(out, Book{
			BookID:   id,
			Title:    title,
			ISBN:     isbn,
			Authors:  strings.TrimSpace(row[col["authors"]]),
			ImgURL:   strings.TrimSpace(row[col["image_url"]]),
			Position: len(out),
		})
	}
	return out, st, nil
}

// LoadRatings lee ratings.csv (user_id, book_id, rating).
func LoadRatings(r io.Reader) ([]Rating, LoadStats, error) {
	var st LoadStats
	rows, header, err := readAll(r, &st)
	if err != nil {
		return nil, st, err
	}
	col, err := columns(header, "user_id", "book_id", "rating")
	if err != nil {
		return nil, st, err
	}

	out := make([]Rating, 0, len(rows))
	for _, row := range rows {
		u, err1 := strconv.Atoi(strings.TrimSpace(row[col["user_id"]]))
		b, err2 := strconv.Atoi(strings.TrimSpace(row[col["book_id"]]))
		v, err3 := strconv.ParseFloat(strings.TrimSpace(row[col["rating"]]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			st.Skipped++
			continue
		}
		out = append(out, Rating{UserID: u, BookID: b, Rating: v})
	}
	return out, st, nil
}

// FilterActiveUsers conserva solo los ratings de usuarios con >= minRatings.
// Devuelve también cuántos usuarios quedaron.
func FilterActiveUsers(ratings []Rating, minRatings int) ([]Rating, int) {
	counts := make(map[int]int)
	for _, r := range ratings {
		counts[r.UserID]++
	}

	users := 0
	for _, c := range counts {
		if c >= minRatings {
			users++
		}
	}

	out := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		if counts[r.UserID] >= minRatings {
			out = append(out, r)
		}
	}
	return out, users
}

// Merge hace el inner join por book_id respetando el orden de los ratings.
func Merge(ratings []Rating, books []Book) []Interaction {
	byID := make(map[int]string, len(books))
	for _, b := range books {
		if _, ok := byID[b.BookID]; !ok {
			byID[b.BookID] = b.Title
		}
	}

	out := make([]Interaction, 0, len(ratings))
	for _, r := range ratings {
		title, ok := byID[r.BookID]
		if !ok {
			continue
		}
		out = append(out, Interaction{UserID: r.UserID, Title: title, Rating: r.Rating})
	}
	return out
}

type userTitle struct {
	user  int
	title string
}

// Dedupe deja la primera interacción de cada par (usuario, título).
func Dedupe(in []Interaction) []Interaction {
	seen := make(map[userTitle]struct{}, len(in))
	out := make([]Interaction, 0, len(in))
	for _, it := range in {
		k := userTitle{it.UserID, it.Title}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// readAll lee la cabecera y todas las filas; las filas con error de parseo o
// con distinta cantidad de campos se cuentan como Skipped.
func readAll(r io.Reader, st *LoadStats) ([][]string, []string, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	// quitar BOM en la primera columna
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	cr.FieldsPerRecord = len(header)

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		st.Rows++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				st.Skipped++
				continue
			}
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func columns(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
		out[n] = i
	}
	return out, nil
}
