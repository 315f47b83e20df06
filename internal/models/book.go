package models

// BookDoc es la metadata de un libro para una versión del modelo.
// Position es el orden en books.csv; ante títulos repetidos gana el menor.
type BookDoc struct {
	Version  string `json:"version" bson:"version"`
	BookID   int    `json:"bookId" bson:"bookId"`
	Title    string `json:"title" bson:"title"`
	ISBN     string `json:"isbn" bson:"isbn"`
	Authors  string `json:"authors" bson:"authors"`
	ImgURL   string `json:"imgUrl" bson:"imgUrl"`
	Position int    `json:"position" bson:"position"`
}

// BookCard es lo que devuelve la API por cada libro.
type BookCard struct {
	Title       string `json:"title" bson:"title"`
	ISBN        string `json:"isbn" bson:"isbn"`
	Author      string `json:"author" bson:"author"`
	OriginalImg string `json:"original_img" bson:"original_img"`
}

// Card convierte la metadata al formato de respuesta.
func (b BookDoc) Card() BookCard {
	return BookCard{
		Title:       b.Title,
		ISBN:        b.ISBN,
		Author:      b.Authors,
		OriginalImg: b.ImgURL,
	}
}

// RecommendResult respuesta de /api/recommend.
type RecommendResult struct {
	FoundBook       BookCard   `json:"found_book"`
	Recommendations []BookCard `json:"recommendations"`
}

// BookDetails descripción obtenida de Open Library o Google Books.
type BookDetails struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Source      string `json:"source"`
}
