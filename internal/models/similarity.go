package models

type Neighbor struct {
	Title    string  `json:"title" bson:"title"`
	Row      int     `json:"row" bson:"row"`
	Sim      float64 `json:"sim" bson:"sim"`
	Distance float64 `json:"distance" bson:"distance"`
}

// SimilarityDoc vecinos precalculados de un título (fila Row de la matriz).
type SimilarityDoc struct {
	Version   string     `json:"version" bson:"version"`
	Title     string     `json:"title" bson:"title"`
	Row       int        `json:"row" bson:"row"`
	Metric    string     `json:"metric" bson:"metric"`
	K         int        `json:"k" bson:"k"`
	Neighbors []Neighbor `json:"neighbors" bson:"neighbors"`
}
