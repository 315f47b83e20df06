package models

type ShelfItem struct {
	BookCard `bson:",inline"`
	AddedAt  string `json:"addedAt" bson:"addedAt"`
}

type UserDoc struct {
	UserID       int         `json:"userId" bson:"userId"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"passwordHash" bson:"passwordHash"`
	Role         string      `json:"role" bson:"role"`
	Username     string      `json:"username,omitempty" bson:"username,omitempty"`
	Bookshelf    []ShelfItem `json:"bookshelf" bson:"bookshelf"`
	CreatedAt    string      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string      `json:"updatedAt" bson:"updatedAt"`
}
