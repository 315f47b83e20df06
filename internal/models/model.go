package models

import "time"

const (
	ModelStatusPending = "pending"
	ModelStatusActive  = "active"
	ModelStatusRetired = "retired"
)

// ModelParams parámetros con los que se construyó el modelo.
type ModelParams struct {
	MinUserRatings int    `json:"minUserRatings" bson:"minUserRatings"`
	K              int    `json:"k" bson:"k"`
	Metric         string `json:"metric" bson:"metric"`
	Workers        int    `json:"workers" bson:"workers"`
}

// ModelStats conteos del limpiado y de la matriz.
type ModelStats struct {
	RawBooks       int `json:"rawBooks" bson:"rawBooks"`
	Books          int `json:"books" bson:"books"`
	RawRatings     int `json:"rawRatings" bson:"rawRatings"`
	SkippedRatings int `json:"skippedRatings" bson:"skippedRatings"`
	ActiveUsers    int `json:"activeUsers" bson:"activeUsers"`
	Interactions   int `json:"interactions" bson:"interactions"`
	Titles         int `json:"titles" bson:"titles"`
	Users          int `json:"users" bson:"users"`
	NonZero        int `json:"nonZero" bson:"nonZero"`
}

// ModelDoc documento de la colección models, uno por versión.
type ModelDoc struct {
	Version     string      `json:"version" bson:"_id"`
	Status      string      `json:"status" bson:"status"`
	Params      ModelParams `json:"params" bson:"params"`
	Stats       ModelStats  `json:"stats" bson:"stats"`
	BuildMillis int64       `json:"buildMillis" bson:"buildMillis"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	ActivatedAt *time.Time  `json:"activatedAt,omitempty" bson:"activatedAt,omitempty"`
}

// ModelStatus respuesta de GET /admin/model.
type ModelStatus struct {
	Active   *ModelDoc `json:"active"`
	Loaded   bool      `json:"loaded"`
	Version  string    `json:"loadedVersion,omitempty"`
	Titles   int       `json:"titles"`
	Books    int       `json:"books"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
}
