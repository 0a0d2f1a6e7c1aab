package models

// Card represents the cards collection in the database.
// Number is the business key; uniqueness is guarded at insert time.
type Card struct {
	ID     *int64 `json:"id" bson:"_id,omitempty"`
	Title  string `json:"title" bson:"title"`
	Date   string `json:"date" bson:"date"`
	Number string `json:"number" bson:"number"`
	Type   string `json:"type" bson:"type"`
	Code   string `json:"code" bson:"code"`
}
