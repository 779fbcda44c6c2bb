package model

import (
	"time"
)

// A Todo represents a database record.
// Position defines the display order of the whole collection. Values are not
// necessarily contiguous, only their relative order matters.
type Todo struct {
	ID        int       `json:"id"         msgpack:"id"         storm:"id,increment"`
	Title     string    `json:"title"      msgpack:"title"`
	Completed bool      `json:"completed"  msgpack:"completed"`
	Position  int       `json:"position"   msgpack:"position"   storm:"index"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`
}
