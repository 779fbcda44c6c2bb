package model

import (
	"time"
)

// An APIToken represents a database record.
// A token never expires, it remains valid until it is revoked.
type APIToken struct {
	ID        int       `json:"id"             msgpack:"id"         storm:"id,increment"`
	Token     string    `json:"token"          msgpack:"token"      storm:"unique"`
	Name      string    `json:"name,omitempty" msgpack:"name"`
	CreatedAt time.Time `json:"created_at"     msgpack:"created_at" storm:"index"`
}
