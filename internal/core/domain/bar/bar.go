package bar

import (
	"time"

	"github.com/google/uuid"
)

// Bar is an immutable directory entry. The cache layer stores and returns
// bars by value; mutation happens only in the source of record.
type Bar struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Neighborhood string    `json:"neighborhood" db:"neighborhood"`
	Address      string    `json:"address" db:"address"`
	Website      string    `json:"website,omitempty" db:"website"`
	HappyHour    string    `json:"happy_hour,omitempty" db:"happy_hour"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
