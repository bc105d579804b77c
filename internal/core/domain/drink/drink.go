package drink

import (
	"time"

	"github.com/google/uuid"
)

// Drink is a menu entry served by a bar.
type Drink struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BarID       uuid.UUID `json:"bar_id" db:"bar_id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description,omitempty" db:"description"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LikeStatus is the state of a (drink, session) pair after a toggle,
// together with the drink's total like count.
type LikeStatus struct {
	DrinkID   uuid.UUID `json:"drink_id"`
	SessionID string    `json:"session_id"`
	Liked     bool      `json:"liked"`
	Count     int       `json:"count"`
}

// ToggleLikeRequest is the body of POST /likes.
type ToggleLikeRequest struct {
	DrinkID   uuid.UUID `json:"drink_id"`
	SessionID string    `json:"session_id"`
}
