package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company is the identity anchor for all resolution. Companies are
// registered out of band and are immutable as far as this core is concerned.
type Company struct {
	ID        uuid.UUID `json:"id"`
	Alias     string    `json:"alias"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
