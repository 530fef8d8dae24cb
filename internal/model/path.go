package model

import (
	"time"

	"github.com/google/uuid"
)

// Path is a journey record as stored in the paths table. The location
// columns are Postgres composite values; lib/pq hands them back in their
// textual form "(lat,lon)", kept raw here and decoded by ParseLocation when
// building the response view.
type Path struct {
	ID            uuid.UUID `db:"id"`
	OwnerID       int       `db:"owner_id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	StartDate     time.Time `db:"start_date"`
	LocationStart string    `db:"location_start"`
	LocationEnd   string    `db:"location_end"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
