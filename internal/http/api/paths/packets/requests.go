package packets

import (
	"time"

	"github.com/pathsapp/backend/internal/model"
)

// LocationPayload is the structured wire form of a coordinate pair. The
// latitude/longitude validators bound-check the values; this schema is the
// upstream guard the codec relies on.
type LocationPayload struct {
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
}

// ToLocation converts the payload into its model value.
func (l LocationPayload) ToLocation() model.Location {
	return model.Location{Latitude: l.Latitude, Longitude: l.Longitude}
}

type ListPathsQuery struct {
	Limit int `form:"limit,default=30" binding:"min=1,max=100"`
	Skip  int `form:"skip,default=0" binding:"min=0"`
}

type CreatePathRequest struct {
	Title         string           `json:"title" binding:"required,notblank"`
	Description   *string          `json:"description"`
	StartDate     time.Time        `json:"start_date" binding:"required"`
	LocationStart *LocationPayload `json:"location_start" binding:"required"`
	LocationEnd   *LocationPayload `json:"location_end" binding:"required"`
}

// UpdatePathRequest is the partial update; absent fields stay untouched.
type UpdatePathRequest struct {
	Title         *string          `json:"title" binding:"omitempty,notblank"`
	Description   *string          `json:"description"`
	StartDate     *time.Time       `json:"start_date"`
	LocationStart *LocationPayload `json:"location_start"`
	LocationEnd   *LocationPayload `json:"location_end"`
}

// ReplacePathRequest is the full update; every field is required.
type ReplacePathRequest struct {
	Title         string           `json:"title" binding:"required,notblank"`
	Description   *string          `json:"description"`
	StartDate     time.Time        `json:"start_date" binding:"required"`
	LocationStart *LocationPayload `json:"location_start" binding:"required"`
	LocationEnd   *LocationPayload `json:"location_end" binding:"required"`
}
